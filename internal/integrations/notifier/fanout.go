package notifier

import (
	"context"
	"errors"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

// Виды уведомлений для метрик
const (
	KindConfirmed   = "confirmed"
	KindRescheduled = "rescheduled"
	KindReminder    = "reminder"
)

// Fanout отправляет событие всем уведомителям; сбой одного не мешает остальным
type Fanout struct {
	notifiers []Notifier
	metrics   Metrics
	logger    Logger
}

// NewFanout создает рассылку по нескольким каналам. metrics может быть nil.
func NewFanout(metrics Metrics, logger Logger, notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers, metrics: metrics, logger: logger}
}

func (f *Fanout) BookingConfirmed(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error {
	return f.each(KindConfirmed, booking, func(n Notifier) error {
		return n.BookingConfirmed(ctx, settings, booking)
	})
}

func (f *Fanout) BookingRescheduled(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error {
	return f.each(KindRescheduled, booking, func(n Notifier) error {
		return n.BookingRescheduled(ctx, settings, booking)
	})
}

func (f *Fanout) BookingReminder(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error {
	return f.each(KindReminder, booking, func(n Notifier) error {
		return n.BookingReminder(ctx, settings, booking)
	})
}

func (f *Fanout) each(kind string, booking *domain.Booking, call func(Notifier) error) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := call(n); err != nil {
			f.logger.Warn("Notifier: %s notification for booking id=%s failed: %v", kind, booking.ID, err)
			if f.metrics != nil {
				f.metrics.IncNotificationFailed(kind)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop уведомитель, который ничего не делает
type Noop struct{}

func (Noop) BookingConfirmed(context.Context, *domain.ShopSettings, *domain.Booking) error {
	return nil
}

func (Noop) BookingRescheduled(context.Context, *domain.ShopSettings, *domain.Booking) error {
	return nil
}

func (Noop) BookingReminder(context.Context, *domain.ShopSettings, *domain.Booking) error {
	return nil
}
