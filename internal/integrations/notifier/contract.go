package notifier

import (
	"context"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

// Notifier рассылает уведомления о событиях бронирования.
// Ошибки уведомлений не должны прерывать основной сценарий.
type Notifier interface {
	BookingConfirmed(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error
	BookingRescheduled(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error
	BookingReminder(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error
}

// SMSSender канал доставки SMS
type SMSSender interface {
	Send(ctx context.Context, phone, text string) error
}

// Metrics счетчик неудачных уведомлений
type Metrics interface {
	IncNotificationFailed(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
