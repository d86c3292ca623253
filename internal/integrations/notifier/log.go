package notifier

import (
	"context"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

// LogNotifier системные уведомления для владельца, записываемые в лог
type LogNotifier struct {
	logger Logger
}

// NewLogNotifier создает уведомитель, пишущий в лог
func NewLogNotifier(logger Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) BookingConfirmed(_ context.Context, _ *domain.ShopSettings, b *domain.Booking) error {
	n.logger.Info("[Notifica] Prenotazione Confermata! %s", SystemConfirmationText(b))
	return nil
}

func (n *LogNotifier) BookingRescheduled(_ context.Context, _ *domain.ShopSettings, b *domain.Booking) error {
	n.logger.Info("[Notifica] Prenotazione spostata: %s %s alle %s (id=%s)", b.CustomerName, b.Date, b.Time, b.ID)
	return nil
}

func (n *LogNotifier) BookingReminder(_ context.Context, _ *domain.ShopSettings, b *domain.Booking) error {
	n.logger.Info("[Notifica] Promemoria Appuntamento: %s", ReminderText(b))
	return nil
}
