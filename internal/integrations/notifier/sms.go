package notifier

import (
	"context"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

// SMSNotifier отправляет клиенту SMS при создании и переносе записи, если в настройках включены SMS
type SMSNotifier struct {
	sender SMSSender
	logger Logger
}

// NewSMSNotifier создает SMS-уведомитель
func NewSMSNotifier(sender SMSSender, logger Logger) *SMSNotifier {
	return &SMSNotifier{sender: sender, logger: logger}
}

func (n *SMSNotifier) BookingConfirmed(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error {
	return n.send(ctx, settings, booking)
}

func (n *SMSNotifier) BookingRescheduled(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error {
	return n.send(ctx, settings, booking)
}

// BookingReminder напоминание адресовано владельцу, клиенту SMS не уходит
func (n *SMSNotifier) BookingReminder(context.Context, *domain.ShopSettings, *domain.Booking) error {
	return nil
}

func (n *SMSNotifier) send(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error {
	if settings == nil || !settings.SMSEnabled {
		return nil
	}
	if err := n.sender.Send(ctx, booking.CustomerPhone, ConfirmationText(booking)); err != nil {
		return err
	}
	n.logger.Info("SMS di conferma inviato a %s (booking id=%s)", booking.CustomerPhone, booking.ID)
	return nil
}

// SimulatedGateway имитирует SMS-шлюз: сообщение только пишется в лог
type SimulatedGateway struct {
	logger Logger
}

// NewSimulatedGateway создает имитацию SMS-шлюза
func NewSimulatedGateway(logger Logger) *SimulatedGateway {
	return &SimulatedGateway{logger: logger}
}

func (g *SimulatedGateway) Send(ctx context.Context, phone, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.logger.Info("[SMS Gateway] Sending SMS to %s: %s", phone, text)
	return nil
}
