package notifier

import (
	"fmt"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

// ConfirmationText текст SMS о подтверждении или переносе
func ConfirmationText(b *domain.Booking) string {
	return fmt.Sprintf("Ciao %s, la tua prenotazione per %s il %s alle %s è confermata!",
		b.CustomerName, b.Service.Name, b.Date, b.Time)
}

// ReminderText текст напоминания владельцу о ближайшем приёме
func ReminderText(b *domain.Booking) string {
	return fmt.Sprintf("L'appuntamento di %s per %s è tra meno di %d minuti (%s).",
		b.CustomerName, b.Service.Name, domain.ReminderLeadMinutes, b.Time)
}

// SystemConfirmationText текст системного уведомления о новой записи
func SystemConfirmationText(b *domain.Booking) string {
	return fmt.Sprintf("Ciao %s, il tuo appuntamento per %s è confermato alle %s.",
		b.CustomerName, b.Service.Name, b.Time)
}
