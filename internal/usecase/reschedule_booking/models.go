package reschedule_booking

import (
	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID string
	Date      types.DateString
	Time      types.TimeString
}

// Response модель ответа с бронированием после переноса
type Response struct {
	Booking *domain.Booking
	Changed bool // false, если дата и время совпали с текущими
}
