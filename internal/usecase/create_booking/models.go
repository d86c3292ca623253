package create_booking

import (
	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID     string           // ID услуги из каталога
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	Date          types.DateString // Дата бронирования
	Time          types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
