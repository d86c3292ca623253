package create_booking

import (
	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/BarberBookingService/internal/usecase/create_booking"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     string `json:"serviceId" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required,max=100"`
	CustomerPhone string `json:"customerPhone" validate:"required,max=32"`
	Date          string `json:"date" validate:"required"` // "2025-10-15"
	Time          string `json:"time" validate:"required"` // "10:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := types.NewDateStringFromString(r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		ServiceID:     r.ServiceID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Date:          date,
		Time:          startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
