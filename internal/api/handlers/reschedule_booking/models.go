package reschedule_booking

import (
	"errors"

	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/BarberBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date string `json:"date" validate:"required"` // "2025-10-15"
	Time string `json:"time" validate:"required"` // "10:00"
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Changed bool                    `json:"changed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID string) (*rescheduleBooking.Request, error) {
	date, err := types.NewDateStringFromString(r.Date)
	if err != nil {
		return nil, errInvalidDate
	}
	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, errInvalidTime
	}
	return &rescheduleBooking.Request{
		BookingID: bookingID,
		Date:      date,
		Time:      startTime,
	}, nil
}

func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Changed: resp.Changed,
	}
}
