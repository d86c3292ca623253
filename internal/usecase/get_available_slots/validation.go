package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/BarberBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == "" && req.ExcludeBookingID == "" {
		return fmt.Errorf("%w: serviceId or bookingId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return nil
}

// validateDate проверяет, что дата не раньше сегодняшней
func validateDate(date types.DateString, now time.Time) error {
	if date.IsBefore(types.NewDateString(now)) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date)
	}
	return nil
}
