package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/BarberBookingService/internal/usecase/get_available_slots"
)

// SlotGridProvider строит сетку слотов дня для услуги или для переносимого бронирования
type SlotGridProvider interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
