package get_agenda

import (
	"context"
	"time"

	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

type BookingService interface {
	GetAgenda(ctx context.Context, date types.DateString) (*models.AgendaResponse, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
