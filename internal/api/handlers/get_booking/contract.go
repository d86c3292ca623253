package get_booking

import (
	"context"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

type BookingService interface {
	GetDomainByID(ctx context.Context, id string) (*domain.Booking, error)
}

type SettingsProvider interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
