package get_shop

import (
	"context"

	"github.com/m04kA/BarberBookingService/internal/service/settings/models"
)

type SettingsService interface {
	GetPublic(ctx context.Context) (*models.PublicShopResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
