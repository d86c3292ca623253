package settings

import (
	"context"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
	Save(ctx context.Context, settings *domain.ShopSettings) error
}

// IDGenerator генератор идентификаторов новых услуг
type IDGenerator interface {
	NewID() (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
