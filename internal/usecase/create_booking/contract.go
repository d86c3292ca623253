package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// SettingsProvider источник текущих настроек магазина
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// IDGenerator генератор коротких идентификаторов бронирований
type IDGenerator interface {
	NewID() (string, error)
}

// Notifier отправляет уведомление о подтверждении бронирования
type Notifier interface {
	BookingConfirmed(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingCreated()
	IncBookingRejected(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
