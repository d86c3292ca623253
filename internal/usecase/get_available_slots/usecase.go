package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BarberBookingService/internal/availability"
	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage"
)

// UseCase use case для получения сетки слотов (новое бронирование и перенос)
type UseCase struct {
	bookingRepo  BookingRepository
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s, exclude=%s", req.ServiceID, req.Date, req.ExcludeBookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 2. Получаем настройки магазина
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Определяем услугу: снимок из переносимого бронирования или каталог
	service, err := uc.resolveService(ctx, req, settings)
	if err != nil {
		return nil, err
	}

	// 4. Все бронирования на дату; собственное бронирование при переносе не занимает слот
	date := req.Date
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{Date: &date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	bookings = excludeBooking(bookings, req.ExcludeBookingID)

	// 5. Генерируем сетку
	interval := availability.ResolveInterval(service, settings)
	slots := availability.GenerateSlots(req.Date, settings.OpenTime, settings.CloseTime, interval, bookings, now)

	available := domain.CountAvailable(slots)
	uc.logger.Info("GetAvailableSlots: %d slots, %d available (interval=%d)", len(slots), available, interval)

	return &Response{
		Date:            req.Date,
		Service:         *service,
		IntervalMinutes: interval,
		Slots:           slots,
		AvailableCount:  available,
	}, nil
}

func (uc *UseCase) resolveService(ctx context.Context, req *Request, settings *domain.ShopSettings) (*domain.Service, error) {
	if req.ExcludeBookingID != "" {
		booking, err := uc.bookingRepo.GetByID(ctx, req.ExcludeBookingID)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				uc.logger.Warn("GetAvailableSlots: booking id=%s not found", req.ExcludeBookingID)
				return nil, ErrBookingNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get booking id=%s: %v", req.ExcludeBookingID, err)
			return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		service := booking.Service
		return &service, nil
	}

	service, ok := settings.FindService(req.ServiceID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	return service, nil
}

func excludeBooking(bookings []*domain.Booking, id string) []*domain.Booking {
	if id == "" {
		return bookings
	}
	out := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
