package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BarberBookingService/internal/availability"
	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage"
)

// Сколько раз пробуем сгенерировать неповторяющийся ID
const maxIDAttempts = 5

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	settings     SettingsProvider
	txManager    TransactionManager
	ids          IDGenerator
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	ids IDGenerator,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settings:     settings,
		txManager:    txManager,
		ids:          ids,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка слота и запись выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%s, date=%s, time=%s", req.ServiceID, req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 2. Получаем настройки и услугу
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	service, ok := settings.FindService(req.ServiceID)
	if !ok {
		uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	interval := availability.ResolveInterval(service, settings)

	var result *domain.Booking

	// 3. Проверка слота и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !availability.IsOnGrid(settings.OpenTime, settings.CloseTime, interval, req.Time) {
			uc.metrics.IncBookingRejected(reasonOffGrid)
			return fmt.Errorf("%w: %s (interval %d)", ErrInvalidTimeSlot, req.Time, interval)
		}

		date := req.Date
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{Date: &date})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		proposal := availability.Proposal{Date: req.Date, Time: req.Time, ServiceID: service.ID}
		if err := availability.ValidateBooking(proposal, bookings, "", now); err != nil {
			return uc.mapValidationError(err)
		}

		booking := &domain.Booking{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Service:       *service,
			Date:          req.Date,
			Time:          req.Time,
			Status:        domain.StatusConfirmed,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		created, err := uc.insertWithFreshID(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: rejected: %v", err)
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 4. Уведомление не влияет на результат
	if err := uc.notifier.BookingConfirmed(ctx, settings, result); err != nil {
		uc.logger.Warn("CreateBooking: notification failed for booking id=%s: %v", result.ID, err)
	}

	return &Response{Booking: result}, nil
}

// insertWithFreshID генерирует ID и повторяет вставку при коллизии
func (uc *UseCase) insertWithFreshID(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id, err := uc.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to generate id: %v", ErrInternal, err)
		}
		booking.ID = id

		created, err := uc.bookingRepo.Create(ctx, booking)
		switch {
		case err == nil:
			return created, nil
		case errors.Is(err, storage.ErrBookingAlreadyExists):
			uc.logger.Warn("CreateBooking: id collision %s, attempt %d", id, attempt)
			continue
		case errors.Is(err, storage.ErrSlotTaken):
			uc.metrics.IncBookingRejected(reasonDoubleBooked)
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}
	return nil, fmt.Errorf("%w: could not generate a unique id", ErrInternal)
}

func (uc *UseCase) mapValidationError(err error) error {
	switch {
	case errors.Is(err, availability.ErrDoubleBooked):
		uc.metrics.IncBookingRejected(reasonDoubleBooked)
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case errors.Is(err, availability.ErrSlotInPast):
		uc.metrics.IncBookingRejected(reasonPast)
		return fmt.Errorf("%w: %v", ErrTooLateToBook, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
