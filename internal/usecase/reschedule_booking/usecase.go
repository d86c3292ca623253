package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BarberBookingService/internal/availability"
	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage"
)

// UseCase use case для переноса бронирования на другую дату или время
type UseCase struct {
	bookingRepo  BookingRepository
	settings     SettingsProvider
	txManager    TransactionManager
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
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settings:     settings,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет перенос. Собственный слот бронирования не считается занятым,
// поэтому сохранение без изменений проходит проверку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: id=%s, date=%s, time=%s", req.BookingID, req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RescheduleBooking: %v", err)
		return nil, err
	}

	// 2. Получаем настройки магазина
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	var result *domain.Booking
	changed := false

	// 3. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: status is %s", ErrCannotReschedule, booking.Status)
		}

		changed = booking.Date != req.Date || booking.Time != req.Time

		// Интервал берётся из снимка услуги, а не из текущего каталога
		if changed {
			interval := availability.ResolveInterval(&booking.Service, settings)
			if !availability.IsOnGrid(settings.OpenTime, settings.CloseTime, interval, req.Time) {
				uc.metrics.IncBookingRejected(reasonOffGrid)
				return fmt.Errorf("%w: %s (interval %d)", ErrInvalidTimeSlot, req.Time, interval)
			}
		}

		date := req.Date
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{Date: &date})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		proposal := availability.Proposal{Date: req.Date, Time: req.Time, ServiceID: booking.Service.ID}
		if err := availability.ValidateBooking(proposal, bookings, booking.ID, now); err != nil {
			return uc.mapValidationError(err)
		}

		if !changed {
			result = booking
			return nil
		}

		booking.Date = req.Date
		booking.Time = req.Time
		booking.UpdatedAt = now

		updated, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			if errors.Is(err, storage.ErrSlotTaken) {
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			}
			uc.logger.Error("RescheduleBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		uc.logger.Warn("RescheduleBooking: rejected: %v", err)
		return nil, err
	}

	if !changed {
		uc.logger.Info("RescheduleBooking: booking id=%s unchanged", result.ID)
		return &Response{Booking: result, Changed: false}, nil
	}

	uc.metrics.IncBookingRescheduled()
	uc.logger.Info("RescheduleBooking: booking id=%s moved to %s %s", result.ID, result.Date, result.Time)

	if err := uc.notifier.BookingRescheduled(ctx, settings, result); err != nil {
		uc.logger.Warn("RescheduleBooking: notification failed for booking id=%s: %v", result.ID, err)
	}

	return &Response{Booking: result, Changed: true}, nil
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
