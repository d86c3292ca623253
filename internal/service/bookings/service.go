package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/BarberBookingService/internal/availability"
	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage"
	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	txManager   TransactionManager
	summarizer  Summarizer
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// summarizer может быть nil - тогда сводка всегда строится локально.
func NewService(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	summarizer Summarizer,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		settings:    settings,
		txManager:   txManager,
		summarizer:  summarizer,
		logger:      logger,
	}
}

// GetByID получает бронирование по короткому ID (ссылка подтверждения)
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// GetDomainByID возвращает domain модель; нужна для экспорта в календарь
func (s *Service) GetDomainByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.getBooking(ctx, "GetDomainByID", id)
}

// GetAgenda собирает повестку дня: ленту слотов магазина, все бронирования (включая отменённые),
// агрегаты и текстовую сводку
func (s *Service) GetAgenda(ctx context.Context, date types.DateString) (*models.AgendaResponse, error) {
	s.logger.Info("GetAgenda: date=%s", date)

	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("GetAgenda: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: GetAgenda - settings: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{Date: &date, IncludeCancelled: true})
	if err != nil {
		s.logger.Error("GetAgenda: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: GetAgenda - repository error: %v", ErrInternal, err)
	}

	active := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}

	return &models.AgendaResponse{
		Date:     date.String(),
		Timeline: buildTimeline(date, settings, active),
		Bookings: models.FromDomainBookingList(bookings),
		Stats:    computeStats(bookings),
		Summary:  s.summarize(ctx, date, active),
	}, nil
}

// UpdateStatus меняет статус бронирования (действие владельца, любой из четырёх статусов).
// Возврат отменённого бронирования в активный статус проходит проверку занятости слота
// в той же сериализуемой транзакции, что и запись. Прошедшие слоты не проверяются:
// владелец может завершить уже прошедшую запись.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%s to status=%s", id, req.Status)

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: %v", err)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if !booking.IsActive() && status != domain.StatusCancelled {
			if err := s.ensureSlotFree(txCtx, booking); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, status); err != nil {
			switch {
			case errors.Is(err, storage.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, storage.ErrSlotTaken):
				return fmt.Errorf("%w: %v", ErrSlotTaken, err)
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.logger.Warn("UpdateStatus: booking id=%s not restored: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%s is now %s", id, status)
	return s.GetByID(ctx, id)
}

// ensureSlotFree проверяет, что время отменённого бронирования никем не занято
func (s *Service) ensureSlotFree(ctx context.Context, booking *domain.Booking) error {
	date := booking.Date
	sameDay, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{Date: &date})
	if err != nil {
		s.logger.Error("UpdateStatus: failed to get bookings for date=%s: %v", date, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	proposal := availability.Proposal{Date: booking.Date, Time: booking.Time, ServiceID: booking.Service.ID}
	err = availability.ValidateBooking(proposal, sameDay, booking.ID, time.Now())
	if errors.Is(err, availability.ErrDoubleBooked) {
		return fmt.Errorf("%w: %v", ErrSlotTaken, err)
	}
	// ErrSlotInPast и повреждённые дата/время возврату не мешают
	return nil
}

// Cancel отменяет бронирование по просьбе клиента
func (s *Service) Cancel(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	booking.UpdatedAt = time.Now()

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// Delete удаляет бронирование безвозвратно
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) summarize(ctx context.Context, date types.DateString, active []*domain.Booking) string {
	if len(active) == 0 || s.summarizer == nil {
		return LocalSummary(active)
	}

	text, err := s.summarizer.Summarize(ctx, date, active)
	if err != nil || text == "" {
		s.logger.Warn("GetAgenda: summary service unavailable, using local summary: %v", err)
		return LocalSummary(active)
	}
	return text
}

// buildTimeline раскладывает активные бронирования по сетке магазина.
// Бронирования вне сетки (услуги со своим интервалом) добавляются отдельными строками.
func buildTimeline(date types.DateString, settings *domain.ShopSettings, active []*domain.Booking) []models.TimelineEntry {
	grid := availability.GenerateSlots(date, settings.OpenTime, settings.CloseTime, settings.SlotIntervalMinutes, nil, time.Time{})

	byTime := make(map[types.TimeString]*domain.Booking, len(active))
	for _, b := range active {
		if b.Time.Validate() == nil {
			byTime[b.Time] = b
		}
	}

	entries := make([]models.TimelineEntry, 0, len(grid)+len(active))
	for _, slot := range grid {
		entry := models.TimelineEntry{Time: slot.Time.String()}
		if b, ok := byTime[slot.Time]; ok {
			entry.Booking = models.FromDomainBooking(b)
			delete(byTime, slot.Time)
		}
		entries = append(entries, entry)
	}

	for t, b := range byTime {
		entries = append(entries, models.TimelineEntry{Time: t.String(), Booking: models.FromDomainBooking(b)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return types.TimeString(entries[i].Time).IsBefore(types.TimeString(entries[j].Time))
	})

	return entries
}
