package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage"
)

// BookingsKey ключ хэша с бронированиями (id -> JSON)
const BookingsKey = "barber_bookings"

// BookingRepository репозиторий бронирований поверх key-value хранилища
type BookingRepository struct {
	store  Store
	logger Logger
}

// NewBookingRepository создает новый экземпляр репозитория бронирований
func NewBookingRepository(store Store, logger Logger) *BookingRepository {
	return &BookingRepository{store: store, logger: logger}
}

// Create сохраняет новое бронирование. Повтор идентификатора - ошибка.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	_, err := r.store.HGet(ctx, BookingsKey, booking.ID)
	if err == nil {
		return nil, fmt.Errorf("%w: id=%s", storage.ErrBookingAlreadyExists, booking.ID)
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("Create - check id: %w", err)
	}

	if err := r.put(ctx, booking); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return booking, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	raw, err := r.store.HGet(ctx, BookingsKey, id)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, storage.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	var booking domain.Booking
	if err := json.Unmarshal([]byte(raw), &booking); err != nil {
		return nil, fmt.Errorf("%w: GetByID id=%s: %v", ErrDecode, id, err)
	}
	return &booking, nil
}

// GetWithFilter получает бронирования, подходящие под фильтр, отсортированные по дате и времени.
// Повреждённые записи пропускаются с предупреждением.
func (r *BookingRepository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	all, err := r.store.HGetAll(ctx, BookingsKey)
	if err != nil {
		return nil, fmt.Errorf("GetWithFilter: %w", err)
	}

	result := make([]*domain.Booking, 0, len(all))
	for id, raw := range all {
		var booking domain.Booking
		if err := json.Unmarshal([]byte(raw), &booking); err != nil {
			r.logger.Warn("kv.BookingRepository: skipping corrupted booking id=%s: %v", id, err)
			continue
		}
		if filter.Matches(&booking) {
			result = append(result, &booking)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		if result[i].Time != result[j].Time {
			return result[i].Time < result[j].Time
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Update перезаписывает существующее бронирование целиком
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if _, err := r.GetByID(ctx, booking.ID); err != nil {
		return nil, err
	}
	if err := r.put(ctx, booking); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return booking, nil
}

// UpdateStatus меняет только статус бронирования
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	booking, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	booking.Status = status
	if err := r.put(ctx, booking); err != nil {
		return fmt.Errorf("UpdateStatus: %w", err)
	}
	return nil
}

// Delete удаляет бронирование безвозвратно
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	err := r.store.HDel(ctx, BookingsKey, id)
	if errors.Is(err, ErrKeyNotFound) {
		return storage.ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (r *BookingRepository) put(ctx context.Context, booking *domain.Booking) error {
	raw, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("%w: booking id=%s: %v", ErrEncode, booking.ID, err)
	}
	return r.store.HSet(ctx, BookingsKey, booking.ID, string(raw))
}
