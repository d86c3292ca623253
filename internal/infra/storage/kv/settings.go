package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage"
)

// SettingsKey ключ с JSON настроек магазина
const SettingsKey = "barber_settings"

// SettingsRepository репозиторий настроек поверх key-value хранилища
type SettingsRepository struct {
	store Store
}

// NewSettingsRepository создает новый экземпляр репозитория настроек
func NewSettingsRepository(store Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get возвращает сохранённые настройки или storage.ErrSettingsNotFound
func (r *SettingsRepository) Get(ctx context.Context) (*domain.ShopSettings, error) {
	raw, err := r.store.Get(ctx, SettingsKey)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, storage.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get settings: %w", err)
	}

	var settings domain.ShopSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("%w: settings: %v", ErrDecode, err)
	}
	return &settings, nil
}

// Save перезаписывает настройки целиком
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.ShopSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: settings: %v", ErrEncode, err)
	}
	if err := r.store.Set(ctx, SettingsKey, string(raw)); err != nil {
		return fmt.Errorf("Save settings: %w", err)
	}
	return nil
}
