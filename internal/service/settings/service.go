package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage"
	"github.com/m04kA/BarberBookingService/internal/service/settings/models"
)

// Service сервис настроек магазина.
// Держит текущие настройки в памяти; каждое успешное изменение сразу сохраняется в хранилище.
type Service struct {
	repo   SettingsRepository
	ids    IDGenerator
	logger Logger

	mu      sync.RWMutex
	current *domain.ShopSettings
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, ids IDGenerator, logger Logger) *Service {
	return &Service{repo: repo, ids: ids, logger: logger}
}

// Load читает настройки из хранилища; если их нет, используются настройки по умолчанию.
// Некорректные сохранённые настройки тоже заменяются умолчаниями.
func (s *Service) Load(ctx context.Context) error {
	loaded, err := s.repo.Get(ctx)
	switch {
	case errors.Is(err, storage.ErrSettingsNotFound):
		s.logger.Info("Settings: nothing persisted yet, using defaults")
		loaded = domain.DefaultSettings()
	case err != nil:
		s.logger.Error("Settings: failed to load: %v", err)
		return fmt.Errorf("%w: Load - repository error: %v", ErrInternal, err)
	default:
		if vErr := validateSettings(loaded); vErr != nil {
			s.logger.Warn("Settings: persisted settings are invalid (%v), using defaults", vErr)
			loaded = domain.DefaultSettings()
		}
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return nil
}

// Get возвращает копию текущих настроек
func (s *Service) Get(ctx context.Context) (*domain.ShopSettings, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		if err := s.Load(ctx); err != nil {
			return nil, err
		}
		s.mu.RLock()
		current = s.current
		s.mu.RUnlock()
	}

	return current.Clone(), nil
}

// GetSettings возвращает настройки для владельца
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(current), nil
}

// GetPublic возвращает публичный вид магазина (цены скрыты при showPrices=false)
func (s *Service) GetPublic(ctx context.Context) (*models.PublicShopResponse, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPublic(current), nil
}

// Update заменяет настройки целиком
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: replacing settings, %d services", len(req.Services))

	next, err := req.ToDomainSettings()
	if err != nil {
		s.logger.Warn("Update: invalid time: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}

	// Услуги без ID получают сгенерированный
	for i := range next.Services {
		if next.Services[i].ID == "" {
			id, err := s.newServiceID(next)
			if err != nil {
				return nil, err
			}
			next.Services[i].ID = id
		}
	}

	updated, err := s.apply(ctx, "Update", func(*domain.ShopSettings) (*domain.ShopSettings, error) {
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(updated), nil
}

// AddService добавляет услугу в конец каталога
func (s *Service) AddService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("AddService: name=%s", req.Name)

	svc := req.ToDomainService()

	updated, err := s.apply(ctx, "AddService", func(current *domain.ShopSettings) (*domain.ShopSettings, error) {
		if svc.ID == "" {
			id, err := s.newServiceID(current)
			if err != nil {
				return nil, err
			}
			svc.ID = id
		}
		current.Services = append(current.Services, svc)
		return current, nil
	})
	if err != nil {
		return nil, err
	}

	added, _ := updated.FindService(svc.ID)
	resp := models.FromDomainService(*added, true)
	return &resp, nil
}

// UpdateService заменяет услугу с указанным ID; ID в теле запроса игнорируется
func (s *Service) UpdateService(ctx context.Context, id string, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: id=%s", id)

	svc := req.ToDomainService()
	svc.ID = id

	updated, err := s.apply(ctx, "UpdateService", func(current *domain.ShopSettings) (*domain.ShopSettings, error) {
		existing, ok := current.FindService(id)
		if !ok {
			return nil, ErrServiceNotFound
		}
		*existing = svc
		return current, nil
	})
	if err != nil {
		return nil, err
	}

	changed, _ := updated.FindService(id)
	resp := models.FromDomainService(*changed, true)
	return &resp, nil
}

// RemoveService удаляет услугу из каталога. Существующие бронирования хранят снимок и не меняются.
func (s *Service) RemoveService(ctx context.Context, id string) error {
	s.logger.Info("RemoveService: id=%s", id)

	_, err := s.apply(ctx, "RemoveService", func(current *domain.ShopSettings) (*domain.ShopSettings, error) {
		for i := range current.Services {
			if current.Services[i].ID == id {
				current.Services = append(current.Services[:i], current.Services[i+1:]...)
				return current, nil
			}
		}
		return nil, ErrServiceNotFound
	})
	return err
}

// apply выполняет изменение над копией настроек, валидирует, сохраняет и только потом публикует
func (s *Service) apply(ctx context.Context, op string, mutate func(current *domain.ShopSettings) (*domain.ShopSettings, error)) (*domain.ShopSettings, error) {
	if _, err := s.Get(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.current.Clone())
	if err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, err
	}

	if err := validateSettings(next); err != nil {
		s.logger.Warn("%s: validation failed: %v", op, err)
		return nil, err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("%s: failed to save settings: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.current = next
	s.logger.Info("%s: settings saved", op)
	return next.Clone(), nil
}

func (s *Service) newServiceID(current *domain.ShopSettings) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		id, err := s.ids.NewID()
		if err != nil {
			return "", fmt.Errorf("%w: failed to generate id: %v", ErrInternal, err)
		}
		if _, taken := current.FindService(id); !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: could not generate a unique service id", ErrInternal)
}
