package settings

import (
	"fmt"
	"strings"

	"github.com/m04kA/BarberBookingService/internal/availability"
	"github.com/m04kA/BarberBookingService/internal/domain"
)

// validateSettings проверяет настройки целиком перед сохранением
func validateSettings(s *domain.ShopSettings) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: shop name is required", ErrInvalidInput)
	}

	if err := availability.ValidateHours(s.OpenTime, s.CloseTime); err != nil {
		return fmt.Errorf("%w: %s - %s", ErrInvalidHours, s.OpenTime, s.CloseTime)
	}

	if !domain.IsAllowedSlotInterval(s.SlotIntervalMinutes) {
		return fmt.Errorf("%w: %d (allowed: %v)", ErrInvalidInterval, s.SlotIntervalMinutes, domain.AllowedSlotIntervals)
	}

	seen := make(map[string]struct{}, len(s.Services))
	for i := range s.Services {
		svc := &s.Services[i]
		if err := validateService(svc); err != nil {
			return err
		}
		if _, dup := seen[svc.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidService, svc.ID)
		}
		seen[svc.ID] = struct{}{}
	}

	return nil
}

// validateService проверяет одну услугу каталога
func validateService(svc *domain.Service) error {
	if svc.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidService)
	}
	if strings.TrimSpace(svc.Name) == "" {
		return fmt.Errorf("%w: name is required (id=%s)", ErrInvalidService, svc.ID)
	}
	if svc.Price < 0 {
		return fmt.Errorf("%w: negative price (id=%s)", ErrInvalidService, svc.ID)
	}
	if svc.DurationMinutes < domain.MinServiceDurationMinutes || svc.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration %d out of range (id=%s)", ErrInvalidService, svc.DurationMinutes, svc.ID)
	}
	if svc.CustomIntervalMinutes != nil && *svc.CustomIntervalMinutes > domain.MaxCustomIntervalMinutes {
		return fmt.Errorf("%w: custom interval %d too large (id=%s)", ErrInvalidService, *svc.CustomIntervalMinutes, svc.ID)
	}
	return nil
}
