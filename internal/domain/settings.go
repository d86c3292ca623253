package domain

import (
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// Service is a purchasable offering of the shop
type Service struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Price                 float64 `json:"price"`
	DurationMinutes       int     `json:"duration"`
	CustomIntervalMinutes *int    `json:"customInterval,omitempty"` // переопределяет интервал магазина, если > 0
}

// HasCustomInterval returns true if the service overrides the shop-wide slot interval
func (s *Service) HasCustomInterval() bool {
	return s.CustomIntervalMinutes != nil && *s.CustomIntervalMinutes > 0
}

// ShopSettings is the process-wide shop configuration
type ShopSettings struct {
	Name                string           `json:"name"`
	Address             string           `json:"address"`
	Phone               string           `json:"phone"`
	OpenTime            types.TimeString `json:"openTime"`
	CloseTime           types.TimeString `json:"closeTime"`
	SlotIntervalMinutes int              `json:"slotInterval"`
	Services            []Service        `json:"services"`
	ShowPrices          bool             `json:"showPrices"`
	SMSEnabled          bool             `json:"smsEnabled"`
}

// FindService returns the catalog entry with the given id
func (s *ShopSettings) FindService(id string) (*Service, bool) {
	for i := range s.Services {
		if s.Services[i].ID == id {
			return &s.Services[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy so callers can mutate without touching shared state
func (s *ShopSettings) Clone() *ShopSettings {
	out := *s
	out.Services = make([]Service, len(s.Services))
	for i, svc := range s.Services {
		if svc.CustomIntervalMinutes != nil {
			v := *svc.CustomIntervalMinutes
			svc.CustomIntervalMinutes = &v
		}
		out.Services[i] = svc
	}
	return &out
}

// DefaultSettings returns the settings used when nothing is persisted yet
func DefaultSettings() *ShopSettings {
	return &ShopSettings{
		Name:                "Barberia Smart",
		Address:             "Via Roma 12, Milano",
		Phone:               "+39 0123 456789",
		OpenTime:            "09:00",
		CloseTime:           "19:00",
		SlotIntervalMinutes: DefaultSlotIntervalMinutes,
		ShowPrices:          true,
		SMSEnabled:          true,
		Services: []Service{
			{ID: "1", Name: "Taglio Classico", Price: 25, DurationMinutes: 30},
			{ID: "2", Name: "Cura Barba", Price: 15, DurationMinutes: 20},
			{ID: "3", Name: "Taglio & Barba", Price: 35, DurationMinutes: 50},
		},
	}
}
