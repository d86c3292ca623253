package models

import (
	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// Request модели

// ServiceRequest услуга каталога во входящем запросе
type ServiceRequest struct {
	ID             string  `json:"id,omitempty"` // пусто - будет сгенерирован
	Name           string  `json:"name" validate:"required,max=100"`
	Price          float64 `json:"price" validate:"gte=0"`
	Duration       int     `json:"duration" validate:"required,gt=0"`
	CustomInterval *int    `json:"customInterval,omitempty" validate:"omitempty,gte=0"`
}

// UpdateSettingsRequest полная замена настроек магазина
type UpdateSettingsRequest struct {
	Name         string           `json:"name" validate:"required,max=100"`
	Address      string           `json:"address" validate:"max=200"`
	Phone        string           `json:"phone" validate:"max=32"`
	OpenTime     string           `json:"openTime" validate:"required"`
	CloseTime    string           `json:"closeTime" validate:"required"`
	SlotInterval int              `json:"slotInterval" validate:"required,oneof=15 20 30 45 60"`
	Services     []ServiceRequest `json:"services" validate:"dive"`
	ShowPrices   bool             `json:"showPrices"`
	SMSEnabled   bool             `json:"smsEnabled"`
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Price          *float64 `json:"price,omitempty"` // скрывается в публичном виде при showPrices=false
	Duration       int      `json:"duration"`
	CustomInterval *int     `json:"customInterval,omitempty"`
}

// SettingsResponse настройки магазина для владельца
type SettingsResponse struct {
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	OpenTime     string            `json:"openTime"`
	CloseTime    string            `json:"closeTime"`
	SlotInterval int               `json:"slotInterval"`
	Services     []ServiceResponse `json:"services"`
	ShowPrices   bool              `json:"showPrices"`
	SMSEnabled   bool              `json:"smsEnabled"`
}

// PublicShopResponse публичный вид магазина для клиентов
type PublicShopResponse struct {
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	OpenTime     string            `json:"openTime"`
	CloseTime    string            `json:"closeTime"`
	SlotInterval int               `json:"slotInterval"`
	ShowPrices   bool              `json:"showPrices"`
	Services     []ServiceResponse `json:"services"`
}

// Методы конвертации

// ToDomainService конвертирует запрос в domain услугу
func (r *ServiceRequest) ToDomainService() domain.Service {
	svc := domain.Service{
		ID:              r.ID,
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.Duration,
	}
	if r.CustomInterval != nil && *r.CustomInterval > 0 {
		v := *r.CustomInterval
		svc.CustomIntervalMinutes = &v
	}
	return svc
}

// ToDomainSettings конвертирует запрос в domain настройки.
// Время нормализуется ("9:00" -> "09:00"); ошибка формата возвращается как есть.
func (r *UpdateSettingsRequest) ToDomainSettings() (*domain.ShopSettings, error) {
	open, err := types.NewTimeStringFromString(r.OpenTime)
	if err != nil {
		return nil, err
	}
	closeTime, err := types.NewTimeStringFromString(r.CloseTime)
	if err != nil {
		return nil, err
	}

	s := &domain.ShopSettings{
		Name:                r.Name,
		Address:             r.Address,
		Phone:               r.Phone,
		OpenTime:            open,
		CloseTime:           closeTime,
		SlotIntervalMinutes: r.SlotInterval,
		ShowPrices:          r.ShowPrices,
		SMSEnabled:          r.SMSEnabled,
		Services:            make([]domain.Service, 0, len(r.Services)),
	}
	for i := range r.Services {
		s.Services = append(s.Services, r.Services[i].ToDomainService())
	}
	return s, nil
}

// FromDomainService конвертирует услугу в DTO; withPrice=false скрывает цену
func FromDomainService(s domain.Service, withPrice bool) ServiceResponse {
	resp := ServiceResponse{
		ID:       s.ID,
		Name:     s.Name,
		Duration: s.DurationMinutes,
	}
	if withPrice {
		price := s.Price
		resp.Price = &price
	}
	if s.HasCustomInterval() {
		v := *s.CustomIntervalMinutes
		resp.CustomInterval = &v
	}
	return resp
}

// FromDomainSettings конвертирует настройки в DTO владельца
func FromDomainSettings(s *domain.ShopSettings) *SettingsResponse {
	resp := &SettingsResponse{
		Name:         s.Name,
		Address:      s.Address,
		Phone:        s.Phone,
		OpenTime:     s.OpenTime.String(),
		CloseTime:    s.CloseTime.String(),
		SlotInterval: s.SlotIntervalMinutes,
		ShowPrices:   s.ShowPrices,
		SMSEnabled:   s.SMSEnabled,
		Services:     make([]ServiceResponse, 0, len(s.Services)),
	}
	for _, svc := range s.Services {
		resp.Services = append(resp.Services, FromDomainService(svc, true))
	}
	return resp
}

// FromDomainPublic конвертирует настройки в публичный DTO
func FromDomainPublic(s *domain.ShopSettings) *PublicShopResponse {
	resp := &PublicShopResponse{
		Name:         s.Name,
		Address:      s.Address,
		Phone:        s.Phone,
		OpenTime:     s.OpenTime.String(),
		CloseTime:    s.CloseTime.String(),
		SlotInterval: s.SlotIntervalMinutes,
		ShowPrices:   s.ShowPrices,
		Services:     make([]ServiceResponse, 0, len(s.Services)),
	}
	for _, svc := range s.Services {
		resp.Services = append(resp.Services, FromDomainService(svc, s.ShowPrices))
	}
	return resp
}
