package models

import (
	"time"

	"github.com/m04kA/BarberBookingService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на изменение статуса владельцем
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// Response модели

// ServiceResponse снимок услуги в бронировании
type ServiceResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Duration       int     `json:"duration"`
	CustomInterval *int    `json:"customInterval,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	Service       ServiceResponse `json:"service"`
	Date          string          `json:"date"` // "2025-10-15"
	Time          string          `json:"time"` // "10:00"
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TimelineEntry один слот дневной ленты владельца
type TimelineEntry struct {
	Time    string           `json:"time"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

// AgendaStats агрегаты по активным бронированиям дня
type AgendaStats struct {
	Total           int     `json:"total"`
	Pending         int     `json:"pending"`
	Confirmed       int     `json:"confirmed"`
	Completed       int     `json:"completed"`
	Cancelled       int     `json:"cancelled"`
	ExpectedRevenue float64 `json:"expectedRevenue"`
	BusiestHour     string  `json:"busiestHour,omitempty"` // "10:00"
}

// AgendaResponse дневная повестка владельца
type AgendaResponse struct {
	Date     string            `json:"date"`
	Timeline []TimelineEntry   `json:"timeline"`
	Bookings []BookingResponse `json:"bookings"`
	Stats    AgendaStats       `json:"stats"`
	Summary  string            `json:"summary"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Service:       FromDomainService(b.Service),
		Date:          b.Date.String(),
		Time:          b.Time.String(),
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainService конвертирует услугу в DTO
func FromDomainService(s domain.Service) ServiceResponse {
	resp := ServiceResponse{
		ID:       s.ID,
		Name:     s.Name,
		Price:    s.Price,
		Duration: s.DurationMinutes,
	}
	if s.HasCustomInterval() {
		v := *s.CustomIntervalMinutes
		resp.CustomInterval = &v
	}
	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			out = append(out, *resp)
		}
	}
	return out
}
