package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BarberBookingService/pkg/types"
)

// ErrInvalidStatus is returned when a status value is not one of the known variants
var ErrInvalidStatus = errors.New("invalid booking status")

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus converts a raw value into a BookingStatus, rejecting unknown variants
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, valid := range AllStatuses {
		if BookingStatus(s) == valid {
			return valid, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s BookingStatus) IsValid() bool {
	_, err := ParseBookingStatus(string(s))
	return err == nil
}

// UnmarshalJSON rejects statuses outside the four known variants
func (s *BookingStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	parsed, err := ParseBookingStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Scan implements sql.Scanner with the same strictness as UnmarshalJSON
func (s *BookingStatus) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidStatus, src)
	}
	parsed, err := ParseBookingStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Booking represents a reservation of a service slot
type Booking struct {
	ID            string           `json:"id"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	Service       Service          `json:"service"` // снимок услуги на момент бронирования
	Date          types.DateString `json:"date"`
	Time          types.TimeString `json:"time"`
	Status        BookingStatus    `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true for completed and cancelled bookings
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the customer may still cancel
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if date and time may still change
func (b *Booking) CanBeRescheduled() bool {
	return !b.IsTerminal()
}

// Occupies reports whether the booking blocks the given date and time.
// Malformed dates or times never match.
func (b *Booking) Occupies(date types.DateString, t types.TimeString) bool {
	if !b.IsActive() || b.Date != date {
		return false
	}
	bm, err := b.Time.Minutes()
	if err != nil {
		return false
	}
	tm, err := t.Minutes()
	if err != nil {
		return false
	}
	return bm == tm
}

// StartsAt returns the booking start in loc
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	return b.Date.At(b.Time, loc)
}

// EndsAt returns the booking end (start + service duration) in loc
func (b *Booking) EndsAt(loc *time.Location) (time.Time, error) {
	start, err := b.StartsAt(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(b.Service.DurationMinutes) * time.Minute), nil
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	Date             *types.DateString // Конкретная дата (опционально)
	StartDate        *types.DateString // Начало периода включительно (опционально)
	EndDate          *types.DateString // Конец периода включительно (опционально)
	Status           *BookingStatus    // Фильтр по статусу (опционально)
	IncludeCancelled bool              // Включать ли отменённые бронирования
}

// Matches applies the filter in memory; used by the kv storage backend
func (f BookingsFilter) Matches(b *Booking) bool {
	if !f.IncludeCancelled && !b.IsActive() {
		return false
	}
	if f.Date != nil && b.Date != *f.Date {
		return false
	}
	if f.StartDate != nil && (b.Date.Validate() != nil || b.Date.IsBefore(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && (b.Date.Validate() != nil || f.EndDate.IsBefore(b.Date)) {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	return true
}
