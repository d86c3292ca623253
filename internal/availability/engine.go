// Package availability computes the bookable slot grid of a day and is the
// single gate every booking create or reschedule passes through.
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// Proposal is a (date, time) pair about to be committed as a booking
type Proposal struct {
	Date      types.DateString
	Time      types.TimeString
	ServiceID string
}

// ResolveInterval returns the slot spacing for a service: its own override when
// set and positive, the shop-wide interval otherwise.
func ResolveInterval(service *domain.Service, settings *domain.ShopSettings) int {
	if service != nil && service.HasCustomInterval() {
		return *service.CustomIntervalMinutes
	}
	return settings.SlotIntervalMinutes
}

// ValidateHours checks that the shop closes after it opens
func ValidateHours(open, close types.TimeString) error {
	o, err := open.Minutes()
	if err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidHours, err)
	}
	c, err := close.Minutes()
	if err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidHours, err)
	}
	if c <= o {
		return ErrInvalidHours
	}
	return nil
}

// GenerateSlots returns every slot start in [open, close) spaced by interval,
// marking slots taken by a non-cancelled booking on date and slots that are
// already past on today's date. Invalid hours or interval give an empty grid.
//
// The end of the last slot (start + service duration) is not checked against close.
func GenerateSlots(
	date types.DateString,
	open, close types.TimeString,
	intervalMinutes int,
	bookings []*domain.Booking,
	now time.Time,
) []domain.Slot {
	if intervalMinutes <= 0 || ValidateHours(open, close) != nil {
		return []domain.Slot{}
	}

	openMin, _ := open.Minutes()
	closeMin, _ := close.Minutes()

	booked := bookedMinutes(date, bookings)
	today := isToday(date, now)
	threshold := minuteOfDay(now) + domain.PastSlotGraceMinutes

	slots := make([]domain.Slot, 0, (closeMin-openMin)/intervalMinutes+1)
	for cursor := openMin; cursor < closeMin; cursor += intervalMinutes {
		label, err := types.FromMinutes(cursor)
		if err != nil {
			break
		}
		_, isBooked := booked[cursor]
		slots = append(slots, domain.Slot{
			Time:     label,
			IsBooked: isBooked,
			IsPast:   today && cursor <= threshold,
		})
	}

	return slots
}

// ValidateBooking rejects a proposal that collides with another non-cancelled
// booking (ignoring excludeBookingID) or that is already past. Collision is
// checked first.
func ValidateBooking(
	proposal Proposal,
	bookings []*domain.Booking,
	excludeBookingID string,
	now time.Time,
) error {
	if err := proposal.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if err := proposal.Time.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	for _, b := range bookings {
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if b.Occupies(proposal.Date, proposal.Time) {
			return fmt.Errorf("%w: %s %s", ErrDoubleBooked, proposal.Date, proposal.Time)
		}
	}

	if IsPast(proposal.Date, proposal.Time, now) {
		return fmt.Errorf("%w: %s %s", ErrSlotInPast, proposal.Date, proposal.Time)
	}

	return nil
}

// IsPast reports whether a slot on date at t would be shown as past at now
func IsPast(date types.DateString, t types.TimeString, now time.Time) bool {
	if !isToday(date, now) {
		return false
	}
	m, err := t.Minutes()
	if err != nil {
		return true
	}
	return m <= minuteOfDay(now)+domain.PastSlotGraceMinutes
}

// IsOnGrid reports whether t is one of the slot starts GenerateSlots would emit
func IsOnGrid(open, close types.TimeString, intervalMinutes int, t types.TimeString) bool {
	if intervalMinutes <= 0 || ValidateHours(open, close) != nil {
		return false
	}
	openMin, _ := open.Minutes()
	closeMin, _ := close.Minutes()
	m, err := t.Minutes()
	if err != nil {
		return false
	}
	return m >= openMin && m < closeMin && (m-openMin)%intervalMinutes == 0
}

// bookedMinutes собирает минуты начала активных бронирований на дату
func bookedMinutes(date types.DateString, bookings []*domain.Booking) map[int]struct{} {
	out := make(map[int]struct{}, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() || b.Date != date {
			continue
		}
		m, err := b.Time.Minutes()
		if err != nil {
			// Повреждённые записи не занимают слоты
			continue
		}
		out[m] = struct{}{}
	}
	return out
}

func isToday(date types.DateString, now time.Time) bool {
	return date == types.NewDateString(now)
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
