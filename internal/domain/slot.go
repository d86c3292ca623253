package domain

import "github.com/m04kA/BarberBookingService/pkg/types"

// Slot represents one candidate start time within shop hours
type Slot struct {
	Time     types.TimeString
	IsBooked bool // занят активным бронированием
	IsPast   bool // уже прошёл или начинается в пределах grace-окна
}

// IsAvailable returns true if the slot can be booked
func (s *Slot) IsAvailable() bool {
	return !s.IsBooked && !s.IsPast
}

// CountAvailable returns how many slots are bookable
func CountAvailable(slots []Slot) int {
	n := 0
	for i := range slots {
		if slots[i].IsAvailable() {
			n++
		}
	}
	return n
}
