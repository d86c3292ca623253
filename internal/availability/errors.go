package availability

import "errors"

var (
	// ErrDoubleBooked возвращается, когда слот уже занят активным бронированием
	ErrDoubleBooked = errors.New("availability: slot already booked")

	// ErrSlotInPast возвращается, когда слот уже прошёл или попадает в grace-окно
	ErrSlotInPast = errors.New("availability: slot is in the past")

	// ErrInvalidHours возвращается, когда время закрытия не позже времени открытия
	ErrInvalidHours = errors.New("availability: closing time must be after opening time")

	// ErrInvalidSlot возвращается при некорректной дате или времени предлагаемого слота
	ErrInvalidSlot = errors.New("availability: malformed slot date or time")
)
