package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
	PastSlotGraceMinutes       = 10 // слот считается прошедшим, если начинается не позже чем через 10 минут
	ReminderLeadMinutes        = 30
	BookingIDLength            = 9
)

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxCustomIntervalMinutes  = 240
	MaxNameLength             = 100
	MaxPhoneLength            = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllowedSlotIntervals список допустимых шагов сетки магазина в минутах
var AllowedSlotIntervals = []int{15, 20, 30, 45, 60}

// AllStatuses список всех статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// IsAllowedSlotInterval reports whether minutes is one of AllowedSlotIntervals
func IsAllowedSlotInterval(minutes int) bool {
	for _, v := range AllowedSlotIntervals {
		if v == minutes {
			return true
		}
	}
	return false
}
