package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotReschedule возвращается для отменённых и завершённых бронирований
	ErrCannotReschedule = errors.New("booking cannot be rescheduled")

	// ErrInvalidDate возвращается при некорректной или прошедшей дате
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом сетки
	ErrInvalidTimeSlot = errors.New("time is not a valid slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят другим бронированием
	ErrSlotNotAvailable = errors.New("slot not available")

	// ErrTooLateToBook возвращается, когда новый слот уже прошёл
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// Причины отказа для метрик, те же, что при создании бронирования
const (
	reasonDoubleBooked = "double_booked"
	reasonPast         = "past"
	reasonOffGrid      = "off_grid"
)
