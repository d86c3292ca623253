package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidDate возвращается при некорректной или прошедшей дате бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом сетки
	ErrInvalidTimeSlot = errors.New("time is not a valid slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("slot not available")

	// ErrTooLateToBook возвращается, когда слот уже прошёл или начинается слишком скоро
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// Причины отказа для метрик
const (
	reasonDoubleBooked = "double_booked"
	reasonPast         = "past"
	reasonOffGrid      = "off_grid"
)
