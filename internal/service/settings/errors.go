package settings

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidHours возвращается, когда время закрытия не позже открытия
	ErrInvalidHours = errors.New("close time must be after open time")

	// ErrInvalidInterval возвращается при недопустимом шаге сетки
	ErrInvalidInterval = errors.New("invalid slot interval")

	// ErrInvalidService возвращается при некорректной услуге каталога
	ErrInvalidService = errors.New("invalid service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
