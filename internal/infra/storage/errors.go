// Package storage holds the errors shared by every storage backend
package storage

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("storage: booking not found")

	// ErrBookingAlreadyExists возвращается при коллизии идентификатора бронирования
	ErrBookingAlreadyExists = errors.New("storage: booking id already exists")

	// ErrSlotTaken возвращается, когда хранилище само обнаружило занятый слот
	ErrSlotTaken = errors.New("storage: slot already taken")

	// ErrSettingsNotFound возвращается, когда настройки ещё не сохранялись
	ErrSettingsNotFound = errors.New("storage: settings not found")
)
