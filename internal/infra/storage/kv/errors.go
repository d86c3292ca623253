package kv

import "errors"

var (
	// ErrKeyNotFound возвращается, когда ключ или поле отсутствует
	ErrKeyNotFound = errors.New("kv: key not found")

	// ErrStore возвращается при ошибках бэкенда хранилища
	ErrStore = errors.New("kv: store error")

	// ErrDecode возвращается при ошибке декодирования записи
	ErrDecode = errors.New("kv: failed to decode record")

	// ErrEncode возвращается при ошибке кодирования записи
	ErrEncode = errors.New("kv: failed to encode record")
)
