package summaryservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("summaryservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("summaryservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Вызывающая сторона должна построить сводку локально.
	ErrServiceDegraded = errors.New("summaryservice unavailable: graceful degradation applied")
)
