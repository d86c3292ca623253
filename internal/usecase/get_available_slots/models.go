package get_available_slots

import (
	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// Request модель запроса на получение сетки слотов.
// Для нового бронирования передаётся ServiceID, для переноса - ExcludeBookingID:
// тогда используется снимок услуги из бронирования, а его собственный слот считается свободным.
type Request struct {
	ServiceID        string
	Date             types.DateString
	ExcludeBookingID string
}

// Response модель ответа с сеткой слотов на день
type Response struct {
	Date            types.DateString
	Service         domain.Service
	IntervalMinutes int           // Шаг сетки после учёта переопределения услуги
	Slots           []domain.Slot // Все слоты дня, включая занятые и прошедшие
	AvailableCount  int
}
