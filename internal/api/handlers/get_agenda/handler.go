package get_agenda

import (
	"errors"
	"net/http"

	"github.com/m04kA/BarberBookingService/internal/api/handlers"
	"github.com/m04kA/BarberBookingService/internal/service/bookings"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service      BookingService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Handle GET /api/v1/admin/agenda
// Query params: date (опционально, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := ParseDate(r, h.timeProvider)
	if err != nil {
		h.logger.Warn("GET /admin/agenda - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	agenda, err := h.service.GetAgenda(r.Context(), date)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/agenda - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /admin/agenda - Failed to build agenda: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/agenda - Agenda built: date=%s, bookings=%d", date, len(agenda.Bookings))
	handlers.RespondJSON(w, http.StatusOK, agenda)
}

// ParseDate читает query-параметр date; пустое значение означает сегодняшнюю дату
func ParseDate(r *http.Request, tp TimeProvider) (types.DateString, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return types.NewDateString(tp.Now()), nil
	}
	return types.NewDateStringFromString(raw)
}
