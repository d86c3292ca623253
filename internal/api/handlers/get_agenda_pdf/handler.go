package get_agenda_pdf

import (
	"errors"
	"net/http"

	"github.com/m04kA/BarberBookingService/internal/api/handlers"
	"github.com/m04kA/BarberBookingService/internal/api/handlers/get_agenda"
	"github.com/m04kA/BarberBookingService/internal/calendar"
	"github.com/m04kA/BarberBookingService/internal/report"
	"github.com/m04kA/BarberBookingService/internal/service/bookings"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	contentTypePDF = "application/pdf"
)

type Handler struct {
	service      BookingService
	settings     SettingsProvider
	publicURL    string
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service BookingService, settings SettingsProvider, publicURL string, logger Logger) *Handler {
	return &Handler{
		service:      service,
		settings:     settings,
		publicURL:    publicURL,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Handle GET /api/v1/admin/agenda.pdf
// Query params: date (опционально, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := get_agenda.ParseDate(r, h.timeProvider)
	if err != nil {
		h.logger.Warn("GET /admin/agenda.pdf - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	agenda, err := h.service.GetAgenda(r.Context(), date)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /admin/agenda.pdf - Failed to build agenda: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/agenda.pdf - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	var bookingURL string
	if h.publicURL != "" {
		bookingURL = calendar.BookingPageURL(h.publicURL)
	}

	doc, err := report.AgendaPDF(settings, agenda, bookingURL)
	if err != nil {
		h.logger.Error("GET /admin/agenda.pdf - Failed to render PDF: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/agenda.pdf - Agenda rendered: date=%s, size=%d bytes", date, len(doc))
	handlers.RespondFile(w, contentTypePDF, report.AgendaFilename(date.String()), doc)
}
