package get_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/BarberBookingService/internal/api/handlers"
	"github.com/m04kA/BarberBookingService/internal/calendar"
	"github.com/m04kA/BarberBookingService/internal/service/bookings"
)

const msgNotFound = "бронирование не найдено"

type Handler struct {
	service   BookingService
	settings  SettingsProvider
	publicURL string
	apiBase   string
	logger    Logger
}

// NewHandler publicURL - адрес клиентского приложения, apiBase - префикс API для ссылки на .ics
func NewHandler(service BookingService, settings SettingsProvider, publicURL, apiBase string, logger Logger) *Handler {
	return &Handler{
		service:   service,
		settings:  settings,
		publicURL: publicURL,
		apiBase:   apiBase,
		logger:    logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.service.GetDomainByID(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings/{id} - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	links, err := calendar.BuildLinks(h.publicURL, h.apiBase, booking, settings, time.Local)
	if err != nil {
		h.logger.Error("GET /bookings/{id} - Failed to build links: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, toResponse(booking, settings, links))
}
