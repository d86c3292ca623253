package get_booking_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/BarberBookingService/internal/api/handlers"
	"github.com/m04kA/BarberBookingService/internal/calendar"
	"github.com/m04kA/BarberBookingService/internal/service/bookings"
)

const (
	msgNotFound    = "бронирование не найдено"
	contentTypeICS = "text/calendar; charset=utf-8"
)

type Handler struct {
	service      BookingService
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service BookingService, settings SettingsProvider, logger Logger) *Handler {
	return &Handler{
		service:      service,
		settings:     settings,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/calendar.ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.service.GetDomainByID(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("GET /bookings/{id}/calendar.ics - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id}/calendar.ics - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings/{id}/calendar.ics - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	doc, err := calendar.BuildICS(booking, settings, time.Local, h.timeProvider.Now())
	if err != nil {
		h.logger.Error("GET /bookings/{id}/calendar.ics - Failed to build ICS: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/{id}/calendar.ics - Calendar exported: booking_id=%s", bookingID)
	handlers.RespondFile(w, contentTypeICS, calendar.ICSFilename(booking), []byte(doc))
}
