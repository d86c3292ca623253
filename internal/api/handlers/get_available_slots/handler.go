package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/BarberBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/BarberBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate        = "нельзя выбрать прошедшую дату"
	msgServiceNotFound = "услуга не найдена"
	msgBookingNotFound = "бронирование не найдено"
)

type Handler struct {
	useCase SlotGridProvider
	logger  Logger
}

func NewHandler(useCase SlotGridProvider, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleForService GET /api/v1/services/{serviceId}/available-slots?date=YYYY-MM-DD
func (h *Handler) HandleForService(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "GET /services/{id}/available-slots", mux.Vars(r)["serviceId"], "")
}

// HandleForBooking GET /api/v1/bookings/{bookingId}/available-slots?date=YYYY-MM-DD
// Сетка для переноса: собственный слот бронирования считается свободным.
func (h *Handler) HandleForBooking(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "GET /bookings/{id}/available-slots", "", mux.Vars(r)["bookingId"])
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route, serviceID, bookingID string) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("%s - Missing date", route)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, bookingID, dateStr)
	if err != nil {
		h.logger.Warn("%s - Invalid date format: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("%s - Service not found: service_id=%s", route, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("%s - Past or invalid date: %s", route, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("%s - Failed to get available slots: date=%s, error=%v", route, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Slots retrieved: date=%s, service=%s, available=%d",
		route, dateStr, result.Service.ID, result.AvailableCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
