package manage_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/BarberBookingService/internal/api/handlers"
	"github.com/m04kA/BarberBookingService/internal/api/handlers/update_settings"
	"github.com/m04kA/BarberBookingService/internal/service/settings"
	"github.com/m04kA/BarberBookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные услуги"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleAdd POST /api/v1/admin/settings/services
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, "POST /admin/settings/services")
	if !ok {
		return
	}

	result, err := h.service.AddService(r.Context(), req)
	if err != nil {
		h.respondError(w, "POST /admin/settings/services", err)
		return
	}

	h.logger.Info("POST /admin/settings/services - Service added: id=%s, name=%s", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PUT /api/v1/admin/settings/services/{serviceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	req, ok := h.decode(w, r, "PUT /admin/settings/services/{id}")
	if !ok {
		return
	}

	result, err := h.service.UpdateService(r.Context(), serviceID, req)
	if err != nil {
		h.respondError(w, "PUT /admin/settings/services/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/settings/services/{id} - Service updated: id=%s", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleRemove DELETE /api/v1/admin/settings/services/{serviceId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	if err := h.service.RemoveService(r.Context(), serviceID); err != nil {
		h.respondError(w, "DELETE /admin/settings/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/settings/services/{id} - Service removed: id=%s", serviceID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string) (*models.ServiceRequest, bool) {
	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return nil, false
	}
	return &req, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if errors.Is(err, settings.ErrServiceNotFound) {
		h.logger.Warn("%s - Service not found: %v", route, err)
		handlers.RespondNotFound(w, msgServiceNotFound)
		return
	}
	if msg, ok := update_settings.MapSettingsError(err); ok {
		h.logger.Warn("%s - Rejected: %v", route, err)
		handlers.RespondBadRequest(w, msg)
		return
	}
	h.logger.Error("%s - Failed: %v", route, err)
	handlers.RespondInternalError(w)
}
