package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/BarberBookingService/internal/api/handlers"
	"github.com/m04kA/BarberBookingService/internal/service/settings"
	"github.com/m04kA/BarberBookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные настроек"
	msgInvalidHours       = "время закрытия должно быть позже времени открытия"
	msgInvalidInterval    = "недопустимый шаг сетки, ожидается 15, 20, 30, 45 или 60 минут"
	msgInvalidService     = "некорректная услуга в каталоге"
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

// Handle PUT /api/v1/admin/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /admin/settings - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, err)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if msg, ok := MapSettingsError(err); ok {
			h.logger.Warn("PUT /admin/settings - Rejected: %v", err)
			handlers.RespondBadRequest(w, msg)
			return
		}
		h.logger.Error("PUT /admin/settings - Failed to update settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/settings - Settings updated: services=%d, interval=%d", len(result.Services), result.SlotInterval)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// MapSettingsError возвращает сообщение для ошибок валидации настроек
func MapSettingsError(err error) (string, bool) {
	switch {
	case errors.Is(err, settings.ErrInvalidHours):
		return msgInvalidHours, true
	case errors.Is(err, settings.ErrInvalidInterval):
		return msgInvalidInterval, true
	case errors.Is(err, settings.ErrInvalidService):
		return msgInvalidService, true
	case errors.Is(err, settings.ErrInvalidInput):
		return msgValidationFailed, true
	}
	return "", false
}
