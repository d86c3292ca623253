package get_shop

import (
	"net/http"

	"github.com/m04kA/BarberBookingService/internal/api/handlers"
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

// Handle GET /api/v1/shop
// Публичный вид магазина; цены скрыты, если владелец отключил showPrices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shop, err := h.service.GetPublic(r.Context())
	if err != nil {
		h.logger.Error("GET /shop - Failed to get shop: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, shop)
}
