package get_shop_qr

import (
	"net/http"
	"strconv"

	"github.com/m04kA/BarberBookingService/internal/api/handlers"
	"github.com/m04kA/BarberBookingService/internal/calendar"
	"github.com/m04kA/BarberBookingService/internal/report"
)

const (
	msgInvalidSize = "некорректный размер, ожидается число от 64 до 1024"
	minSize        = 64
	maxSize        = 1024
)

type Handler struct {
	publicURL string
	logger    Logger
}

func NewHandler(publicURL string, logger Logger) *Handler {
	return &Handler{
		publicURL: publicURL,
		logger:    logger,
	}
}

// Handle GET /api/v1/shop/qr.png
// Query params: size (опционально, пиксели)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	size := report.DefaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < minSize || v > maxSize {
			h.logger.Warn("GET /shop/qr.png - Invalid size: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidSize)
			return
		}
		size = v
	}

	png, err := report.QRCodePNG(calendar.BookingPageURL(h.publicURL), size)
	if err != nil {
		h.logger.Error("GET /shop/qr.png - Failed to render QR: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	handlers.RespondFile(w, "image/png", "", png)
}
