package get_shop_qr

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/BarberBookingService/pkg/logger"
)

func TestHandle(t *testing.T) {
	h := NewHandler("https://barberia.example", logger.Nop())

	rr := httptest.NewRecorder()
	h.Handle(rr, httptest.NewRequest(http.MethodGet, "/shop/qr.png?size=128", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))

	rr = httptest.NewRecorder()
	h.Handle(rr, httptest.NewRequest(http.MethodGet, "/shop/qr.png?size=5000", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
