package update_settings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/infra/storage/kv"
	"github.com/m04kA/BarberBookingService/internal/service/settings"
	"github.com/m04kA/BarberBookingService/internal/service/settings/models"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/shortid"
)

func put(h *Handler, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Handle(rr, httptest.NewRequest(http.MethodPut, "/admin/settings", strings.NewReader(body)))
	return rr
}

func TestHandle(t *testing.T) {
	svc := settings.NewService(kv.NewSettingsRepository(kv.NewMemoryStore()), shortid.Random{Length: 9}, logger.Nop())
	h := NewHandler(svc, logger.Nop())

	rr := put(h, `{"name":"Da Gino","address":"Via Po 1","phone":"1","openTime":"8:00","closeTime":"12:00",
		"slotInterval":20,"services":[{"name":"Taglio","price":18,"duration":30}],"showPrices":false,"smsEnabled":false}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var body models.SettingsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "08:00", body.OpenTime)
	assert.Equal(t, 20, body.SlotInterval)
	require.Len(t, body.Services, 1)
	assert.NotEmpty(t, body.Services[0].ID)
}

func TestHandle_Rejected(t *testing.T) {
	svc := settings.NewService(kv.NewSettingsRepository(kv.NewMemoryStore()), shortid.Random{Length: 9}, logger.Nop())
	h := NewHandler(svc, logger.Nop())

	tests := []struct {
		name string
		body string
	}{
		{"bad interval", `{"name":"a","openTime":"09:00","closeTime":"12:00","slotInterval":25,"services":[]}`},
		{"close before open", `{"name":"a","openTime":"12:00","closeTime":"09:00","slotInterval":30,"services":[]}`},
		{"bad time", `{"name":"a","openTime":"noon","closeTime":"19:00","slotInterval":30,"services":[]}`},
		{"missing name", `{"openTime":"09:00","closeTime":"12:00","slotInterval":30,"services":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, put(h, tt.body).Code)
		})
	}

	// неудачные попытки не меняют настройки
	current, err := svc.GetSettings(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.NoError(t, err)
	assert.Equal(t, "Barberia Smart", current.Name)
}
