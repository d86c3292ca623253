package get_settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/infra/storage/kv"
	"github.com/m04kA/BarberBookingService/internal/service/settings"
	"github.com/m04kA/BarberBookingService/internal/service/settings/models"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/shortid"
)

func get(h *Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Handle(rr, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	return rr
}

func TestHandle_DefaultsWhenNothingStored(t *testing.T) {
	svc := settings.NewService(kv.NewSettingsRepository(kv.NewMemoryStore()), shortid.Random{Length: 9}, logger.Nop())
	rr := get(NewHandler(svc, logger.Nop()))
	require.Equal(t, http.StatusOK, rr.Code)

	var body models.SettingsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "09:00", body.OpenTime)
	assert.Equal(t, "19:00", body.CloseTime)
	assert.Equal(t, 30, body.SlotInterval)
	require.Len(t, body.Services, 3)
	// Владелец видит цены независимо от showPrices
	assert.NotNil(t, body.Services[0].Price)
}

type failingService struct{}

func (failingService) GetSettings(context.Context) (*models.SettingsResponse, error) {
	return nil, errors.New("redis down")
}

func TestHandle_Error(t *testing.T) {
	rr := get(NewHandler(failingService{}, logger.Nop()))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
