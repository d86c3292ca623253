package manage_services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/infra/storage/kv"
	"github.com/m04kA/BarberBookingService/internal/service/settings"
	"github.com/m04kA/BarberBookingService/internal/service/settings/models"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/shortid"
)

func newRouter(t *testing.T) (*mux.Router, *settings.Service) {
	t.Helper()
	svc := settings.NewService(kv.NewSettingsRepository(kv.NewMemoryStore()), shortid.Random{Length: 9}, logger.Nop())

	h := NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/services", h.HandleAdd).Methods(http.MethodPost)
	r.HandleFunc("/services/{serviceId}", h.HandleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/services/{serviceId}", h.HandleRemove).Methods(http.MethodDelete)
	return r, svc
}

func send(r http.Handler, method, url, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, url, strings.NewReader(body)))
	return rr
}

func TestServiceLifecycle(t *testing.T) {
	r, svc := newRouter(t)

	rr := send(r, http.MethodPost, "/services", `{"name":"Shampoo","price":10,"duration":15,"customInterval":15}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var added models.ServiceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.Len(t, added.ID, 9)
	require.NotNil(t, added.CustomInterval)
	assert.Equal(t, 15, *added.CustomInterval)

	rr = send(r, http.MethodPut, "/services/"+added.ID, `{"name":"Shampoo Deluxe","price":12,"duration":20}`)
	require.Equal(t, http.StatusOK, rr.Code)

	current, err := svc.GetSettings(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.NoError(t, err)
	require.Len(t, current.Services, 4)
	assert.Equal(t, "Shampoo Deluxe", current.Services[3].Name)
	assert.Nil(t, current.Services[3].CustomInterval)

	rr = send(r, http.MethodDelete, "/services/"+added.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = send(r, http.MethodDelete, "/services/"+added.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServiceValidation(t *testing.T) {
	r, _ := newRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"price":10,"duration":15}`},
		{"zero duration", `{"name":"x","price":10,"duration":0}`},
		{"negative price", `{"name":"x","price":-1,"duration":10}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := send(r, http.MethodPost, "/services", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	rr := send(r, http.MethodPut, "/services/nope", `{"name":"x","price":1,"duration":10}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
