package update_booking_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage/kv"
	"github.com/m04kA/BarberBookingService/internal/service/bookings"
	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/txmanager"
)

type staticSettings struct{}

func (staticSettings) Get(context.Context) (*domain.ShopSettings, error) {
	return domain.DefaultSettings(), nil
}

func TestHandle(t *testing.T) {
	repo := kv.NewBookingRepository(kv.NewMemoryStore(), logger.Nop())
	_, err := repo.Create(context.Background(), &domain.Booking{
		ID: "abc", Date: "2030-05-02", Time: "10:00", Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	h := NewHandler(bookings.NewService(repo, staticSettings{}, txmanager.NewLocalManager(), nil, logger.Nop()), logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/admin/bookings/{bookingId}/status", h.Handle).Methods(http.MethodPatch)

	patch := func(id, body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/admin/bookings/"+id+"/status", strings.NewReader(body)))
		return rr
	}

	rr := patch("abc", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "completed", body.Status)

	stored, err := repo.GetByID(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)

	assert.Equal(t, http.StatusBadRequest, patch("abc", `{"status":"archived"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch("abc", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch("abc", `{"status":"pending","extra":1}`).Code)
	assert.Equal(t, http.StatusNotFound, patch("missing", `{"status":"pending"}`).Code)
}

func TestHandle_RestoreOntoTakenSlot(t *testing.T) {
	repo := kv.NewBookingRepository(kv.NewMemoryStore(), logger.Nop())
	ctx := context.Background()
	for _, b := range []*domain.Booking{
		{ID: "old", Date: "2030-05-02", Time: "10:00", Status: domain.StatusCancelled},
		{ID: "new", Date: "2030-05-02", Time: "10:00", Status: domain.StatusConfirmed},
	} {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}

	h := NewHandler(bookings.NewService(repo, staticSettings{}, txmanager.NewLocalManager(), nil, logger.Nop()), logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/admin/bookings/{bookingId}/status", h.Handle).Methods(http.MethodPatch)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/admin/bookings/old/status", strings.NewReader(`{"status":"confirmed"}`)))
	assert.Equal(t, http.StatusConflict, rr.Code)

	stored, err := repo.GetByID(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}
