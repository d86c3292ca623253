package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func newRouter(t *testing.T, seed ...*domain.Booking) *mux.Router {
	t.Helper()
	repo := kv.NewBookingRepository(kv.NewMemoryStore(), logger.Nop())
	for _, b := range seed {
		_, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
	}

	h := NewHandler(bookings.NewService(repo, staticSettings{}, txmanager.NewLocalManager(), nil, logger.Nop()), logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPatch)
	return r
}

func cancel(r *mux.Router, id string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/bookings/"+id+"/cancel", nil))
	return rr
}

func TestHandle(t *testing.T) {
	r := newRouter(t,
		&domain.Booking{ID: "abc", Date: "2030-05-02", Time: "10:00", Status: domain.StatusConfirmed},
		&domain.Booking{ID: "done", Date: "2030-05-02", Time: "11:00", Status: domain.StatusCompleted},
	)

	rr := cancel(r, "abc")
	require.Equal(t, http.StatusOK, rr.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Status)

	assert.Equal(t, http.StatusConflict, cancel(r, "abc").Code, "second cancel")
	assert.Equal(t, http.StatusConflict, cancel(r, "done").Code)
	assert.Equal(t, http.StatusNotFound, cancel(r, "missing").Code)
}
