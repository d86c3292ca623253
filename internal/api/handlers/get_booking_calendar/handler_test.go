package get_booking_calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/service/bookings"
	"github.com/m04kA/BarberBookingService/pkg/logger"
)

type stubBookings struct {
	booking *domain.Booking
}

func (s *stubBookings) GetDomainByID(_ context.Context, id string) (*domain.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, bookings.ErrBookingNotFound
	}
	return s.booking, nil
}

type stubSettings struct{}

func (stubSettings) Get(context.Context) (*domain.ShopSettings, error) {
	return domain.DefaultSettings(), nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func TestHandle(t *testing.T) {
	b := &domain.Booking{
		ID:      "abc123xyz",
		Service: domain.Service{ID: "1", Name: "Taglio Classico", Price: 25, DurationMinutes: 30},
		Date:    "2030-05-02",
		Time:    "10:00",
		Status:  domain.StatusConfirmed,
	}
	h := NewHandler(&stubBookings{booking: b}, stubSettings{}, logger.Nop())
	h.timeProvider = fixedTime{t: time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)}

	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/calendar.ics", h.Handle)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/bookings/abc123xyz/calendar.ics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "appuntamento-abc123xyz.ics")
	assert.Contains(t, rr.Body.String(), "BEGIN:VEVENT")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/bookings/zzz/calendar.ics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
