package get_agenda

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/service/bookings"
	"github.com/m04kA/BarberBookingService/internal/service/bookings/models"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type stubService struct {
	got types.DateString
	err error
}

func (s *stubService) GetAgenda(_ context.Context, date types.DateString) (*models.AgendaResponse, error) {
	s.got = date
	if s.err != nil {
		return nil, s.err
	}
	return &models.AgendaResponse{Date: date.String(), Summary: "ok"}, nil
}

func newHandler(svc BookingService) *Handler {
	h := NewHandler(svc, logger.Nop())
	h.timeProvider = fixedTime{t: time.Date(2030, 5, 2, 23, 30, 0, 0, time.Local)}
	return h
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Handle(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHandle_DefaultsToToday(t *testing.T) {
	svc := &stubService{}
	rr := get(newHandler(svc), "/admin/agenda")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, types.DateString("2030-05-02"), svc.got)

	var body models.AgendaResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Summary)
}

func TestHandle_ExplicitDate(t *testing.T) {
	svc := &stubService{}
	rr := get(newHandler(svc), "/admin/agenda?date=2030-06-01")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, types.DateString("2030-06-01"), svc.got)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(newHandler(&stubService{}), "/admin/agenda?date=02/05/2030").Code)
	assert.Equal(t, http.StatusBadRequest, get(newHandler(&stubService{err: bookings.ErrInvalidInput}), "/admin/agenda").Code)
	assert.Equal(t, http.StatusInternalServerError, get(newHandler(&stubService{err: bookings.ErrInternal}), "/admin/agenda").Code)
}
