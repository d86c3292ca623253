package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage/kv"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type staticSettings struct{ s *domain.ShopSettings }

func (p staticSettings) Get(context.Context) (*domain.ShopSettings, error) { return p.s.Clone(), nil }

func setup(t *testing.T, now time.Time, settings *domain.ShopSettings) (*UseCase, *kv.BookingRepository) {
	t.Helper()
	repo := kv.NewBookingRepository(kv.NewMemoryStore(), logger.Nop())
	uc := NewUseCase(repo, staticSettings{s: settings}, logger.Nop())
	uc.timeProvider = fixedTime{now: now}
	return uc, repo
}

func morningSettings() *domain.ShopSettings {
	s := domain.DefaultSettings()
	s.OpenTime = "09:00"
	s.CloseTime = "12:00"
	s.SlotIntervalMinutes = 30
	return s
}

func TestExecute_NewBookingGrid(t *testing.T) {
	now := time.Date(2030, 5, 1, 8, 0, 0, 0, time.Local)
	uc, repo := setup(t, now, morningSettings())
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Booking{ID: "b1", Date: "2030-05-02", Time: "10:00", Status: domain.StatusConfirmed})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Booking{ID: "b2", Date: "2030-05-02", Time: "10:30", Status: domain.StatusCancelled})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{ServiceID: "1", Date: "2030-05-02"})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.IntervalMinutes)
	require.Len(t, resp.Slots, 6)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].Time)
	assert.True(t, resp.Slots[2].IsBooked)
	assert.False(t, resp.Slots[3].IsBooked, "cancelled booking must not block")
	assert.Equal(t, 5, resp.AvailableCount)
}

func TestExecute_ServiceOverride(t *testing.T) {
	settings := morningSettings()
	interval := 15
	settings.Services[0].CustomIntervalMinutes = &interval

	uc, _ := setup(t, time.Date(2030, 5, 1, 8, 0, 0, 0, time.Local), settings)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "1", Date: "2030-05-02"})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.IntervalMinutes)
	assert.Len(t, resp.Slots, 12)
	assert.Equal(t, types.TimeString("09:15"), resp.Slots[1].Time)
}

func TestExecute_RescheduleExcludesOwnBooking(t *testing.T) {
	settings := morningSettings()
	uc, repo := setup(t, time.Date(2030, 5, 1, 8, 0, 0, 0, time.Local), settings)
	ctx := context.Background()

	// Снимок услуги с собственным интервалом, которого уже нет в каталоге
	interval := 60
	_, err := repo.Create(ctx, &domain.Booking{
		ID:      "own",
		Service: domain.Service{ID: "old", Name: "Vecchio", DurationMinutes: 60, CustomIntervalMinutes: &interval},
		Date:    "2030-05-02",
		Time:    "10:00",
		Status:  domain.StatusConfirmed,
	})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{Date: "2030-05-02", ExcludeBookingID: "own"})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.IntervalMinutes)
	assert.Equal(t, "old", resp.Service.ID)
	require.Len(t, resp.Slots, 3)
	assert.False(t, resp.Slots[1].IsBooked)
}

func TestExecute_PastMaskingToday(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.SlotIntervalMinutes = 15
	uc, _ := setup(t, time.Date(2030, 5, 1, 10, 7, 0, 0, time.Local), settings)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "1", Date: "2030-05-01"})
	require.NoError(t, err)

	byTime := make(map[types.TimeString]domain.Slot)
	for _, s := range resp.Slots {
		byTime[s.Time] = s
	}
	assert.True(t, byTime["10:15"].IsPast)
	assert.False(t, byTime["10:30"].IsPast)
}

func TestExecute_Errors(t *testing.T) {
	uc, _ := setup(t, time.Date(2030, 5, 1, 8, 0, 0, 0, time.Local), morningSettings())
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"missing service and booking", &Request{Date: "2030-05-02"}, ErrInvalidInput},
		{"missing date", &Request{ServiceID: "1"}, ErrInvalidInput},
		{"malformed date", &Request{ServiceID: "1", Date: "02/05/2030"}, ErrInvalidDate},
		{"past date", &Request{ServiceID: "1", Date: "2030-04-30"}, ErrInvalidDate},
		{"unknown service", &Request{ServiceID: "42", Date: "2030-05-02"}, ErrServiceNotFound},
		{"unknown booking", &Request{ExcludeBookingID: "nope", Date: "2030-05-02"}, ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
