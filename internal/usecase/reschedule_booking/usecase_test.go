package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage/kv"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/metrics"
	"github.com/m04kA/BarberBookingService/pkg/txmanager"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type staticSettings struct{ s *domain.ShopSettings }

func (p staticSettings) Get(context.Context) (*domain.ShopSettings, error) { return p.s.Clone(), nil }

type recordingNotifier struct{ calls []*domain.Booking }

func (n *recordingNotifier) BookingRescheduled(_ context.Context, _ *domain.ShopSettings, b *domain.Booking) error {
	n.calls = append(n.calls, b)
	return nil
}

var morning = time.Date(2030, 5, 1, 8, 0, 0, 0, time.Local)

func setup(t *testing.T, settings *domain.ShopSettings, bookings ...*domain.Booking) (*UseCase, *kv.BookingRepository, *recordingNotifier) {
	t.Helper()
	ctx := context.Background()
	repo := kv.NewBookingRepository(kv.NewMemoryStore(), logger.Nop())
	for _, b := range bookings {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}
	notifier := &recordingNotifier{}
	var m *metrics.Metrics // nil-safe
	uc := NewUseCase(repo, staticSettings{s: settings}, txmanager.NewLocalManager(), notifier, m, logger.Nop())
	uc.timeProvider = fixedTime{now: morning}
	return uc, repo, notifier
}

func booking(id, date, t string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		CustomerName:  "Luca",
		CustomerPhone: "333",
		Service:       domain.Service{ID: "1", Name: "Taglio Classico", Price: 25, DurationMinutes: 30},
		Date:          types.DateString(date),
		Time:          types.TimeString(t),
		Status:        status,
	}
}

func TestExecute_Moves(t *testing.T) {
	uc, repo, notifier := setup(t, domain.DefaultSettings(), booking("b1", "2030-05-02", "10:00", domain.StatusConfirmed))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: "b1", Date: "2030-05-03", Time: "11:30"})
	require.NoError(t, err)
	assert.True(t, resp.Changed)

	stored, err := repo.GetByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, types.DateString("2030-05-03"), stored.Date)
	assert.Equal(t, types.TimeString("11:30"), stored.Time)
	assert.Equal(t, morning.Unix(), stored.UpdatedAt.Unix())
	require.Len(t, notifier.calls, 1)
}

func TestExecute_SameSlotIsIdempotent(t *testing.T) {
	uc, _, notifier := setup(t, domain.DefaultSettings(), booking("b1", "2030-05-02", "10:00", domain.StatusConfirmed))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: "b1", Date: "2030-05-02", Time: "10:00"})
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Empty(t, notifier.calls)
}

func TestExecute_SlotTakenByOther(t *testing.T) {
	uc, _, _ := setup(t, domain.DefaultSettings(),
		booking("b1", "2030-05-02", "10:00", domain.StatusConfirmed),
		booking("b2", "2030-05-02", "11:00", domain.StatusPending),
		booking("b3", "2030-05-02", "12:00", domain.StatusCancelled),
	)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{BookingID: "b1", Date: "2030-05-02", Time: "11:00"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Отменённое бронирование слот не занимает
	_, err = uc.Execute(ctx, &Request{BookingID: "b1", Date: "2030-05-02", Time: "12:00"})
	assert.NoError(t, err)
}

func TestExecute_UsesServiceSnapshotInterval(t *testing.T) {
	b := booking("b1", "2030-05-02", "10:00", domain.StatusConfirmed)
	interval := 45
	b.Service.CustomIntervalMinutes = &interval
	uc, _, _ := setup(t, domain.DefaultSettings(), b)
	ctx := context.Background()

	// 10:30 лежит на сетке магазина (30), но не на сетке услуги (45)
	_, err := uc.Execute(ctx, &Request{BookingID: "b1", Date: "2030-05-02", Time: "10:30"})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = uc.Execute(ctx, &Request{BookingID: "b1", Date: "2030-05-02", Time: "11:15"})
	assert.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	uc, _, _ := setup(t, domain.DefaultSettings(),
		booking("done", "2030-05-02", "10:00", domain.StatusCompleted),
		booking("gone", "2030-05-02", "10:30", domain.StatusCancelled),
		booking("ok", "2030-05-02", "11:00", domain.StatusConfirmed),
	)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"missing id", &Request{Date: "2030-05-02", Time: "12:00"}, ErrInvalidInput},
		{"unknown id", &Request{BookingID: "nope", Date: "2030-05-02", Time: "12:00"}, ErrBookingNotFound},
		{"completed", &Request{BookingID: "done", Date: "2030-05-02", Time: "12:00"}, ErrCannotReschedule},
		{"cancelled", &Request{BookingID: "gone", Date: "2030-05-02", Time: "12:00"}, ErrCannotReschedule},
		{"past date", &Request{BookingID: "ok", Date: "2030-04-01", Time: "12:00"}, ErrInvalidDate},
		{"malformed time", &Request{BookingID: "ok", Date: "2030-05-02", Time: "noon"}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_TodayPastSlotRejected(t *testing.T) {
	uc, _, _ := setup(t, domain.DefaultSettings(), booking("ok", "2030-05-02", "11:00", domain.StatusConfirmed))
	uc.timeProvider = fixedTime{now: time.Date(2030, 5, 1, 10, 7, 0, 0, time.Local)}

	_, err := uc.Execute(context.Background(), &Request{BookingID: "ok", Date: "2030-05-01", Time: "10:00"})
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_RejectionReasonsMatchCreate(t *testing.T) {
	uc, _, _ := setup(t, domain.DefaultSettings(),
		booking("ok", "2030-05-01", "11:00", domain.StatusConfirmed),
		booking("other", "2030-05-01", "12:00", domain.StatusConfirmed),
	)
	m := metrics.New("barber_test")
	uc.metrics = m
	uc.timeProvider = fixedTime{now: time.Date(2030, 5, 1, 10, 7, 0, 0, time.Local)}
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{BookingID: "ok", Date: "2030-05-01", Time: "11:10"})
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
	_, err = uc.Execute(ctx, &Request{BookingID: "ok", Date: "2030-05-01", Time: "12:00"})
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	_, err = uc.Execute(ctx, &Request{BookingID: "ok", Date: "2030-05-01", Time: "10:00"})
	require.ErrorIs(t, err, ErrTooLateToBook)

	for _, reason := range []string{"off_grid", "double_booked", "past"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsRejected.WithLabelValues(reason)), reason)
	}
}
