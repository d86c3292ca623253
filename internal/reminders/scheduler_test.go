package reminders

import (
	"context"
	"errors"
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

func (f *fixedTime) Now() time.Time { return f.now }

type staticSettings struct{}

func (staticSettings) Get(context.Context) (*domain.ShopSettings, error) {
	return domain.DefaultSettings(), nil
}

type recordingNotifier struct {
	ids []string
	err error
}

func (n *recordingNotifier) BookingReminder(_ context.Context, _ *domain.ShopSettings, b *domain.Booking) error {
	if n.err != nil {
		return n.err
	}
	n.ids = append(n.ids, b.ID)
	return nil
}

func setup(t *testing.T, now time.Time, bookings ...*domain.Booking) (*Scheduler, *recordingNotifier, *fixedTime) {
	t.Helper()
	repo := kv.NewBookingRepository(kv.NewMemoryStore(), logger.Nop())
	for _, b := range bookings {
		_, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
	}
	n := &recordingNotifier{}
	s := NewScheduler(Config{}, repo, staticSettings{}, n, nil, logger.Nop())
	clock := &fixedTime{now: now}
	s.clock = clock
	return s, n, clock
}

func booking(id, date, t string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:      id,
		Service: domain.Service{Name: "Taglio"},
		Date:    types.DateString(date),
		Time:    types.TimeString(t),
		Status:  status,
	}
}

func TestCheck_RemindsOnceWithinLead(t *testing.T) {
	now := time.Date(2030, 5, 2, 10, 0, 0, 0, time.Local)
	s, n, clock := setup(t, now,
		booking("soon", "2030-05-02", "10:20", domain.StatusConfirmed),
		booking("edge", "2030-05-02", "10:30", domain.StatusPending),
		booking("later", "2030-05-02", "11:00", domain.StatusConfirmed),
		booking("past", "2030-05-02", "09:30", domain.StatusConfirmed),
		booking("done", "2030-05-02", "10:15", domain.StatusCompleted),
		booking("gone", "2030-05-02", "10:10", domain.StatusCancelled),
	)
	ctx := context.Background()

	sent, err := s.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []string{"soon", "edge"}, n.ids)

	// Повторная проверка не дублирует напоминания
	sent, err = s.Check(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)

	// Через полчаса наступает очередь "later"
	clock.now = now.Add(31 * time.Minute)
	sent, err = s.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Contains(t, n.ids, "later")
}

func TestCheck_AcrossMidnight(t *testing.T) {
	now := time.Date(2030, 5, 2, 23, 50, 0, 0, time.Local)
	s, n, _ := setup(t, now, booking("night", "2030-05-03", "00:10", domain.StatusConfirmed))

	sent, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"night"}, n.ids)
}

func TestCheck_RetriesAfterNotifierFailure(t *testing.T) {
	now := time.Date(2030, 5, 2, 10, 0, 0, 0, time.Local)
	s, n, _ := setup(t, now, booking("soon", "2030-05-02", "10:20", domain.StatusConfirmed))
	ctx := context.Background()

	n.err = errors.New("unavailable")
	sent, err := s.Check(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)

	n.err = nil
	sent, err = s.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewScheduler(Config{Schedule: "not a schedule"}, nil, staticSettings{}, &recordingNotifier{}, nil, logger.Nop())
	assert.Error(t, s.Start())
}
