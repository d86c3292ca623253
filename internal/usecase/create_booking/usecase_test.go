package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage/kv"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/shortid"
	"github.com/m04kA/BarberBookingService/pkg/txmanager"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type staticSettings struct{ s *domain.ShopSettings }

func (p staticSettings) Get(context.Context) (*domain.ShopSettings, error) { return p.s.Clone(), nil }

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, _ *domain.ShopSettings, b *domain.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, b.ID)
	return n.err
}

type countingMetrics struct {
	created  int64
	rejected sync.Map
}

func (m *countingMetrics) IncBookingCreated() { atomic.AddInt64(&m.created, 1) }

func (m *countingMetrics) IncBookingRejected(reason string) {
	v, _ := m.rejected.LoadOrStore(reason, new(int64))
	atomic.AddInt64(v.(*int64), 1)
}

func (m *countingMetrics) rejectedFor(reason string) int64 {
	v, ok := m.rejected.Load(reason)
	if !ok {
		return 0
	}
	return atomic.LoadInt64(v.(*int64))
}

// sequenceIDs выдаёт заранее заданные ID по очереди
type sequenceIDs struct {
	mu  sync.Mutex
	ids []string
}

func (s *sequenceIDs) NewID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ids) == 0 {
		return "", errors.New("no more ids")
	}
	id := s.ids[0]
	s.ids = s.ids[1:]
	return id, nil
}

type fixture struct {
	uc       *UseCase
	repo     *kv.BookingRepository
	notifier *recordingNotifier
	metrics  *countingMetrics
}

func newFixture(t *testing.T, now time.Time, ids IDGenerator) *fixture {
	t.Helper()
	repo := kv.NewBookingRepository(kv.NewMemoryStore(), logger.Nop())
	f := &fixture{repo: repo, notifier: &recordingNotifier{}, metrics: &countingMetrics{}}
	f.uc = NewUseCase(repo, staticSettings{s: domain.DefaultSettings()}, txmanager.NewLocalManager(), ids, f.notifier, f.metrics, logger.Nop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func validRequest() *Request {
	return &Request{
		ServiceID:     "1",
		CustomerName:  "  Mario Rossi ",
		CustomerPhone: "+39 333 1234567",
		Date:          "2030-05-02",
		Time:          "10:00",
	}
}

var morning = time.Date(2030, 5, 1, 8, 0, 0, 0, time.Local)

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, morning, shortid.Random{Length: domain.BookingIDLength})

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.Len(t, b.ID, domain.BookingIDLength)
	assert.Equal(t, "Mario Rossi", b.CustomerName)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, "Taglio Classico", b.Service.Name)
	assert.Equal(t, morning, b.CreatedAt)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Time, stored.Time)

	assert.Equal(t, []string{b.ID}, f.notifier.calls)
	assert.EqualValues(t, 1, f.metrics.created)
}

func TestExecute_NotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture(t, morning, shortid.Random{Length: domain.BookingIDLength})
	f.notifier.err = errors.New("sms gateway down")

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_DoubleBooking(t *testing.T) {
	f := newFixture(t, morning, shortid.Random{Length: domain.BookingIDLength})
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.EqualValues(t, 1, f.metrics.rejectedFor(reasonDoubleBooked))
}

func TestExecute_CancelledSlotCanBeRebooked(t *testing.T) {
	f := newFixture(t, morning, shortid.Random{Length: domain.BookingIDLength})
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, f.repo.UpdateStatus(ctx, resp.Booking.ID, domain.StatusCancelled))

	_, err = f.uc.Execute(ctx, validRequest())
	assert.NoError(t, err)
}

func TestExecute_TooLate(t *testing.T) {
	now := time.Date(2030, 5, 2, 9, 55, 0, 0, time.Local)
	f := newFixture(t, now, shortid.Random{Length: domain.BookingIDLength})

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
	assert.EqualValues(t, 1, f.metrics.rejectedFor(reasonPast))
}

func TestExecute_IDCollisionRetries(t *testing.T) {
	ids := &sequenceIDs{ids: []string{"aaaaaaaaa", "aaaaaaaaa", "bbbbbbbbb"}}
	f := newFixture(t, morning, ids)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaaa", first.Booking.ID)

	req := validRequest()
	req.Time = "10:30"
	second, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbbb", second.Booking.ID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(t, morning, shortid.Random{Length: domain.BookingIDLength})

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"empty name", func(r *Request) { r.CustomerName = "   " }, ErrInvalidInput},
		{"empty phone", func(r *Request) { r.CustomerPhone = "" }, ErrInvalidInput},
		{"missing service", func(r *Request) { r.ServiceID = "" }, ErrInvalidInput},
		{"unknown service", func(r *Request) { r.ServiceID = "99" }, ErrServiceNotFound},
		{"malformed time", func(r *Request) { r.Time = "25:00" }, ErrInvalidInput},
		{"malformed date", func(r *Request) { r.Date = "2030-13-40" }, ErrInvalidDate},
		{"past date", func(r *Request) { r.Date = "2030-04-30" }, ErrInvalidDate},
		{"off grid", func(r *Request) { r.Time = "10:10" }, ErrInvalidTimeSlot},
		{"after close", func(r *Request) { r.Time = "19:00" }, ErrInvalidTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ConcurrentRequestsNeverDoubleBook(t *testing.T) {
	f := newFixture(t, morning, shortid.Random{Length: domain.BookingIDLength})
	ctx := context.Background()

	var wg sync.WaitGroup
	var successes int64
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.CustomerName = fmt.Sprintf("Cliente %d", i)
			if _, err := f.uc.Execute(ctx, req); err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes)

	date := validRequest().Date
	bookings, err := f.repo.GetWithFilter(ctx, domain.BookingsFilter{Date: &date})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
