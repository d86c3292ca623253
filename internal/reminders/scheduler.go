// Package reminders periodically notifies about bookings that start soon.
// Each booking is reminded at most once per process.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/pkg/types"
)

// BookingRepository источник бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// SettingsProvider источник текущих настроек магазина
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
}

// Notifier канал напоминаний
type Notifier interface {
	BookingReminder(ctx context.Context, settings *domain.ShopSettings, booking *domain.Booking) error
}

// Metrics счетчик отправленных напоминаний
type Metrics interface {
	IncReminderSent()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// Config параметры планировщика
type Config struct {
	Schedule string        // cron-выражение, по умолчанию "@every 1m"
	Lead     time.Duration // за сколько до начала напоминать
	Timeout  time.Duration // ограничение на один проход
}

// Scheduler проверяет ближайшие бронирования по расписанию cron
type Scheduler struct {
	cfg      Config
	repo     BookingRepository
	settings SettingsProvider
	notifier Notifier
	metrics  Metrics
	logger   Logger
	clock    TimeProvider

	sent *cache.Cache
	cron *cron.Cron
}

// NewScheduler создает планировщик напоминаний
func NewScheduler(cfg Config, repo BookingRepository, settings SettingsProvider, notifier Notifier, metrics Metrics, logger Logger) *Scheduler {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 1m"
	}
	if cfg.Lead <= 0 {
		cfg.Lead = domain.ReminderLeadMinutes * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Scheduler{
		cfg:      cfg,
		repo:     repo,
		settings: settings,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		clock:    realTime{},
		// Запись живёт дольше окна напоминания, после чего кэш её вычищает
		sent: cache.New(cfg.Lead+time.Hour, 10*time.Minute),
		cron: cron.New(),
	}
}

// Start регистрирует задачу, сразу выполняет первую проверку и запускает cron
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.run); err != nil {
		return fmt.Errorf("reminders: invalid schedule %q: %w", s.cfg.Schedule, err)
	}
	s.run()
	s.cron.Start()
	s.logger.Info("Reminder scheduler started (%s, lead %s)", s.cfg.Schedule, s.cfg.Lead)
	return nil
}

// Stop останавливает cron; возвращённый контекст закрывается после завершения текущей проверки
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	if n, err := s.Check(ctx); err != nil {
		s.logger.Error("Reminders: check failed: %v", err)
	} else if n > 0 {
		s.logger.Info("Reminders: %d reminder(s) sent", n)
	}
}

// Check отправляет напоминания о бронированиях, начинающихся в ближайшие Lead.
// Отменённые и завершённые пропускаются, повторно по одному бронированию не напоминает.
func (s *Scheduler) Check(ctx context.Context) (int, error) {
	now := s.clock.Now()

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("reminders: settings: %w", err)
	}

	// Окно может перейти через полночь
	start := types.NewDateString(now)
	end := types.NewDateString(now.Add(s.cfg.Lead))
	bookings, err := s.repo.GetWithFilter(ctx, domain.BookingsFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return 0, fmt.Errorf("reminders: bookings: %w", err)
	}

	sent := 0
	for _, b := range bookings {
		if b.IsTerminal() {
			continue
		}
		if _, done := s.sent.Get(b.ID); done {
			continue
		}

		startsAt, err := b.StartsAt(now.Location())
		if err != nil {
			s.logger.Warn("Reminders: skipping booking id=%s with malformed date/time: %v", b.ID, err)
			continue
		}

		diff := startsAt.Sub(now)
		if diff <= 0 || diff > s.cfg.Lead {
			continue
		}

		if err := s.notifier.BookingReminder(ctx, settings, b); err != nil {
			s.logger.Warn("Reminders: notification for booking id=%s failed: %v", b.ID, err)
			continue
		}

		s.sent.SetDefault(b.ID, struct{}{})
		if s.metrics != nil {
			s.metrics.IncReminderSent()
		}
		sent++
	}

	return sent, nil
}
