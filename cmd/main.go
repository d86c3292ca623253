package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	cancelBookingHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/delete_booking"
	getAgendaHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/get_agenda"
	getAgendaPDFHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/get_agenda_pdf"
	getAvailableSlotsHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/get_booking"
	getBookingCalendarHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/get_booking_calendar"
	getSettingsHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/get_settings"
	getShopHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/get_shop"
	getShopQRHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/get_shop_qr"
	manageServicesHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/manage_services"
	rescheduleBookingHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/update_booking_status"
	updateSettingsHandler "github.com/m04kA/BarberBookingService/internal/api/handlers/update_settings"
	"github.com/m04kA/BarberBookingService/internal/api/middleware"
	"github.com/m04kA/BarberBookingService/internal/config"
	"github.com/m04kA/BarberBookingService/internal/domain"
	bookingRepo "github.com/m04kA/BarberBookingService/internal/infra/storage/booking"
	"github.com/m04kA/BarberBookingService/internal/infra/storage/kv"
	settingsRepo "github.com/m04kA/BarberBookingService/internal/infra/storage/settings"
	"github.com/m04kA/BarberBookingService/internal/integrations/notifier"
	summaryServiceClient "github.com/m04kA/BarberBookingService/internal/integrations/summaryservice"
	"github.com/m04kA/BarberBookingService/internal/reminders"
	bookingsService "github.com/m04kA/BarberBookingService/internal/service/bookings"
	settingsService "github.com/m04kA/BarberBookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/BarberBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/BarberBookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/BarberBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/metrics"
	"github.com/m04kA/BarberBookingService/pkg/shortid"
	"github.com/m04kA/BarberBookingService/pkg/txmanager"
)

const apiPrefix = "/api/v1"

// bookingStore общий набор методов репозиториев бронирований (kv и postgres)
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Delete(ctx context.Context, id string) error
}

type settingsStore interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
	Save(ctx context.Context, settings *domain.ShopSettings) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting BarberBookingService...")
	if config.EnvFileExists() {
		log.Info("Environment overrides loaded from .env")
	}

	if cfg.Shop.Timezone != "" {
		time.Local = cfg.Location()
		log.Info("Shop timezone set to %s", cfg.Shop.Timezone)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var (
		bookings  bookingStore
		shopStore settingsStore
		txMgr     txManager
	)

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		pgTx := txmanager.NewTransactionManager(db)
		bookings = bookingRepo.NewRepository(db)
		shopStore = settingsRepo.NewRepository(db, pgTx)
		txMgr = pgTx

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

		store := kv.NewRedisStore(client)
		bookings = kv.NewBookingRepository(store, log)
		shopStore = kv.NewSettingsRepository(store)
		txMgr = txmanager.NewLocalManager()

	default:
		log.Warn("Using in-memory storage: data is lost on restart")
		store := kv.NewMemoryStore()
		bookings = kv.NewBookingRepository(store, log)
		shopStore = kv.NewSettingsRepository(store)
		txMgr = txmanager.NewLocalManager()
	}

	// Настройки магазина
	ids := shortid.Random{Length: domain.BookingIDLength}
	settingsSvc := settingsService.NewService(shopStore, ids, log)
	if err := settingsSvc.Load(context.Background()); err != nil {
		log.Fatal("Failed to load shop settings: %v", err)
	}

	// Уведомления
	var channels []notifier.Notifier
	if cfg.Notifications.SMS {
		channels = append(channels, notifier.NewSMSNotifier(notifier.NewSimulatedGateway(log), log))
	}
	if cfg.Notifications.Log {
		channels = append(channels, notifier.NewLogNotifier(log))
	}
	notify := notifier.NewFanout(metricsCollector, log, channels...)
	log.Info("Notifications initialized (sms=%t, log=%t)", cfg.Notifications.SMS, cfg.Notifications.Log)

	// Сводка дня: без URL используется локальная
	var summarizer bookingsService.Summarizer
	if cfg.Summary.URL != "" {
		summarizer = summaryServiceClient.NewClient(
			cfg.Summary.URL,
			cfg.Summary.APIKey,
			time.Duration(cfg.Summary.Timeout)*time.Second,
			log,
		)
		log.Info("Summary service client initialized (url=%s, timeout=%ds)", cfg.Summary.URL, cfg.Summary.Timeout)
	}

	// Сервисы и use cases
	bookingSvc := bookingsService.NewService(bookings, settingsSvc, txMgr, summarizer, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookings,
		settingsSvc,
		txMgr,
		ids,
		notify,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookings,
		settingsSvc,
		txMgr,
		notify,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookings,
		settingsSvc,
		log,
	)

	// Напоминания
	var scheduler *reminders.Scheduler
	if cfg.Reminders.Enabled {
		scheduler = reminders.NewScheduler(
			reminders.Config{
				Schedule: cfg.Reminders.Schedule,
				Lead:     time.Duration(cfg.Reminders.LeadMinutes) * time.Minute,
			},
			bookings,
			settingsSvc,
			notify,
			metricsCollector,
			log,
		)
		if err := scheduler.Start(); err != nil {
			log.Fatal("Failed to start reminder scheduler: %v", err)
		}
		log.Info("Reminder scheduler started (schedule=%q, lead=%dm)", cfg.Reminders.Schedule, cfg.Reminders.LeadMinutes)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, settingsSvc, cfg.Shop.PublicURL, apiPrefix, log)
	getBookingCalendar := getBookingCalendarHandler.NewHandler(bookingSvc, settingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getShop := getShopHandler.NewHandler(settingsSvc, log)
	getShopQR := getShopQRHandler.NewHandler(cfg.Shop.PublicURL, log)
	getAgenda := getAgendaHandler.NewHandler(bookingSvc, log)
	getAgendaPDF := getAgendaPDFHandler.NewHandler(bookingSvc, settingsSvc, cfg.Shop.PublicURL, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	manageServices := manageServicesHandler.NewHandler(settingsSvc, log)

	// Ограничение частоты для записи бронирований
	limit := func(h http.HandlerFunc) http.Handler { return h }
	stopCleanup := make(chan struct{})
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Limit(h) }
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case now := <-ticker.C:
					limiter.Cleanup(now)
				case <-stopCleanup:
					return
				}
			}
		}()
		log.Info("Rate limiting enabled for booking writes (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix(apiPrefix).Subrouter()

	// --- Клиентская часть ---
	api.HandleFunc("/shop", getShop.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shop/qr.png", getShopQR.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.HandleForService).Methods(http.MethodGet)

	api.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/available-slots", getAvailableSlots.HandleForBooking).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId}/reschedule", limit(rescheduleBooking.Handle)).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/cancel", limit(cancelBooking.Handle)).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/calendar.ics", getBookingCalendar.Handle).Methods(http.MethodGet)

	// --- Владелец ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/agenda", getAgenda.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/agenda.pdf", getAgendaPDF.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/settings/services", manageServices.HandleAdd).Methods(http.MethodPost)
	admin.HandleFunc("/settings/services/{serviceId}", manageServices.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/settings/services/{serviceId}", manageServices.HandleRemove).Methods(http.MethodDelete)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderXRequestID},
		ExposedHeaders: []string{middleware.HeaderXRequestID, "Content-Disposition"},
	}).Handler(r)

	handler := middleware.RequestID(middleware.Recovery(log)(middleware.Logging(log)(corsHandler)))

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopCleanup)
	if scheduler != nil {
		<-scheduler.Stop().Done()
		log.Info("Reminder scheduler stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
