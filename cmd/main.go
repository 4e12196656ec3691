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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	abandonDraftHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/abandon_draft"
	applyDraftEventHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/apply_draft_event"
	cancelBookingHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/cancel_booking"
	commitBookingHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/commit_booking"
	createDraftHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/create_draft"
	getAvailabilityHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_booking"
	getDraftHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_draft"
	getScheduleHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_schedule"
	getServiceHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_service"
	getWorkDaysHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_work_days"
	submitDraftHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/submit_draft"
	updateBookingStatusHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/storeapi"
	"github.com/m04kA/SMC-ClinicBooking/internal/config"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	workDaysCache "github.com/m04kA/SMC-ClinicBooking/internal/infra/cache/workdays"
	bookingRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/catalog"
	patientRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/patient"
	scheduleRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/schedule"
	treatmentRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/treatment"
	clinicStoreClient "github.com/m04kA/SMC-ClinicBooking/internal/integrations/clinicstore"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/localstore"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ClinicBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
	scheduleService "github.com/m04kA/SMC-ClinicBooking/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/sessions"
	commitBookingUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/commit_booking"
	getAvailabilityUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
	getWorkDaysUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_work_days"
	submitBookingUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/metrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/txmanager"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// clinicStore источник данных клиники для мастера записи (локальная БД или внешний сервис)
type clinicStore interface {
	GetWorkDays(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error)
	GetAvailability(ctx context.Context, practitionerID int64, date types.Date) (*domain.SlotSets, error)
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
	CommitBooking(ctx context.Context, commit domain.BookingCommit) (*domain.BookingReference, error)
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

	log.Info("Starting SMC-ClinicBooking...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка БД: без метрик recorder равен nil и замеры пропускаются
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	patientRepository := patientRepo.NewRepository(wrappedDB)
	treatmentRepository := treatmentRepo.NewRepository(wrappedDB)

	// Инициализируем use cases хранилища
	getWorkDaysUseCase := getWorkDaysUC.NewUseCase(scheduleRepository, catalogRepository, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		catalogRepository,
		cfg.Booking.MinBookingNoticeMinutes,
		log,
	)
	commitBookingUseCase := commitBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		patientRepository,
		treatmentRepository,
		txMgr,
		cfg.Booking.MinBookingNoticeMinutes,
		log,
	)

	// Источник данных клиники для мастера записи
	localStore := localstore.NewStore(getWorkDaysUseCase, getAvailabilityUseCase, commitBookingUseCase, catalogRepository)

	var store clinicStore = localStore
	if cfg.ClinicStore.Mode == config.StoreModeRemote {
		store = clinicStoreClient.NewClient(
			cfg.ClinicStore.URL,
			time.Duration(cfg.ClinicStore.Timeout)*time.Second,
			log,
		)
		log.Info("Clinic store: remote (url=%s, timeout=%ds)", cfg.ClinicStore.URL, cfg.ClinicStore.Timeout)
	} else {
		log.Info("Clinic store: local database")
	}

	// Кеш рабочих дней (если настроен Redis)
	var availabilitySource availability.StoreClient = store
	var invalidator scheduleService.WorkDaysInvalidator

	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  time.Duration(cfg.Redis.DialTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.Redis.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Redis.WriteTimeout) * time.Second,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// кеш деградирует до прямых запросов к хранилищу
			log.Warn("Redis is not reachable (addr=%s): %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		cache := workDaysCache.NewCache(
			store,
			redisClient,
			time.Duration(cfg.Redis.WorkDaysTTL)*time.Second,
			log,
		)
		availabilitySource = cache
		invalidator = cache
		log.Info("Work days cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.WorkDaysTTL)
	}

	// Инициализируем сервисы
	resolver := availability.NewResolver(availabilitySource, metricsCollector, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, catalogRepository, txMgr, invalidator, log)

	draftFactory := func() *draft.Draft {
		return draft.New(resolver, metricsCollector, log)
	}
	draftRegistry := sessions.NewRegistry(
		draftFactory,
		time.Duration(cfg.Drafts.IdleTTL)*time.Second,
		metricsCollector,
		log,
	)

	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	go draftRegistry.Run(cleanupCtx, time.Duration(cfg.Drafts.CleanupInterval)*time.Second)

	submitBookingUseCase := submitBookingUC.NewUseCase(store, resolver, metricsCollector, log)

	// Инициализируем handlers
	createDraft := createDraftHandler.NewHandler(draftRegistry, log)
	getDraft := getDraftHandler.NewHandler(draftRegistry, log)
	abandonDraft := abandonDraftHandler.NewHandler(draftRegistry, log)
	applyDraftEvent := applyDraftEventHandler.NewHandler(draftRegistry, store, log)
	submitDraft := submitDraftHandler.NewHandler(draftRegistry, submitBookingUseCase, log)

	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)

	getWorkDays := getWorkDaysHandler.NewHandler(getWorkDaysUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	commitBooking := commitBookingHandler.NewHandler(commitBookingUseCase, log)
	getService := getServiceHandler.NewHandler(localStore, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// МАСТЕР ЗАПИСИ
	// ============================================================

	api.HandleFunc("/drafts", createDraft.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}", getDraft.Handle).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftId}", abandonDraft.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/drafts/{draftId}/events", applyDraftEvent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}/submit", submitDraft.Handle).Methods(http.MethodPost)

	// ============================================================
	// ЗАПИСИ И РАСПИСАНИЕ
	// ============================================================

	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/practitioners/{practitionerId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/practitioners/{practitionerId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// ============================================================
	// ХРАНИЛИЩЕ КЛИНИКИ (используется удаленным режимом мастера)
	// ============================================================

	r.HandleFunc(storeapi.PathWorkDays, getWorkDays.Handle).Methods(http.MethodGet)
	r.HandleFunc(storeapi.PathAvailability, getAvailability.Handle).Methods(http.MethodGet)
	r.HandleFunc(storeapi.PathService, getService.Handle).Methods(http.MethodGet)
	r.HandleFunc(storeapi.PathCommit, commitBooking.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	stopCleanup()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
