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

	cancelReservationHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/create_reservation"
	generateSlotsHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/generate_slots"
	getClubHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/get_club"
	getClubReservationsHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/get_club_reservations"
	getClubStatsHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/get_club_stats"
	getReservationHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/get_user_reservations"
	listSlotsHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/list_slots"
	toggleSlotHandler "github.com/m04kA/SMC-PadelBookingService/internal/api/handlers/toggle_slot"
	"github.com/m04kA/SMC-PadelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PadelBookingService/internal/config"
	clubRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/club"
	reservationRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-PadelBookingService/internal/scheduler"
	clubsService "github.com/m04kA/SMC-PadelBookingService/internal/service/clubs"
	reservationsService "github.com/m04kA/SMC-PadelBookingService/internal/service/reservations"
	slotsService "github.com/m04kA/SMC-PadelBookingService/internal/service/slots"
	cancelReservationUC "github.com/m04kA/SMC-PadelBookingService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-PadelBookingService/internal/usecase/create_reservation"
	generateDailySlotsUC "github.com/m04kA/SMC-PadelBookingService/internal/usecase/generate_daily_slots"
	"github.com/m04kA/SMC-PadelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PadelBookingService/pkg/logger"
	"github.com/m04kA/SMC-PadelBookingService/pkg/metrics"
	"github.com/m04kA/SMC-PadelBookingService/pkg/runlock"
	"github.com/m04kA/SMC-PadelBookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("PADEL_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-PadelBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Horizon.Location()
	if err != nil {
		log.Fatal("Invalid horizon timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics допустим: обёртка БД и use cases его игнорируют
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	// Инициализируем репозитории и transaction manager
	clubRepository := clubRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировка запуска генерации: redis для нескольких реплик, иначе в памяти процесса
	var locker generateDailySlotsUC.Locker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			pingCancel()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		pingCancel()

		locker = runlock.NewRedisLocker(redisClient, cfg.Redis.KeyPrefix)
		log.Info("Redis run lock enabled (addr=%s)", cfg.Redis.Addr)
	} else {
		locker = runlock.NewLocalLocker()
		log.Info("Redis disabled, using in-process run lock")
	}

	// Инициализируем use cases
	generateDailySlotsUseCase, err := generateDailySlotsUC.NewUseCase(
		clubRepository,
		slotRepository,
		txMgr,
		locker,
		metricsCollector,
		generateDailySlotsUC.Config{
			HorizonDays: cfg.Horizon.Days,
			Location:    location,
			LockTTL:     time.Duration(cfg.Horizon.LockTTL) * time.Second,
		},
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize slot generation: %v", err)
	}

	createReservationUseCase := createReservationUC.NewUseCase(
		slotRepository,
		reservationRepository,
		txMgr,
		metricsCollector,
		log,
	)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		slotRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(
		slotRepository,
		reservationRepository,
		clubRepository,
		txMgr,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		clubRepository,
		txMgr,
		&reservationsService.RealTimeProvider{},
		reservationsService.Config{
			StatsTopN: cfg.Reservations.StatsTopN,
			Location:  location,
		},
		log,
	)
	clubSvc := clubsService.NewService(clubRepository, log)

	// Планировщик ежедневной генерации
	horizonScheduler, err := scheduler.New(generateDailySlotsUseCase, scheduler.Config{
		Schedule:     cfg.Horizon.Schedule,
		Location:     location,
		RunOnStartup: cfg.Horizon.RunOnStartup,
		Backfill:     cfg.Horizon.Backfill,
		RunTimeout:   time.Duration(cfg.Horizon.LockTTL) * time.Second,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize scheduler: %v", err)
	}
	horizonScheduler.Start()
	log.Info("Slot generation scheduled (%s, tz=%s), next run at %s",
		cfg.Horizon.Schedule, location, horizonScheduler.Next().Format(time.RFC3339))

	// Инициализируем handlers
	generateSlots := generateSlotsHandler.NewHandler(generateDailySlotsUseCase, time.Duration(cfg.Horizon.LockTTL)*time.Second, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(slotSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getClubReservations := getClubReservationsHandler.NewHandler(reservationSvc, log)
	getClubStats := getClubStatsHandler.NewHandler(reservationSvc, log)
	getClub := getClubHandler.NewHandler(clubSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// ADMIN ROUTES (X-User-ID, без таймаута запроса: прогон ограничен lock_ttl)
	// ============================================================

	admin := r.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Карточка клуба с кортами
	api.HandleFunc("/clubs/{clubId}", getClub.Handle).Methods(http.MethodGet)

	// Слоты клуба на дату
	api.HandleFunc("/clubs/{clubId}/slots", listSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Администрирование клуба ---
	protected.HandleFunc("/clubs/{clubId}/reservations", getClubReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clubs/{clubId}/stats", getClubStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/slots/{slotId}/toggle", toggleSlot.Handle).Methods(http.MethodPatch)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся текущего запуска генерации
	if err := horizonScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Scheduler did not stop in time: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
