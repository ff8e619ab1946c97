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

	cancelReservationHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/check_availability"
	closeSessionHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/close_session"
	createReservationHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/create_reservation"
	detectConflictsHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/detect_conflicts"
	detectTurnoverHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/detect_turnover"
	findTablesHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/find_tables"
	generateSlotsHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/generate_slots"
	getGuestReservationsHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/get_guest_reservations"
	getReservationHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/get_reservation"
	getVenueReservationsHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/get_venue_reservations"
	getVenueSessionsHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/get_venue_sessions"
	openSessionHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/open_session"
	updateReservationStatusHandler "github.com/avdeev-m/TMS-BookingService/internal/api/handlers/update_reservation_status"
	"github.com/avdeev-m/TMS-BookingService/internal/api/middleware"
	"github.com/avdeev-m/TMS-BookingService/internal/config"
	"github.com/avdeev-m/TMS-BookingService/internal/estimate"
	reservationRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/reservation"
	sessionRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/session"
	tableRepo "github.com/avdeev-m/TMS-BookingService/internal/infra/storage/table"
	catalogServiceClient "github.com/avdeev-m/TMS-BookingService/internal/integrations/catalogservice"
	venueServiceClient "github.com/avdeev-m/TMS-BookingService/internal/integrations/venueservice"
	reservationsService "github.com/avdeev-m/TMS-BookingService/internal/service/reservations"
	sessionsService "github.com/avdeev-m/TMS-BookingService/internal/service/sessions"
	checkAvailabilityUC "github.com/avdeev-m/TMS-BookingService/internal/usecase/check_availability"
	createReservationUC "github.com/avdeev-m/TMS-BookingService/internal/usecase/create_reservation"
	detectConflictsUC "github.com/avdeev-m/TMS-BookingService/internal/usecase/detect_conflicts"
	detectTurnoverUC "github.com/avdeev-m/TMS-BookingService/internal/usecase/detect_turnover"
	findTablesUC "github.com/avdeev-m/TMS-BookingService/internal/usecase/find_tables"
	generateSlotsUC "github.com/avdeev-m/TMS-BookingService/internal/usecase/generate_slots"
	"github.com/avdeev-m/TMS-BookingService/pkg/dbmetrics"
	"github.com/avdeev-m/TMS-BookingService/pkg/logger"
	"github.com/avdeev-m/TMS-BookingService/pkg/metrics"
	"github.com/avdeev-m/TMS-BookingService/pkg/simpletxmanager"
	"github.com/avdeev-m/TMS-BookingService/pkg/txmanager"
)

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

	log.Info("Starting TMS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VenueService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		tableRepository       *tableRepo.Repository
		sessionRepository     *sessionRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		tableRepository = tableRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		tableRepository = tableRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Эвристика длительности посадки для сессий без планового окончания
	estimator := estimate.NewCatalogEstimator(catalogClient, log)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		log,
	)
	sessionsSvc := sessionsService.NewService(
		sessionRepository,
		tableRepository,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		tableRepository,
		log,
	)
	findTablesUseCase := findTablesUC.NewUseCase(
		reservationRepository,
		tableRepository,
		venueClient,
		log,
	)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		reservationRepository,
		tableRepository,
		venueClient,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		tableRepository,
		venueClient,
		catalogClient,
		txMgr,
		log,
	)
	detectConflictsUseCase := detectConflictsUC.NewUseCase(
		reservationRepository,
		sessionRepository,
		venueClient,
		estimator,
		log,
	)
	detectTurnoverUseCase := detectTurnoverUC.NewUseCase(
		reservationRepository,
		sessionRepository,
		venueClient,
		estimator,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	findTables := findTablesHandler.NewHandler(findTablesUseCase, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	detectConflicts := detectConflictsHandler.NewHandler(detectConflictsUseCase, log)
	detectTurnover := detectTurnoverHandler.NewHandler(detectTurnoverUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getVenueReservations := getVenueReservationsHandler.NewHandler(reservationsSvc, log)
	getGuestReservations := getGuestReservationsHandler.NewHandler(reservationsSvc, log)
	openSession := openSessionHandler.NewHandler(sessionsSvc, log)
	closeSession := closeSessionHandler.NewHandler(sessionsSvc, log)
	getVenueSessions := getVenueSessionsHandler.NewHandler(sessionsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Ограничение частоты запросов (если включено)
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(rateLimiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности стола на интервале
	api.HandleFunc("/venues/{venueId}/tables/{tableId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Подбор столов под компанию
	api.HandleFunc("/venues/{venueId}/fitting-tables", findTables.Handle).Methods(http.MethodGet)

	// Сетка доступных слотов
	api.HandleFunc("/venues/{venueId}/available-slots", generateSlots.Handle).Methods(http.MethodGet)

	// Конфликты расписания площадки
	api.HandleFunc("/venues/{venueId}/conflicts", detectConflicts.Handle).Methods(http.MethodGet)

	// Риски несвоевременного освобождения столов
	api.HandleFunc("/venues/{venueId}/turnover-risks", detectTurnover.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перевод бронирования по машине состояний
	protected.HandleFunc("/reservations/{reservationId}/status",
		updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования с причиной
	protected.HandleFunc("/reservations/{reservationId}/cancel",
		cancelReservation.Handle).Methods(http.MethodPatch)

	// Список бронирований площадки с фильтрами
	protected.HandleFunc("/venues/{venueId}/reservations",
		getVenueReservations.Handle).Methods(http.MethodGet)

	// История бронирований гостя по телефону
	protected.HandleFunc("/guests/{guestPhone}/reservations",
		getGuestReservations.Handle).Methods(http.MethodGet)

	// --- Walk-in сессии ---
	// Открытие живой посадки
	protected.HandleFunc("/venues/{venueId}/sessions", openSession.Handle).Methods(http.MethodPost)

	// Список активных посадок площадки
	protected.HandleFunc("/venues/{venueId}/sessions", getVenueSessions.Handle).Methods(http.MethodGet)

	// Закрытие посадки
	protected.HandleFunc("/sessions/{sessionId}/close", closeSession.Handle).Methods(http.MethodPatch)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
