package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getConfigurationHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_configuration"
	healthHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	updateConfigurationHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_configuration"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/idempotency"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	configurationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/configuration"
	configurationService "github.com/m04kA/SMC-AppointmentService/internal/service/configuration"
	bookAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	cancelAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const rateLimiterCleanupInterval = time.Minute

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(config.DefaultPath)
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

	log.Info("Starting SMC-AppointmentService...")

	loc, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone: %v", err)
	}
	log.Info("Scheduling timezone: %s", loc)

	// Инициализируем метрики (если включены). nil *metrics.Metrics безопасен: методы ничего не делают.
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
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

	var recorder dbmetrics.Recorder
	if metricsCollector != nil {
		recorder = metricsCollector
	}
	wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stopCh)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	configurationRepository := configurationRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	configSvc := configurationService.NewService(configurationRepository, txMgr, log)

	// Заполняем конфигурацию по умолчанию при первом запуске
	defaults, err := cfg.Scheduling.DefaultConfiguration()
	if err != nil {
		log.Fatal("Invalid scheduling defaults: %v", err)
	}
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = configSvc.EnsureDefault(seedCtx, defaults)
	seedCancel()
	if err != nil {
		log.Fatal("Failed to seed default configuration: %v", err)
	}

	healthDeps := map[string]healthHandler.Pinger{"postgres": wrappedDB}

	// Хранилище ключей идемпотентности (если включен Redis)
	var idempotencyStore bookAppointmentUC.IdempotencyStore
	if cfg.Redis.Enabled {
		redisClient, err := idempotency.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		store := idempotency.NewStore(redisClient, time.Duration(cfg.Redis.IdempotencyTTL)*time.Second)
		idempotencyStore = store
		healthDeps["redis"] = store
		log.Info("Idempotency store enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.IdempotencyTTL)
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		configurationRepository,
		loc,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		configurationRepository,
		idempotencyStore,
		txMgr,
		loc,
		log,
	)

	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		configurationRepository,
		txMgr,
		loc,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, metricsCollector, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, metricsCollector, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, metricsCollector, log)
	getConfiguration := getConfigurationHandler.NewHandler(configSvc, log)
	updateConfiguration := updateConfigurationHandler.NewHandler(configSvc, metricsCollector, log)
	health := healthHandler.NewHandler(healthDeps, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		go limiter.RunCleanup(rateLimiterCleanupInterval, stopCh)
		r.Use(limiter.Middleware())
		log.Info("Rate limit enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// --- Записи ---
	r.HandleFunc("/appointments/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	r.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	r.HandleFunc("/appointments", cancelAppointment.Handle).Methods(http.MethodDelete)

	// --- Конфигурация ---
	r.HandleFunc("/configuration", getConfiguration.Handle).Methods(http.MethodGet)
	r.HandleFunc("/configuration", updateConfiguration.Handle).Methods(http.MethodPatch)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (статистика pool, очистка rate limiter)
	close(stopCh)

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
