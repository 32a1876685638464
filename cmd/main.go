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

	cancelBookingHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/cancel_booking"
	createBlockedRangeHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/create_blocked_range"
	createBookingHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/create_booking"
	deleteBlockedRangeHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/delete_blocked_range"
	getAvailableSlotsHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/get_booking"
	getDayBookingsHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/get_day_bookings"
	getScheduleHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/get_schedule"
	transitionBookingHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/transition_booking"
	updateScheduleHandler "github.com/astraconsult/ACG-BookingService/internal/api/handlers/update_schedule"
	"github.com/astraconsult/ACG-BookingService/internal/api/middleware"
	"github.com/astraconsult/ACG-BookingService/internal/config"
	bookingRepo "github.com/astraconsult/ACG-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/astraconsult/ACG-BookingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/astraconsult/ACG-BookingService/internal/integrations/catalogservice"
	bookingsService "github.com/astraconsult/ACG-BookingService/internal/service/bookings"
	scheduleService "github.com/astraconsult/ACG-BookingService/internal/service/schedule"
	createBookingUC "github.com/astraconsult/ACG-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/astraconsult/ACG-BookingService/internal/usecase/get_available_slots"
	"github.com/astraconsult/ACG-BookingService/pkg/dbmetrics"
	"github.com/astraconsult/ACG-BookingService/pkg/logger"
	"github.com/astraconsult/ACG-BookingService/pkg/metrics"
	"github.com/astraconsult/ACG-BookingService/pkg/simpletxmanager"
	"github.com/astraconsult/ACG-BookingService/pkg/txmanager"
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

	log.Info("Starting ACG-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Операционная таймзона: в ней выполняются все проверки "дата в прошлом"
	// и минимального времени до начала брони
	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone: %v", err)
	}
	log.Info("Operating timezone: %s", cfg.Booking.Timezone)

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

	// Инициализируем клиент каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog service client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Проверяем доступность каталога (аналогично ping базы данных)
	// Недоступный каталог не блокирует запуск: сервис деградирует до 5xx
	// на операциях, которым нужна информация об услугах
	if services, err := catalogClient.ListServices(context.Background()); err != nil {
		log.Warn("Catalog service unreachable at startup: %v", err)
	} else {
		log.Info("Catalog service reachable, %d services in catalog", len(services))
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		location,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		location,
		cfg.Booking.MinNoticeMinutes,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		location,
		cfg.Booking.MinNoticeMinutes,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	createBlockedRange := createBlockedRangeHandler.NewHandler(scheduleSvc, log)
	deleteBlockedRange := deleteBlockedRangeHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Каждому запросу проставляется X-Request-ID
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
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

	// Получение доступных слотов для бронирования
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Публичное расписание: окна доступности и блокировки дат
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Бронирования на дату (для операторов)
	protected.HandleFunc("/bookings", getDayBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перевод бронирования в новый статус (confirmed/completed)
	protected.HandleFunc("/bookings/{bookingId}/status", transitionBooking.Handle).Methods(http.MethodPatch)

	// --- Управление расписанием ---
	// Полная замена окон доступности
	protected.HandleFunc("/schedule/windows", updateSchedule.Handle).Methods(http.MethodPut)

	// Блокировка диапазона дат
	protected.HandleFunc("/schedule/blocked-ranges", createBlockedRange.Handle).Methods(http.MethodPost)

	// Снятие блокировки
	protected.HandleFunc("/schedule/blocked-ranges/{rangeId}", deleteBlockedRange.Handle).Methods(http.MethodDelete)

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
