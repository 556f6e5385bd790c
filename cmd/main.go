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

	beginPaymentHandler "github.com/glowbook/selection-engine/internal/api/handlers/begin_payment"
	clearSelectionHandler "github.com/glowbook/selection-engine/internal/api/handlers/clear_selection"
	deleteOverrideHandler "github.com/glowbook/selection-engine/internal/api/handlers/delete_override"
	deselectServiceHandler "github.com/glowbook/selection-engine/internal/api/handlers/deselect_service"
	getAvailableSlotsHandler "github.com/glowbook/selection-engine/internal/api/handlers/get_available_slots"
	getEffectiveServiceHandler "github.com/glowbook/selection-engine/internal/api/handlers/get_effective_service"
	getOverridesHandler "github.com/glowbook/selection-engine/internal/api/handlers/get_overrides"
	getSelectionHandler "github.com/glowbook/selection-engine/internal/api/handlers/get_selection"
	getWizardStateHandler "github.com/glowbook/selection-engine/internal/api/handlers/get_wizard_state"
	paymentCallbackHandler "github.com/glowbook/selection-engine/internal/api/handlers/payment_callback"
	selectProfessionalHandler "github.com/glowbook/selection-engine/internal/api/handlers/select_professional"
	selectServiceHandler "github.com/glowbook/selection-engine/internal/api/handlers/select_service"
	selectSlotHandler "github.com/glowbook/selection-engine/internal/api/handlers/select_slot"
	upsertOverrideHandler "github.com/glowbook/selection-engine/internal/api/handlers/upsert_override"
	"github.com/glowbook/selection-engine/internal/api/middleware"
	"github.com/glowbook/selection-engine/internal/bus"
	"github.com/glowbook/selection-engine/internal/config"
	completedRepo "github.com/glowbook/selection-engine/internal/infra/storage/completed"
	overrideRepo "github.com/glowbook/selection-engine/internal/infra/storage/override"
	selectionRepo "github.com/glowbook/selection-engine/internal/infra/storage/selection"
	"github.com/glowbook/selection-engine/internal/infra/storage/sessionstate"
	appointmentsClient "github.com/glowbook/selection-engine/internal/integrations/appointments"
	catalogClient "github.com/glowbook/selection-engine/internal/integrations/catalog"
	paymentsClient "github.com/glowbook/selection-engine/internal/integrations/payments"
	rosterClient "github.com/glowbook/selection-engine/internal/integrations/roster"
	"github.com/glowbook/selection-engine/internal/resolver"
	"github.com/glowbook/selection-engine/internal/selectionstore"
	overridesService "github.com/glowbook/selection-engine/internal/service/overrides"
	wizardService "github.com/glowbook/selection-engine/internal/service/wizard"
	completeBookingUC "github.com/glowbook/selection-engine/internal/usecase/complete_booking"
	getAvailableSlotsUC "github.com/glowbook/selection-engine/internal/usecase/get_available_slots"
	"github.com/glowbook/selection-engine/pkg/dbmetrics"
	"github.com/glowbook/selection-engine/pkg/logger"
	"github.com/glowbook/selection-engine/pkg/metrics"
	"github.com/glowbook/selection-engine/pkg/simpletxmanager"
	"github.com/glowbook/selection-engine/pkg/txmanager"
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

	log.Info("Starting selection-engine...")
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

	// Подключаемся к Redis: сессионный уровень хранения, шина изменений
	// и кэш ответов каталога живут здесь
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Инициализируем интеграционных клиентов
	catalog := catalogClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		rdb,
		time.Duration(cfg.Selection.CatalogCacheTTL)*time.Second,
		log,
	)
	roster := rosterClient.NewClient(
		cfg.RosterService.URL,
		time.Duration(cfg.RosterService.Timeout)*time.Second,
		log,
	)
	appointments := appointmentsClient.NewClient(
		cfg.AppointmentService.URL,
		time.Duration(cfg.AppointmentService.Timeout)*time.Second,
		log,
	)
	paymentGateway := paymentsClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (catalog=%s, roster=%s, appointments=%s, payments=%s)",
		cfg.CatalogService.URL, cfg.RosterService.URL, cfg.AppointmentService.URL, cfg.PaymentService.URL)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		selectionRepository *selectionRepo.Repository
		overrideRepository  *overrideRepo.Repository
		completedRepository *completedRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		selectionRepository = selectionRepo.NewRepository(wrappedDB)
		overrideRepository = overrideRepo.NewRepository(wrappedDB)
		completedRepository = completedRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		selectionRepository = selectionRepo.NewRepository(db)
		overrideRepository = overrideRepo.NewRepository(db)
		completedRepository = completedRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	sessionStore := sessionstate.NewStore(rdb, time.Duration(cfg.Selection.SessionTTL)*time.Second)

	// Шина распространения изменений: синхронная внутрипроцессная раздача
	// плюс pub/sub между инстансами
	var busMetrics bus.MetricsRecorder
	if metricsCollector != nil {
		busMetrics = metricsCollector
	}
	eventBus := bus.New(rdb, cfg.Redis.BusChannel, log, busMetrics)

	busCtx, busCancel := context.WithCancel(context.Background())
	go eventBus.Run(busCtx)

	// Ядро движка: хранилище выбора и резолвер действующих записей
	store := selectionstore.New(selectionRepository, sessionStore, eventBus, log)

	var resolverMetrics resolver.MetricsRecorder
	if metricsCollector != nil {
		resolverMetrics = metricsCollector
	}
	effectiveResolver := resolver.New(
		cfg.Selection.SalonID,
		overrideRepository,
		catalog,
		time.Duration(cfg.Selection.SessionTTL)*time.Second,
		log,
		resolverMetrics,
	)
	go effectiveResolver.Run(busCtx)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		roster,
		store,
		effectiveResolver,
		cfg.Selection.DaysAhead,
		log,
	)
	completeBookingUseCase := completeBookingUC.NewUseCase(
		cfg.Selection.SalonID,
		store,
		effectiveResolver,
		sessionStore,
		completedRepository,
		appointments,
		txMgr,
		log,
	)

	// Инициализируем сервисы
	wizardSvc := wizardService.NewService(
		cfg.Payments.DepositPercent,
		time.Duration(cfg.Payments.PendingTTL)*time.Second,
		store,
		effectiveResolver,
		sessionStore,
		paymentGateway,
		getAvailableSlotsUseCase,
		log,
	)
	overridesSvc := overridesService.NewService(overrideRepository, effectiveResolver, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSelection := getSelectionHandler.NewHandler(wizardSvc, log)
	selectService := selectServiceHandler.NewHandler(wizardSvc, log)
	deselectService := deselectServiceHandler.NewHandler(wizardSvc, log)
	selectProfessional := selectProfessionalHandler.NewHandler(wizardSvc, log)
	selectSlot := selectSlotHandler.NewHandler(wizardSvc, log)
	clearSelection := clearSelectionHandler.NewHandler(wizardSvc, log)
	getEffectiveService := getEffectiveServiceHandler.NewHandler(wizardSvc, log)
	getWizardState := getWizardStateHandler.NewHandler(wizardSvc, log)
	beginPayment := beginPaymentHandler.NewHandler(wizardSvc, log)
	paymentCallback := paymentCallbackHandler.NewHandler(completeBookingUseCase, wizardSvc, log)
	upsertOverride := upsertOverrideHandler.NewHandler(overridesSvc, log)
	getOverrides := getOverridesHandler.NewHandler(overridesSvc, log)
	deleteOverride := deleteOverrideHandler.NewHandler(overridesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// CALLBACK ROUTES (вызываются платежным шлюзом, сессия в теле)
	// ============================================================

	api.HandleFunc("/payments/callback", paymentCallback.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (настройки пар услуга+мастер)
	// ============================================================

	api.HandleFunc("/services/{serviceId}/overrides", getOverrides.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/overrides/{professionalId}", upsertOverride.Handle).Methods(http.MethodPut)
	api.HandleFunc("/services/{serviceId}/overrides/{professionalId}", deleteOverride.Handle).Methods(http.MethodDelete)

	// ============================================================
	// SESSION ROUTES (требуют X-Session-ID header)
	// ============================================================

	session := api.PathPrefix("").Subrouter()
	session.Use(middleware.Session(log))

	// Слоты мастера с учетом выбранных услуг
	session.HandleFunc("/professionals/{professionalId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Действующие цена и длительность услуги
	session.HandleFunc("/services/{serviceId}/effective", getEffectiveService.Handle).Methods(http.MethodGet)

	// --- Выбор ---
	session.HandleFunc("/selection", getSelection.Handle).Methods(http.MethodGet)
	session.HandleFunc("/selection", clearSelection.Handle).Methods(http.MethodDelete)
	session.HandleFunc("/selection/services", selectService.Handle).Methods(http.MethodPost)
	session.HandleFunc("/selection/services/{serviceId}", deselectService.Handle).Methods(http.MethodDelete)
	session.HandleFunc("/selection/professional", selectProfessional.Handle).Methods(http.MethodPost)
	session.HandleFunc("/selection/slot", selectSlot.Handle).Methods(http.MethodPost)

	// --- Мастер бронирования ---
	session.HandleFunc("/wizard/state", getWizardState.Handle).Methods(http.MethodGet)
	session.HandleFunc("/wizard/payment", beginPayment.Handle).Methods(http.MethodPost)

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

	// Останавливаем подписку шины и сбор метрик connection pool
	busCancel()
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

	log.Info("Server exited")
}
