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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	cancelOrderHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/cancel_order"
	checkAvailabilityHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/create_booking"
	findResourcesHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/find_available_resources"
	forceCancelOrderHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/force_cancel_order"
	getAvailableSlotsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_available_slots"
	getOrderHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_order"
	getPriceQuoteHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_price_quote"
	getStatisticsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_statistics"
	getUserOrdersHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_user_orders"
	listOrdersHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/list_orders"
	listServicesHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/list_services"
	paymentSuccessHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/payment_success"
	rescheduleOrderHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/reschedule_order"
	updateOrderStatusHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/update_order_status"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	catalogCache "github.com/m04kA/SMC-VenueBookingService/internal/infra/cache/catalog"
	catalogRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
	orderRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/eventbus"
	userServiceClient "github.com/m04kA/SMC-VenueBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
	ordersService "github.com/m04kA/SMC-VenueBookingService/internal/service/orders"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricing"
	checkAvailabilityUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
	findResourcesUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/find_available_resources"
	getAvailableSlotsUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_available_slots"
	getPriceQuoteUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_price_quote"
	rescheduleOrderUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/reschedule_order"
	"github.com/m04kA/SMC-VenueBookingService/internal/worker/autocomplete"
	"github.com/m04kA/SMC-VenueBookingService/pkg/circuitbreaker"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

// catalogReader чтение каталога для use cases: репозиторий или кэш поверх него
type catalogReader interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetResourcesForService(ctx context.Context, serviceID int64) ([]domain.Resource, error)
}

// eventPublisher издатель событий с закрытием соединения
type eventPublisher interface {
	Publish(ctx context.Context, event eventbus.OrderEvent) error
	Close() error
}

func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
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

	log.Info("Starting SMC-VenueBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	venueLoc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid venue timezone: %v", err)
	}
	extrasFees, err := cfg.Pricing.ExtrasFees()
	if err != nil {
		log.Fatal("Invalid extras pricing: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

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
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без коллектора обёртка только прокидывает вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Database.SerializationRetries),
		txmanager.WithRetryObserver(metricsCollector),
	)

	// Репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)

	// Каталог: Redis кэш поверх PostgreSQL (если включён)
	var catalog catalogReader = catalogRepository
	if cfg.Cache.Enabled {
		redisClient, err := catalogCache.NewRedisClient(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Warn("Redis unavailable, catalog cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			catalog = catalogCache.NewCache(catalogRepository, catalogCache.NewRedisStore(redisClient), cfg.Cache.TTL, log.Named("catalog_cache"))
			log.Info("Catalog cache enabled (addr=%s, ttl=%s)", cfg.Cache.Addr, cfg.Cache.TTL)
		}
	}

	// Интеграции
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		circuitbreaker.New(circuitbreaker.Settings{
			WindowSize:   cfg.UserService.BreakerWindow,
			FailureRatio: cfg.UserService.BreakerFailureRatio,
			OpenTimeout:  time.Duration(cfg.UserService.BreakerOpenTimeout) * time.Second,
		}),
		log.Named("userservice"),
	)
	log.Info("UserService client initialized (url=%q, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	var publisher eventPublisher = eventbus.NopPublisher{}
	if cfg.Events.Enabled {
		p, err := eventbus.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, 5*time.Second, log.Named("eventbus"))
		if err != nil {
			log.Warn("RabbitMQ unavailable, events disabled: %v", err)
		} else {
			publisher = p
			log.Info("Event publishing enabled (exchange=%s)", cfg.Events.Exchange)
		}
	}
	defer publisher.Close()

	// Доменные сервисы
	checker := availability.NewChecker(orderRepository)
	pricingEngine := pricing.NewEngine(domain.ExtrasCatalog(extrasFees), venueLoc)

	orderSvc := ordersService.NewService(
		orderRepository,
		checker,
		txMgr,
		userClient,
		publisher,
		metricsCollector,
		venueLoc,
		log,
	)

	// Use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(catalog, venueLoc, log)
	findResourcesUseCase := findResourcesUC.NewUseCase(catalog, checker, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(catalog, checker, cfg.Booking.SlotStepMinutes, venueLoc, log)
	getPriceQuoteUseCase := getPriceQuoteUC.NewUseCase(catalog, pricingEngine, userClient, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		orderRepository,
		findResourcesUseCase,
		pricingEngine,
		userClient,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	rescheduleOrderUseCase := rescheduleOrderUC.NewUseCase(
		orderRepository,
		checker,
		pricingEngine,
		txMgr,
		publisher,
		metricsCollector,
		cfg.Booking.RepriceOnReschedule,
		log,
	)

	// Handlers
	listServices := listServicesHandler.NewHandler(catalogRepository, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, venueLoc, log)
	findResources := findResourcesHandler.NewHandler(findResourcesUseCase, venueLoc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, venueLoc, log)
	getPriceQuote := getPriceQuoteHandler.NewHandler(getPriceQuoteUseCase, venueLoc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, venueLoc, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	cancelOrder := cancelOrderHandler.NewHandler(orderSvc, log)
	rescheduleOrder := rescheduleOrderHandler.NewHandler(rescheduleOrderUseCase, venueLoc, log)
	getUserOrders := getUserOrdersHandler.NewHandler(orderSvc, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(orderSvc, log)
	forceCancelOrder := forceCancelOrderHandler.NewHandler(orderSvc, log)
	listOrders := listOrdersHandler.NewHandler(orderSvc, venueLoc, log)
	getStatistics := getStatisticsHandler.NewHandler(orderSvc, venueLoc, log)
	paymentSuccess := paymentSuccessHandler.NewHandler(orderSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log.Named("http")))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-resources", findResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	// X-User-ID необязателен: с ним в расчёт попадает персональная скидка
	api.HandleFunc("/services/{serviceId}/quote", getPriceQuote.Handle).Methods(http.MethodGet)

	// ============================================================
	// PAYMENT CALLBACKS (X-Callback-Token)
	// ============================================================

	internal := api.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.CallbackToken(cfg.Payments.CallbackToken))
	internal.HandleFunc("/payments/{orderId}/success", paymentSuccess.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-User-ID + X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.Admin)
	admin.HandleFunc("/orders", listOrders.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{orderId}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{orderId}/force-cancel", forceCancelOrder.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/orders", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}/cancel", cancelOrder.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/orders/{orderId}/reschedule", rescheduleOrder.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/orders", getUserOrders.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.Booking.AutoCompleteEnabled {
		worker := autocomplete.NewWorker(orderSvc, cfg.Booking.AutoCompleteInterval, log.Named("autocomplete"))
		g.Go(func() error {
			return worker.Run(gctx)
		})
		log.Info("Auto-complete worker started (interval=%s)", cfg.Booking.AutoCompleteInterval)
	}

	// Graceful shutdown по сигналу или падению любой из задач
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}
