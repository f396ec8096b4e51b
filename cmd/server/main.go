package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Zelesto/trailers-backend-sub001/internal/app"
	"github.com/Zelesto/trailers-backend-sub001/internal/config"
	"github.com/Zelesto/trailers-backend-sub001/internal/handler"
	internalRedis "github.com/Zelesto/trailers-backend-sub001/internal/redis"
	"github.com/Zelesto/trailers-backend-sub001/internal/repository/postgres"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	tripRepo := postgres.NewTripRepository(db)
	metricsRepo := postgres.NewTripMetricsRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	statementRepo := postgres.NewStatementRepository(db)
	txnRepo := postgres.NewTransactionRepository(db)
	reconRepo := postgres.NewReconciliationRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	stockRepo := postgres.NewStockCountRepository(db)

	// Initialize services.
	notificationService := service.NewNotificationService()
	calculator := service.NewStaticRateCalculator(service.RateConfig{
		FuelPricePerLitre:   decimal.NewFromFloat(cfg.Rates.FuelPricePerLitre),
		LitresPerHundredKm:  decimal.NewFromFloat(cfg.Rates.LitresPerHundredKm),
		TollPerKm:           decimal.NewFromFloat(cfg.Rates.TollPerKm),
		AverageSpeedKmh:     cfg.Rates.AverageSpeedKmh,
		CargoFactorPerTonne: decimal.NewFromFloat(cfg.Rates.CargoFactorPerTonne),
	}, cacheStore)
	dispatcher := service.NewLifecycleDispatcher(calculator)
	matcher := service.NewAssignmentService(locationStore, cacheStore, vehicleRepo)
	tripService := service.NewTripService(db, tripRepo, vehicleRepo, driverRepo, metricsRepo, dispatcher, matcher, lockStore, cacheStore, notificationService)
	vehicleService := service.NewVehicleService(locationStore, cacheStore, vehicleRepo)
	driverService := service.NewDriverService(cacheStore, driverRepo)
	accountService := service.NewAccountService(accountRepo)
	statementService := service.NewStatementService(accountRepo, statementRepo, txnRepo)
	reconciliationService := service.NewReconciliationService(statementRepo, txnRepo, reconRepo, notificationService)
	paymentService := service.NewPaymentService(paymentRepo, statementService, notificationService)
	stockService := service.NewStockCountService(stockRepo)

	// Initialize handlers.
	tripHandler := handler.NewTripHandler(tripService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, vehicleRepo)
	driverHandler := handler.NewDriverHandler(driverService, driverRepo)
	accountHandler := handler.NewAccountHandler(accountService)
	statementHandler := handler.NewStatementHandler(statementService)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	stockCountHandler := handler.NewStockCountHandler(stockService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		TripHandler:           tripHandler,
		VehicleHandler:        vehicleHandler,
		DriverHandler:         driverHandler,
		AccountHandler:        accountHandler,
		StatementHandler:      statementHandler,
		ReconciliationHandler: reconciliationHandler,
		PaymentHandler:        paymentHandler,
		StockCountHandler:     stockCountHandler,
		RedisClient:           redisClient,
		NewRelicApp:           nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
