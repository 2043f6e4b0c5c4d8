package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	archiveUseCase "github.com/payflow-labs/payflow/internal/domain/usecase/archive"
	auditUseCase "github.com/payflow-labs/payflow/internal/domain/usecase/audit"
	feedUseCase "github.com/payflow-labs/payflow/internal/domain/usecase/feed"
	"github.com/payflow-labs/payflow/internal/domain/usecase/idempotency"
	transferUseCase "github.com/payflow-labs/payflow/internal/domain/usecase/transfer"
	walletUseCase "github.com/payflow-labs/payflow/internal/domain/usecase/wallet"
	"github.com/payflow-labs/payflow/internal/resilience"

	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/api/handler"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/api/routes"
	archiveAdapter "github.com/payflow-labs/payflow/internal/infrastructure/adapter/archive"
	cacheAdapter "github.com/payflow-labs/payflow/internal/infrastructure/adapter/cache"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/database"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/database/migration"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/logger"
	messagingAdapter "github.com/payflow-labs/payflow/internal/infrastructure/adapter/messaging"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/metrics"
	railsAdapter "github.com/payflow-labs/payflow/internal/infrastructure/adapter/rails"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/repository"
	timeProvider "github.com/payflow-labs/payflow/internal/infrastructure/adapter/time"
	"github.com/payflow-labs/payflow/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Database (hot tier)
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
	}
	conn, err := database.NewConnection(dbConfig)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	if err := migration.NewMigrationManager(conn.DB, appLogger).MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// Redis (idempotency guard and balance cache)
	redisCache, err := cacheAdapter.NewRedisCache(startupCtx, cacheAdapter.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to redis", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = redisCache.Close() }()

	// MongoDB (warm archive tier)
	mongoStore, err := archiveAdapter.NewMongoStore(startupCtx, archiveAdapter.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Mongo.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to archive store", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoStore.Close(closeCtx)
	}()
	if err := mongoStore.EnsureIndexes(startupCtx); err != nil {
		appLogger.Error("Failed to ensure archive indexes", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// Kafka producer (transfer events)
	producer, err := messagingAdapter.NewKafkaProducer(messagingAdapter.Config{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to create event producer", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = producer.Close() }()

	// Metrics and circuit breakers
	promRegistry := prometheus.NewRegistry()
	appMetrics := metrics.New(promRegistry)
	breakerOverrides := make(map[string]resilience.Settings)
	for name, s := range cfg.Breaker.ServiceSettings() {
		breakerOverrides[name] = resilience.Settings{
			FailureThreshold:  s.FailureThreshold,
			ResetTimeout:      s.ResetTimeout,
			HalfOpenSuccesses: s.HalfOpenSuccesses,
			CallTimeout:       s.CallTimeout,
		}
	}
	breakerRegistry := resilience.NewRegistry(tp, resilience.Settings{
		FailureThreshold:  cfg.Breaker.FailureThreshold,
		ResetTimeout:      cfg.Breaker.ResetTimeout,
		HalfOpenSuccesses: cfg.Breaker.HalfOpenSuccesses,
		CallTimeout:       cfg.Breaker.CallTimeout,
	}, breakerOverrides, appMetrics)

	// Repositories outside the unit of work (reads, audit, archival)
	walletRepo := repository.NewWalletRepository(conn.DB, tp, appLogger)
	transferRepo := repository.NewTransferRepository(conn.DB, appLogger)
	paymentMethodRepo := repository.NewPaymentMethodRepository(conn.DB, appLogger)
	auditRepo := repository.NewAuditLogRepository(conn.DB, appLogger)
	friendshipRepo := repository.NewFriendshipRepository(conn.DB, appLogger)
	feedRepo := repository.NewFeedRepository(conn.DB, appLogger)
	cashoutRepo := repository.NewCashoutRepository(conn.DB, appLogger)
	requestRepo := repository.NewPaymentRequestRepository(conn.DB, appLogger)

	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	// Use cases
	auditService := auditUseCase.NewService(auditRepo, appLogger, tp)
	balanceCache := walletUseCase.NewBalanceCache(redisCache, appLogger)
	railsGateway := railsAdapter.NewHTTPGateway(railsAdapter.Config{
		BankAPIURL:     cfg.Rails.BankAPIURL,
		CardNetworkURL: cfg.Rails.CardNetworkURL,
		ACHNetworkURL:  cfg.Rails.ACHNetworkURL,
		RequestTimeout: cfg.Rails.RequestTimeout,
	}, breakerRegistry, appLogger)

	fanout, err := feedUseCase.NewFanout(friendshipRepo, feedRepo, producer, cfg.Feed.WorkerCount, tp, appLogger)
	if err != nil {
		appLogger.Error("Failed to create feed fan-out pool", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer fanout.Close()

	executor := transferUseCase.NewExecutor(uow, railsGateway, auditService, fanout, balanceCache, tp, appLogger)
	guard := idempotency.NewGuard(redisCache, appLogger)
	transferService := transferUseCase.NewService(executor, guard, appLogger)
	historyService := transferUseCase.NewHistoryService(transferRepo, mongoStore, appLogger)
	walletService := walletUseCase.NewService(uow, walletRepo, paymentMethodRepo, railsGateway, auditService, balanceCache, tp, appLogger)

	archiveManager := archiveUseCase.NewManager(
		transferRepo,
		cashoutRepo,
		requestRepo,
		mongoStore,
		auditService,
		archiveUseCase.Policy{
			HotRetention:  time.Duration(cfg.Archival.HotRetentionDays) * 24 * time.Hour,
			WarmRetention: time.Duration(cfg.Archival.WarmRetentionDays) * 24 * time.Hour,
			BatchSize:     cfg.Archival.BatchSize,
		},
		tp,
		appLogger,
	)

	archivalCtx, stopArchival := context.WithCancel(context.Background())
	defer stopArchival()
	if cfg.Archival.Enabled {
		go archiveManager.Run(archivalCtx, cfg.Archival.Interval)
	}

	// HTTP API
	transferHandler := handler.NewTransferHandler(transferService, historyService, appMetrics, appLogger)
	walletHandler := handler.NewWalletHandler(walletService, appLogger)
	auditHandler := handler.NewAuditHandler(auditService, appLogger)
	opsHandler := handler.NewOpsHandler(breakerRegistry, archiveManager, appMetrics, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, transferHandler, walletHandler, auditHandler, opsHandler, promRegistry)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)
	stopArchival()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}
