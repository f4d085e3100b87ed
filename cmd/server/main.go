package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mfreita/contas/internal/adapter/http"
	"github.com/mfreita/contas/internal/adapter/http/handler"
	docstoreRepo "github.com/mfreita/contas/internal/adapter/repository/docstore"
	redisRepo "github.com/mfreita/contas/internal/adapter/repository/redis"
	"github.com/mfreita/contas/internal/infrastructure/auditsink"
	"github.com/mfreita/contas/internal/infrastructure/config"
	"github.com/mfreita/contas/internal/infrastructure/docstore"
	"github.com/mfreita/contas/internal/infrastructure/logger"
	"github.com/mfreita/contas/internal/infrastructure/metrics"
	"github.com/mfreita/contas/internal/infrastructure/postgres"
	"github.com/mfreita/contas/internal/infrastructure/redis"
	"github.com/mfreita/contas/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "contas-api"})
	appMetrics := metrics.New()

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Initialize repositories
	store := docstore.New(pool)
	retrier := docstoreRepo.NewRetrier(appLogger)
	idGen := docstoreRepo.NewULIDGenerator()
	clock := usecase.SystemClock{}

	accountRepo := docstoreRepo.NewAccountRepository(store, retrier)
	cardRepo := docstoreRepo.NewCardRepository(store, retrier)
	txRepo := docstoreRepo.NewTransactionRepository(store, retrier)
	statementRepo := docstoreRepo.NewStatementRepository(store, retrier)
	billRepo := docstoreRepo.NewBillRepository(store, retrier)
	paymentRepo := docstoreRepo.NewBillPaymentRepository(store, retrier)
	workspaceRepo := docstoreRepo.NewWorkspaceRepository(store)
	auditRepo := docstoreRepo.NewAuditRepository(store, retrier)

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Audit sink drains asynchronously; Close flushes what is still buffered.
	audit := auditsink.New(auditsink.Config{
		Writer:     auditRepo,
		IDGen:      idGen,
		Logger:     appLogger,
		Metrics:    appMetrics,
		BufferSize: cfg.AuditBufferSize,
	})
	audit.Start()
	defer audit.Close()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, clock, idGen)
	cardUC := usecase.NewCardUseCase(cardRepo, clock, idGen)
	statementUC := usecase.NewStatementUseCase(statementRepo, accountRepo, cache, audit, clock, idGen)
	summaryUC := usecase.NewSummaryUseCase(cardRepo, txRepo, statementRepo, cache, clock, appLogger)
	billUC := usecase.NewBillUseCase(billRepo, paymentRepo, txRepo, accountRepo, audit, clock, idGen, appLogger)
	transactionUC := usecase.NewTransactionUseCase(txRepo, accountRepo, cache, audit, clock, idGen)
	reconcileUC := usecase.NewReconcileUseCase(workspaceRepo, accountRepo, txRepo, audit, clock, appLogger)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	cardHandler := handler.NewCardHandler(cardUC, summaryUC)
	statementHandler := handler.NewStatementHandler(statementUC, cardUC)
	billHandler := handler.NewBillHandler(billUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	reconcileHandler := handler.NewReconcileHandler(reconcileUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		CardHandler:        cardHandler,
		StatementHandler:   statementHandler,
		BillHandler:        billHandler,
		TransactionHandler: transactionHandler,
		ReconcileHandler:   reconcileHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
