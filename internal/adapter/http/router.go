package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mfreita/contas/internal/adapter/http/handler"
	"github.com/mfreita/contas/internal/adapter/http/middleware"
	"github.com/mfreita/contas/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	CardHandler        *handler.CardHandler
	StatementHandler   *handler.StatementHandler
	BillHandler        *handler.BillHandler
	TransactionHandler *handler.TransactionHandler
	ReconcileHandler   *handler.ReconcileHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1, scoped to the caller's workspace
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireWorkspace)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
		})

		// Cards and their statements
		r.Route("/cards", func(r chi.Router) {
			r.Post("/", cfg.CardHandler.Create)
			r.Get("/", cfg.CardHandler.List)
			r.Get("/{id}", cfg.CardHandler.Get)
			r.Get("/{id}/summary", cfg.CardHandler.Summary)
			r.Post("/{id}/statements", cfg.StatementHandler.Generate)
			r.Get("/{id}/statements", cfg.StatementHandler.ListByCard)
			r.Put("/{id}/statements/amount", cfg.StatementHandler.UpdateAmount)
		})

		// Statement lifecycle
		r.Route("/statements", func(r chi.Router) {
			r.Post("/{id}/pay", cfg.StatementHandler.Pay)
			r.Post("/{id}/reopen", cfg.StatementHandler.Reopen)
		})

		// Recurring bills and their monthly payments
		r.Route("/bills", func(r chi.Router) {
			r.Post("/", cfg.BillHandler.Create)
		})
		r.Route("/bill-payments", func(r chi.Router) {
			r.Post("/generate", cfg.BillHandler.GeneratePayments)
			r.Get("/", cfg.BillHandler.ListByPeriod)
			r.Post("/{id}/pay", cfg.BillHandler.MarkPaid)
			r.Post("/{id}/pending", cfg.BillHandler.MarkPending)
			r.Post("/{id}/skip", cfg.BillHandler.MarkSkipped)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Reconciliation
		r.Post("/reconcile", cfg.ReconcileHandler.Run)
	})

	return r
}
