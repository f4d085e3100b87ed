package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mfreita/contas/internal/adapter/http/handler"
	apimiddleware "github.com/mfreita/contas/internal/adapter/http/middleware"
	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_APIRequiresWorkspaceHeader(t *testing.T) {
	router := NewRouter(newRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without workspace header, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil)
	req.Header.Set(apimiddleware.WorkspaceHeader, "ws-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with workspace header, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Checking"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.WorkspaceHeader, "ws-1")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"POST /api/v1/cards/",
		"GET /api/v1/cards/{id}/summary",
		"POST /api/v1/cards/{id}/statements",
		"PUT /api/v1/cards/{id}/statements/amount",
		"POST /api/v1/statements/{id}/pay",
		"POST /api/v1/statements/{id}/reopen",
		"POST /api/v1/bill-payments/generate",
		"POST /api/v1/bill-payments/{id}/pay",
		"POST /api/v1/transactions/",
		"DELETE /api/v1/transactions/{id}",
		"POST /api/v1/reconcile",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cardHandler := handler.NewCardHandler(stubCardService{}, stubSummaryService{})

	cfg := RouterConfig{
		AccountHandler:     handler.NewAccountHandler(stubAccountService{}),
		CardHandler:        cardHandler,
		StatementHandler:   handler.NewStatementHandler(stubStatementService{}, stubCardService{}),
		BillHandler:        handler.NewBillHandler(stubBillService{}),
		TransactionHandler: handler.NewTransactionHandler(stubTransactionService{}),
		ReconcileHandler:   handler.NewReconcileHandler(stubReconcileService{}),
		HealthHandler:      &handler.HealthHandler{},
		Logger:             zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAccountService struct{}

func (stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc"}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, workspaceID, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, workspaceID string, limit int) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

type stubCardService struct{}

func (stubCardService) CreateCard(ctx context.Context, input usecase.CreateCardInput) (*domain.Card, error) {
	return &domain.Card{ID: "card"}, nil
}

func (stubCardService) GetCard(ctx context.Context, workspaceID, id string) (*domain.Card, error) {
	return &domain.Card{ID: id, ClosingDay: 10, DueDay: 17}, nil
}

func (stubCardService) ListCards(ctx context.Context, workspaceID string) ([]*domain.Card, error) {
	return []*domain.Card{}, nil
}

type stubSummaryService struct{}

func (stubSummaryService) CardSummary(ctx context.Context, workspaceID, cardID string) (*domain.CardLimitSummary, error) {
	return &domain.CardLimitSummary{}, nil
}

type stubStatementService struct{}

func (stubStatementService) Generate(ctx context.Context, input usecase.GenerateStatementInput) (*domain.CardStatement, bool, error) {
	return &domain.CardStatement{ID: "st"}, true, nil
}

func (stubStatementService) UpdateAmount(ctx context.Context, input usecase.UpdateStatementAmountInput) (*domain.CardStatement, error) {
	return &domain.CardStatement{ID: "st"}, nil
}

func (stubStatementService) Pay(ctx context.Context, workspaceID, actorUID, statementID, accountID string) (*domain.CardStatement, error) {
	return &domain.CardStatement{ID: statementID}, nil
}

func (stubStatementService) Reopen(ctx context.Context, workspaceID, actorUID, statementID string) (*domain.CardStatement, error) {
	return &domain.CardStatement{ID: statementID}, nil
}

func (stubStatementService) ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.CardStatement, error) {
	return []*domain.CardStatement{}, nil
}

type stubBillService struct{}

func (stubBillService) CreateBill(ctx context.Context, input usecase.CreateBillInput) (*domain.RecurringBill, error) {
	return &domain.RecurringBill{ID: "bill"}, nil
}

func (stubBillService) GeneratePayments(ctx context.Context, workspaceID, actorUID string, key domain.StatementKey) (*usecase.GeneratePaymentsResult, error) {
	return &usecase.GeneratePaymentsResult{}, nil
}

func (stubBillService) MarkPaid(ctx context.Context, input usecase.MarkPaidInput) (*domain.BillPayment, error) {
	return &domain.BillPayment{ID: input.PaymentID}, nil
}

func (stubBillService) MarkPending(ctx context.Context, workspaceID, actorUID, paymentID string) (*domain.BillPayment, error) {
	return &domain.BillPayment{ID: paymentID}, nil
}

func (stubBillService) MarkSkipped(ctx context.Context, workspaceID, actorUID, paymentID string) (*domain.BillPayment, error) {
	return &domain.BillPayment{ID: paymentID}, nil
}

func (stubBillService) ListByPeriod(ctx context.Context, workspaceID string, key domain.StatementKey) ([]*domain.BillPayment, error) {
	return []*domain.BillPayment{}, nil
}

type stubTransactionService struct{}

func (stubTransactionService) Create(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "tx"}, nil
}

func (stubTransactionService) Delete(ctx context.Context, workspaceID, actorUID, id string) error {
	return nil
}

type stubReconcileService struct{}

func (stubReconcileService) Reconcile(ctx context.Context, input usecase.ReconcileInput) (*usecase.ReconcileReport, error) {
	return &usecase.ReconcileReport{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
