package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
)

// All repository calls are scoped to one workspace; the engine never reasons
// across workspaces except when the reconciliation job enumerates them.

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, workspaceID string, account *domain.Account) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Account, error)
	Update(ctx context.Context, workspaceID string, account *domain.Account) error
	// AdjustBalance applies a signed delta to the stored balance.
	AdjustBalance(ctx context.Context, workspaceID, id string, delta decimal.Decimal, at time.Time) error
	List(ctx context.Context, workspaceID string, limit int) ([]*domain.Account, error)
}

// CardRepository defines data access for cards.
type CardRepository interface {
	Create(ctx context.Context, workspaceID string, card *domain.Card) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Card, error)
	List(ctx context.Context, workspaceID string) ([]*domain.Card, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, workspaceID string, transaction *domain.Transaction) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Transaction, error)
	Update(ctx context.Context, workspaceID string, transaction *domain.Transaction) error
	Delete(ctx context.Context, workspaceID, id string) error
	ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.Transaction, error)
	// ListPaidByAccount returns paid transactions touching the account through
	// either accountId or paidAccountId.
	ListPaidByAccount(ctx context.Context, workspaceID, accountID string) ([]*domain.Transaction, error)
}

// StatementRepository defines data access for card statements.
type StatementRepository interface {
	Create(ctx context.Context, workspaceID string, statement *domain.CardStatement) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.CardStatement, error)
	Update(ctx context.Context, workspaceID string, statement *domain.CardStatement) error
	Delete(ctx context.Context, workspaceID, id string) error
	// FindByKey returns every statement stored for the cycle, duplicates
	// included; callers collapse them.
	FindByKey(ctx context.Context, workspaceID, cardID string, key domain.StatementKey) ([]*domain.CardStatement, error)
	ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.CardStatement, error)
}

// BillRepository defines data access for recurring bill templates.
type BillRepository interface {
	Create(ctx context.Context, workspaceID string, bill *domain.RecurringBill) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.RecurringBill, error)
	ListActive(ctx context.Context, workspaceID string) ([]*domain.RecurringBill, error)
}

// BillPaymentRepository defines data access for bill payments.
type BillPaymentRepository interface {
	Create(ctx context.Context, workspaceID string, payment *domain.BillPayment) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.BillPayment, error)
	Update(ctx context.Context, workspaceID string, payment *domain.BillPayment) error
	Delete(ctx context.Context, workspaceID, id string) error
	// FindByBill returns every payment stored for the (bill, period), duplicates
	// included.
	FindByBill(ctx context.Context, workspaceID, billID string, key domain.StatementKey) ([]*domain.BillPayment, error)
	ListByPeriod(ctx context.Context, workspaceID string, key domain.StatementKey) ([]*domain.BillPayment, error)
}

// WorkspaceRepository enumerates known workspaces for batch jobs.
type WorkspaceRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// AuditSink records audit events. Implementations must never let a recording
// failure propagate to the caller.
type AuditSink interface {
	Record(ctx context.Context, event *domain.AuditEvent)
}

// Clock supplies the current instant, injected so statement-date math and
// reconciliation are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for derived values such as card summaries.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for mutating HTTP requests.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
