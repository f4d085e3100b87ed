package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
)

// TransactionUseCase handles user-driven transaction writes. A paid
// transaction moves the balance of the account it touches; deleting it puts
// the money back.
type TransactionUseCase struct {
	txRepo      TransactionRepository
	accountRepo AccountRepository
	cache       Cache
	audit       AuditSink
	clock       Clock
	idGen       IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase. cache may be nil.
func NewTransactionUseCase(
	txRepo TransactionRepository,
	accountRepo AccountRepository,
	cache Cache,
	audit AuditSink,
	clock Clock,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRepo:      txRepo,
		accountRepo: accountRepo,
		cache:       cache,
		audit:       audit,
		clock:       clock,
		idGen:       idGen,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	WorkspaceID string
	ActorUID    string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Status      domain.TransactionStatus
	Date        time.Time
	Description string
	AccountID   string
	CardID      string
	Extra       map[string]any
}

// Create stores a transaction and applies its balance effect if it is already
// paid.
func (uc *TransactionUseCase) Create(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Status == "" {
		input.Status = domain.TransactionPending
	}

	now := uc.clock.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	transaction := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		WorkspaceID: input.WorkspaceID,
		Amount:      domain.RoundCents(input.Amount),
		Type:        input.Type,
		Status:      input.Status,
		Date:        date,
		Description: input.Description,
		AccountID:   input.AccountID,
		CardID:      input.CardID,
		Extra:       input.Extra,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.txRepo.Create(ctx, input.WorkspaceID, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if delta := transaction.BalanceDelta(transaction.AccountID); !delta.IsZero() {
		if err := uc.accountRepo.AdjustBalance(ctx, input.WorkspaceID, transaction.AccountID, delta, now); err != nil {
			return nil, fmt.Errorf("apply balance effect: %w", err)
		}
	}

	uc.invalidateSummary(ctx, input.WorkspaceID, transaction.CardID)
	uc.audit.Record(ctx, &domain.AuditEvent{
		WorkspaceID: input.WorkspaceID,
		ActorUID:    input.ActorUID,
		Action:      domain.AuditTransactionCreate,
		Entity:      "transaction",
		EntityID:    transaction.ID,
		Summary:     fmt.Sprintf("%s %s %s", transaction.Type, transaction.Amount, transaction.Status),
		CreatedAt:   now,
	})

	return transaction, nil
}

// Delete removes a transaction, reversing any balance effect it caused.
func (uc *TransactionUseCase) Delete(ctx context.Context, workspaceID, actorUID, id string) error {
	transaction, err := uc.txRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return err
	}

	now := uc.clock.Now()

	accountID := transaction.AccountID
	if accountID == "" {
		accountID = transaction.PaidAccountID
	}
	if delta := transaction.BalanceDelta(accountID); !delta.IsZero() {
		if err := uc.accountRepo.AdjustBalance(ctx, workspaceID, accountID, delta.Neg(), now); err != nil {
			return fmt.Errorf("reverse balance effect: %w", err)
		}
	}

	if err := uc.txRepo.Delete(ctx, workspaceID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	uc.invalidateSummary(ctx, workspaceID, transaction.CardID)
	uc.audit.Record(ctx, &domain.AuditEvent{
		WorkspaceID: workspaceID,
		ActorUID:    actorUID,
		Action:      domain.AuditTransactionDelete,
		Entity:      "transaction",
		EntityID:    id,
		Summary:     fmt.Sprintf("deleted %s %s", transaction.Type, transaction.Amount),
		CreatedAt:   now,
	})

	return nil
}

func (uc *TransactionUseCase) invalidateSummary(ctx context.Context, workspaceID, cardID string) {
	if uc.cache == nil || cardID == "" {
		return
	}
	_ = uc.cache.Delete(ctx, summaryCacheKey(workspaceID, cardID))
}
