package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
)

// StatementUseCase drives the statement lifecycle: generate, adjust, pay,
// reopen. Every balance-touching transition is paired with its exact inverse
// so the account reconciliation invariant stays intact.
type StatementUseCase struct {
	statementRepo StatementRepository
	accountRepo   AccountRepository
	cache         Cache
	audit         AuditSink
	clock         Clock
	idGen         IDGenerator
}

// NewStatementUseCase creates a new StatementUseCase. cache may be nil.
func NewStatementUseCase(
	statementRepo StatementRepository,
	accountRepo AccountRepository,
	cache Cache,
	audit AuditSink,
	clock Clock,
	idGen IDGenerator,
) *StatementUseCase {
	return &StatementUseCase{
		statementRepo: statementRepo,
		accountRepo:   accountRepo,
		cache:         cache,
		audit:         audit,
		clock:         clock,
		idGen:         idGen,
	}
}

// GenerateStatementInput represents input for generating a statement.
type GenerateStatementInput struct {
	WorkspaceID string
	ActorUID    string
	CardID      string
	CardName    string
	Key         domain.StatementKey
	ClosingDay  int
	DueDay      int
	AutoTotal   decimal.Decimal
}

// Generate creates the statement for a cycle unless one already exists.
// Existence is checked by a fresh lookup immediately before creating; the
// remaining race window is tolerated because duplicates converge through
// PreferredStatement before any balance is read.
func (uc *StatementUseCase) Generate(ctx context.Context, input GenerateStatementInput) (*domain.CardStatement, bool, error) {
	if input.CardID == "" {
		return nil, false, domain.ErrMissingCard
	}
	if !input.Key.Valid() {
		return nil, false, domain.ErrInvalidPeriod
	}

	existing, err := uc.statementRepo.FindByKey(ctx, input.WorkspaceID, input.CardID, input.Key)
	if err != nil {
		return nil, false, fmt.Errorf("lookup statement: %w", err)
	}
	if len(existing) > 0 {
		byKey := domain.DedupStatementsByKey(existing)
		return byKey[input.Key], false, nil
	}

	now := uc.clock.Now()
	closing, due := domain.CycleDates(input.Key, input.ClosingDay, input.DueDay)

	statement := &domain.CardStatement{
		ID:          uc.idGen.Generate(),
		WorkspaceID: input.WorkspaceID,
		CardID:      input.CardID,
		CardName:    input.CardName,
		Month:       input.Key.Month,
		Year:        input.Key.Year,
		ClosingDate: closing,
		DueDate:     due,
		TotalAmount: domain.RoundCents(input.AutoTotal),
		AmountMode:  domain.AmountAuto,
		Status:      domain.StatementOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.statementRepo.Create(ctx, input.WorkspaceID, statement); err != nil {
		return nil, false, fmt.Errorf("create statement: %w", err)
	}

	uc.invalidateSummary(ctx, input.WorkspaceID, input.CardID)
	uc.audit.Record(ctx, &domain.AuditEvent{
		WorkspaceID: input.WorkspaceID,
		ActorUID:    input.ActorUID,
		Action:      domain.AuditStatementGenerate,
		Entity:      "statement",
		EntityID:    statement.ID,
		Summary:     fmt.Sprintf("generated statement %02d/%d for card %s", input.Key.Month, input.Key.Year, input.CardID),
		CreatedAt:   now,
	})

	return statement, true, nil
}

// StatementSeed carries what is needed to create a statement on first edit.
type StatementSeed struct {
	CardName   string
	ClosingDay int
	DueDay     int
}

// UpdateStatementAmountInput represents input for adjusting a statement total.
type UpdateStatementAmountInput struct {
	WorkspaceID string
	ActorUID    string
	CardID      string
	Key         domain.StatementKey
	NewAmount   decimal.Decimal
	Mode        domain.AmountMode
	Source      string
	Note        string
	// Seed, when set, lets the edit create the statement it targets. Without it
	// an edit against a missing statement is a silent no-op; the UI supplies a
	// seed whenever the edit might be the first one.
	Seed *StatementSeed
}

// UpdateAmount sets a statement total and amount mode, appending an adjustment
// record. Returns (nil, nil) for the no-statement no-seed no-op.
func (uc *StatementUseCase) UpdateAmount(ctx context.Context, input UpdateStatementAmountInput) (*domain.CardStatement, error) {
	if input.NewAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Mode == "" {
		input.Mode = domain.AmountManual
	}

	existing, err := uc.statementRepo.FindByKey(ctx, input.WorkspaceID, input.CardID, input.Key)
	if err != nil {
		return nil, fmt.Errorf("lookup statement: %w", err)
	}

	now := uc.clock.Now()
	newAmount := domain.RoundCents(input.NewAmount)

	if len(existing) == 0 {
		if input.Seed == nil {
			return nil, nil
		}

		created, _, err := uc.Generate(ctx, GenerateStatementInput{
			WorkspaceID: input.WorkspaceID,
			ActorUID:    input.ActorUID,
			CardID:      input.CardID,
			CardName:    input.Seed.CardName,
			Key:         input.Key,
			ClosingDay:  input.Seed.ClosingDay,
			DueDay:      input.Seed.DueDay,
		})
		if err != nil {
			return nil, err
		}
		existing = []*domain.CardStatement{created}
	}

	statement := domain.DedupStatementsByKey(existing)[input.Key]

	previous := statement.TotalAmount
	statement.TotalAmount = newAmount
	statement.AmountMode = input.Mode
	statement.UpdatedAt = now
	statement.Adjustments = append(statement.Adjustments, domain.Adjustment{
		Source:         input.Source,
		PreviousAmount: previous,
		NewAmount:      newAmount,
		At:             now,
		Note:           input.Note,
	})

	if err := uc.statementRepo.Update(ctx, input.WorkspaceID, statement); err != nil {
		return nil, fmt.Errorf("update statement: %w", err)
	}

	uc.invalidateSummary(ctx, input.WorkspaceID, statement.CardID)
	uc.audit.Record(ctx, &domain.AuditEvent{
		WorkspaceID: input.WorkspaceID,
		ActorUID:    input.ActorUID,
		Action:      domain.AuditStatementAmount,
		Entity:      "statement",
		EntityID:    statement.ID,
		Summary:     fmt.Sprintf("amount %s -> %s (%s)", previous, newAmount, input.Mode),
		Payload:     map[string]any{"source": input.Source},
		CreatedAt:   now,
	})

	return statement, nil
}

// Pay marks a statement paid and debits the paying account by its total.
func (uc *StatementUseCase) Pay(ctx context.Context, workspaceID, actorUID, statementID, accountID string) (*domain.CardStatement, error) {
	if accountID == "" {
		return nil, domain.ErrMissingAccount
	}

	statement, err := uc.statementRepo.GetByID(ctx, workspaceID, statementID)
	if err != nil {
		return nil, err
	}

	// Paying a paid statement is a no-op. Anything else would debit the
	// account twice while Reopen credits back only once.
	if statement.IsPaid() {
		return statement, nil
	}

	now := uc.clock.Now()

	if err := uc.accountRepo.AdjustBalance(ctx, workspaceID, accountID, statement.TotalAmount.Neg(), now); err != nil {
		return nil, fmt.Errorf("debit account: %w", err)
	}

	statement.Status = domain.StatementPaid
	statement.PaidAt = &now
	statement.PaidAccountID = accountID
	statement.UpdatedAt = now

	if err := uc.statementRepo.Update(ctx, workspaceID, statement); err != nil {
		return nil, fmt.Errorf("update statement: %w", err)
	}

	uc.invalidateSummary(ctx, workspaceID, statement.CardID)
	uc.audit.Record(ctx, &domain.AuditEvent{
		WorkspaceID: workspaceID,
		ActorUID:    actorUID,
		Action:      domain.AuditStatementPay,
		Entity:      "statement",
		EntityID:    statement.ID,
		Summary:     fmt.Sprintf("paid %s from account %s", statement.TotalAmount, accountID),
		CreatedAt:   now,
	})

	return statement, nil
}

// Reopen reverts a paid statement to open, crediting back the exact amount the
// pay debited.
func (uc *StatementUseCase) Reopen(ctx context.Context, workspaceID, actorUID, statementID string) (*domain.CardStatement, error) {
	statement, err := uc.statementRepo.GetByID(ctx, workspaceID, statementID)
	if err != nil {
		return nil, err
	}
	if !statement.IsPaid() {
		return nil, domain.ErrStatementNotPaid
	}

	now := uc.clock.Now()

	if statement.PaidAccountID != "" {
		if err := uc.accountRepo.AdjustBalance(ctx, workspaceID, statement.PaidAccountID, statement.TotalAmount, now); err != nil {
			return nil, fmt.Errorf("credit account: %w", err)
		}
	}

	statement.Status = domain.StatementOpen
	statement.PaidAt = nil
	statement.PaidAccountID = ""
	statement.UpdatedAt = now

	if err := uc.statementRepo.Update(ctx, workspaceID, statement); err != nil {
		return nil, fmt.Errorf("update statement: %w", err)
	}

	uc.invalidateSummary(ctx, workspaceID, statement.CardID)
	uc.audit.Record(ctx, &domain.AuditEvent{
		WorkspaceID: workspaceID,
		ActorUID:    actorUID,
		Action:      domain.AuditStatementReopen,
		Entity:      "statement",
		EntityID:    statement.ID,
		Summary:     fmt.Sprintf("reopened, credited %s back", statement.TotalAmount),
		CreatedAt:   now,
	})

	return statement, nil
}

// ListByCard returns every statement of a card, duplicates collapsed.
func (uc *StatementUseCase) ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.CardStatement, error) {
	statements, err := uc.statementRepo.ListByCard(ctx, workspaceID, cardID)
	if err != nil {
		return nil, err
	}

	byKey := domain.DedupStatementsByKey(statements)
	result := make([]*domain.CardStatement, 0, len(byKey))
	for _, s := range byKey {
		result = append(result, s)
	}
	return result, nil
}

func (uc *StatementUseCase) invalidateSummary(ctx context.Context, workspaceID, cardID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, summaryCacheKey(workspaceID, cardID))
}
