package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
)

// BillUseCase schedules recurring-bill payments and drives their status
// transitions. Paying creates a linked expense transaction and debits the
// paying account; undoing a payment reverses both.
type BillUseCase struct {
	billRepo    BillRepository
	paymentRepo BillPaymentRepository
	txRepo      TransactionRepository
	accountRepo AccountRepository
	audit       AuditSink
	clock       Clock
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewBillUseCase creates a new BillUseCase.
func NewBillUseCase(
	billRepo BillRepository,
	paymentRepo BillPaymentRepository,
	txRepo TransactionRepository,
	accountRepo AccountRepository,
	audit AuditSink,
	clock Clock,
	idGen IDGenerator,
	logger zerolog.Logger,
) *BillUseCase {
	return &BillUseCase{
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		txRepo:      txRepo,
		accountRepo: accountRepo,
		audit:       audit,
		clock:       clock,
		idGen:       idGen,
		logger:      logger,
	}
}

// CreateBillInput represents input for creating a recurring bill.
type CreateBillInput struct {
	WorkspaceID string
	Name        string
	Amount      decimal.Decimal
	DueDay      int
}

// CreateBill creates a new active recurring bill template.
func (uc *BillUseCase) CreateBill(ctx context.Context, input CreateBillInput) (*domain.RecurringBill, error) {
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := uc.clock.Now()
	bill := &domain.RecurringBill{
		ID:          uc.idGen.Generate(),
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		Amount:      domain.RoundCents(input.Amount),
		DueDay:      input.DueDay,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.billRepo.Create(ctx, input.WorkspaceID, bill); err != nil {
		return nil, err
	}

	return bill, nil
}

// GeneratePaymentsResult reports what one generation pass did.
type GeneratePaymentsResult struct {
	Created    []*domain.BillPayment
	Deduped    int
	BillsTotal int
}

// GeneratePayments creates one payment per active bill for the period,
// skipping bills that already have one. Pre-existing duplicates for a bill are
// collapsed to the canonical record first and the rest deleted, so re-invoking
// after a transient failure is safe.
func (uc *BillUseCase) GeneratePayments(ctx context.Context, workspaceID, actorUID string, key domain.StatementKey) (*GeneratePaymentsResult, error) {
	if !key.Valid() {
		return nil, domain.ErrInvalidPeriod
	}

	bills, err := uc.billRepo.ListActive(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list active bills: %w", err)
	}

	now := uc.clock.Now()
	result := &GeneratePaymentsResult{BillsTotal: len(bills)}

	for _, bill := range bills {
		existing, err := uc.paymentRepo.FindByBill(ctx, workspaceID, bill.ID, key)
		if err != nil {
			return nil, fmt.Errorf("find payments for bill %s: %w", bill.ID, err)
		}

		canonical, extras := domain.DedupPayments(existing)
		for _, extra := range extras {
			if err := uc.paymentRepo.Delete(ctx, workspaceID, extra.ID); err != nil {
				uc.logger.Warn().Err(err).Str("payment_id", extra.ID).Msg("duplicate payment delete failed")
				continue
			}
			result.Deduped++
		}
		if canonical != nil {
			continue
		}

		due := domain.BillDueDate(key, bill.DueDay)
		payment := &domain.BillPayment{
			ID:          uc.idGen.Generate(),
			WorkspaceID: workspaceID,
			BillID:      bill.ID,
			Month:       key.Month,
			Year:        key.Year,
			Status:      domain.PendingStatusAt(due, now),
			DueDate:     due,
			PaidAmount:  decimal.Zero,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := uc.paymentRepo.Create(ctx, workspaceID, payment); err != nil {
			return nil, fmt.Errorf("create payment for bill %s: %w", bill.ID, err)
		}
		result.Created = append(result.Created, payment)
	}

	uc.audit.Record(ctx, &domain.AuditEvent{
		WorkspaceID: workspaceID,
		ActorUID:    actorUID,
		Action:      domain.AuditBillPaymentsGenerate,
		Entity:      "bill_payment",
		Summary:     fmt.Sprintf("generated %d payments for %02d/%d", len(result.Created), key.Month, key.Year),
		Payload:     map[string]any{"deduped": result.Deduped},
		CreatedAt:   now,
	})

	return result, nil
}

// MarkPaidInput represents input for paying a bill payment.
type MarkPaidInput struct {
	WorkspaceID string
	ActorUID    string
	PaymentID   string
	// Amount defaults to the bill template amount when zero.
	Amount    decimal.Decimal
	AccountID string
	Note      string
}

// MarkPaid settles a payment: it creates the linked expense transaction,
// debits the account if one is named, and records the pairing on the payment.
func (uc *BillUseCase) MarkPaid(ctx context.Context, input MarkPaidInput) (*domain.BillPayment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, input.WorkspaceID, input.PaymentID)
	if err != nil {
		return nil, err
	}

	// Re-paying a paid payment is a no-op. It would otherwise debit again
	// and orphan the transaction linked by the first settlement.
	if payment.Status == domain.BillPaid {
		return payment, nil
	}

	bill, err := uc.billRepo.GetByID(ctx, input.WorkspaceID, payment.BillID)
	if err != nil {
		return nil, err
	}

	amount := domain.RoundCents(input.Amount)
	if amount.IsZero() {
		amount = domain.RoundCents(bill.Amount)
	}
	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := uc.clock.Now()

	transaction := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		WorkspaceID:   input.WorkspaceID,
		Amount:        amount,
		Type:          domain.TransactionExpense,
		Status:        domain.TransactionPaid,
		Date:          now,
		Description:   bill.Name,
		AccountID:     input.AccountID,
		Source:        domain.SourceBillPayment,
		BillPaymentID: payment.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.txRepo.Create(ctx, input.WorkspaceID, transaction); err != nil {
		return nil, fmt.Errorf("create linked transaction: %w", err)
	}

	if input.AccountID != "" {
		if err := uc.accountRepo.AdjustBalance(ctx, input.WorkspaceID, input.AccountID, amount.Neg(), now); err != nil {
			return nil, fmt.Errorf("debit account: %w", err)
		}
	}

	payment.Status = domain.BillPaid
	payment.PaidAmount = amount
	payment.PaidAccountID = input.AccountID
	payment.TransactionID = transaction.ID
	payment.PaidAt = &now
	payment.Note = input.Note
	payment.UpdatedAt = now

	if err := uc.paymentRepo.Update(ctx, input.WorkspaceID, payment); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	uc.audit.Record(ctx, &domain.AuditEvent{
		WorkspaceID: input.WorkspaceID,
		ActorUID:    input.ActorUID,
		Action:      domain.AuditBillPaymentPaid,
		Entity:      "bill_payment",
		EntityID:    payment.ID,
		Summary:     fmt.Sprintf("paid %s for bill %s", amount, bill.Name),
		CreatedAt:   now,
	})

	return payment, nil
}

// MarkPending reverts a payment to pending or overdue, undoing any paid state.
func (uc *BillUseCase) MarkPending(ctx context.Context, workspaceID, actorUID, paymentID string) (*domain.BillPayment, error) {
	return uc.revert(ctx, workspaceID, actorUID, paymentID, false)
}

// MarkSkipped marks a payment skipped, undoing any paid state.
func (uc *BillUseCase) MarkSkipped(ctx context.Context, workspaceID, actorUID, paymentID string) (*domain.BillPayment, error) {
	return uc.revert(ctx, workspaceID, actorUID, paymentID, true)
}

// revert is the shared repair path: reverse the account debit, delete the
// linked transaction (tolerating its prior absence), clear the pairing and set
// the new status.
func (uc *BillUseCase) revert(ctx context.Context, workspaceID, actorUID, paymentID string, skip bool) (*domain.BillPayment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, workspaceID, paymentID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	if payment.Status == domain.BillPaid {
		if payment.PaidAccountID != "" && payment.PaidAmount.IsPositive() {
			if err := uc.accountRepo.AdjustBalance(ctx, workspaceID, payment.PaidAccountID, payment.PaidAmount, now); err != nil {
				return nil, fmt.Errorf("credit account: %w", err)
			}
		}

		if payment.TransactionID != "" {
			err := uc.txRepo.Delete(ctx, workspaceID, payment.TransactionID)
			if err != nil && !errors.Is(err, domain.ErrTransactionNotFound) {
				return nil, fmt.Errorf("delete linked transaction: %w", err)
			}
			if errors.Is(err, domain.ErrTransactionNotFound) {
				uc.logger.Warn().
					Str("payment_id", payment.ID).
					Str("transaction_id", payment.TransactionID).
					Msg("linked transaction already gone")
			}
		}
	}

	action := domain.AuditBillPaymentPending
	if skip {
		payment.Status = domain.BillSkipped
		action = domain.AuditBillPaymentSkipped
	} else {
		payment.Status = domain.PendingStatusAt(payment.DueDate, now)
	}

	payment.PaidAmount = decimal.Zero
	payment.PaidAccountID = ""
	payment.TransactionID = ""
	payment.PaidAt = nil
	payment.UpdatedAt = now

	if err := uc.paymentRepo.Update(ctx, workspaceID, payment); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	uc.audit.Record(ctx, &domain.AuditEvent{
		WorkspaceID: workspaceID,
		ActorUID:    actorUID,
		Action:      action,
		Entity:      "bill_payment",
		EntityID:    payment.ID,
		Summary:     fmt.Sprintf("status set to %s", payment.Status),
		CreatedAt:   now,
	})

	return payment, nil
}

// ListByPeriod returns the payments of a period.
func (uc *BillUseCase) ListByPeriod(ctx context.Context, workspaceID string, key domain.StatementKey) ([]*domain.BillPayment, error) {
	if !key.Valid() {
		return nil, domain.ErrInvalidPeriod
	}
	return uc.paymentRepo.ListByPeriod(ctx, workspaceID, key)
}
