package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(workspaceID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		WorkspaceID:    workspaceID,
		Name:           r.Name,
		InitialBalance: r.InitialBalance,
	}
}

// CreateCardRequest represents a request to create a card.
type CreateCardRequest struct {
	Name       string          `json:"name"`
	Limit      decimal.Decimal `json:"limit"`
	ClosingDay int             `json:"closing_day"`
	DueDay     int             `json:"due_day"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCardRequest) ToUseCaseInput(workspaceID string) usecase.CreateCardInput {
	return usecase.CreateCardInput{
		WorkspaceID: workspaceID,
		Name:        r.Name,
		Limit:       r.Limit,
		ClosingDay:  r.ClosingDay,
		DueDay:      r.DueDay,
	}
}

// GenerateStatementRequest represents a request to generate a statement for a
// card's billing cycle.
type GenerateStatementRequest struct {
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	AutoTotal decimal.Decimal `json:"auto_total"`
}

// UpdateStatementAmountRequest represents a request to set a statement total.
type UpdateStatementAmountRequest struct {
	Month  int             `json:"month"`
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
	Mode   string          `json:"mode,omitempty"`
	Source string          `json:"source,omitempty"`
	Note   string          `json:"note,omitempty"`
	// Seed lets a first edit create the statement it targets.
	Seed bool `json:"seed,omitempty"`
}

// PayStatementRequest represents a request to pay a statement.
type PayStatementRequest struct {
	AccountID string `json:"account_id"`
}

// CreateBillRequest represents a request to create a recurring bill.
type CreateBillRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	DueDay int             `json:"due_day"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBillRequest) ToUseCaseInput(workspaceID string) usecase.CreateBillInput {
	return usecase.CreateBillInput{
		WorkspaceID: workspaceID,
		Name:        r.Name,
		Amount:      r.Amount,
		DueDay:      r.DueDay,
	}
}

// GeneratePaymentsRequest represents a request to instantiate bill payments
// for a period.
type GeneratePaymentsRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// MarkPaidRequest represents a request to settle a bill payment.
type MarkPaidRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"account_id,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// CreateTransactionRequest represents a request to create a transaction.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
	CardID      string          `json:"card_id,omitempty"`
	Extra       map[string]any  `json:"extra,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(workspaceID, actorUID string) usecase.CreateTransactionInput {
	input := usecase.CreateTransactionInput{
		WorkspaceID: workspaceID,
		ActorUID:    actorUID,
		Amount:      r.Amount,
		Type:        domain.TransactionType(r.Type),
		Status:      domain.TransactionStatus(r.Status),
		Description: r.Description,
		AccountID:   r.AccountID,
		CardID:      r.CardID,
		Extra:       r.Extra,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// ReconcileRequest represents a request to run a reconciliation pass. The run
// is scoped to the request's workspace.
type ReconcileRequest struct {
	Apply bool `json:"apply"`
	Limit int  `json:"limit,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReconcileRequest) ToUseCaseInput(actorUID string) usecase.ReconcileInput {
	return usecase.ReconcileInput{
		Apply:    r.Apply,
		Limit:    r.Limit,
		ActorUID: actorUID,
	}
}
