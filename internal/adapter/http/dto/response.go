package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Balance          decimal.Decimal  `json:"balance"`
	StartingBalance  *decimal.Decimal `json:"starting_balance,omitempty"`
	LastReconciledAt *time.Time       `json:"last_reconciled_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		Name:             a.Name,
		Balance:          a.Balance,
		StartingBalance:  a.StartingBalance,
		LastReconciledAt: a.LastReconciledAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// CardResponse represents a card in API responses.
type CardResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Limit      decimal.Decimal `json:"limit"`
	ClosingDay int             `json:"closing_day"`
	DueDay     int             `json:"due_day"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CardFromDomain converts domain card to response.
func CardFromDomain(c *domain.Card) *CardResponse {
	return &CardResponse{
		ID:         c.ID,
		Name:       c.Name,
		Limit:      c.Limit,
		ClosingDay: c.ClosingDay,
		DueDay:     c.DueDay,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// CardsFromDomain converts domain cards to responses.
func CardsFromDomain(cards []*domain.Card) []*CardResponse {
	result := make([]*CardResponse, len(cards))
	for i, c := range cards {
		result[i] = CardFromDomain(c)
	}
	return result
}

// StatementResponse represents a card statement in API responses.
type StatementResponse struct {
	ID            string              `json:"id"`
	CardID        string              `json:"card_id"`
	CardName      string              `json:"card_name,omitempty"`
	Month         int                 `json:"month"`
	Year          int                 `json:"year"`
	ClosingDate   time.Time           `json:"closing_date"`
	DueDate       time.Time           `json:"due_date"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	AmountMode    string              `json:"amount_mode"`
	Status        string              `json:"status"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	PaidAccountID string              `json:"paid_account_id,omitempty"`
	Adjustments   []domain.Adjustment `json:"adjustments,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// StatementFromDomain converts domain statement to response.
func StatementFromDomain(s *domain.CardStatement) *StatementResponse {
	return &StatementResponse{
		ID:            s.ID,
		CardID:        s.CardID,
		CardName:      s.CardName,
		Month:         s.Month,
		Year:          s.Year,
		ClosingDate:   s.ClosingDate,
		DueDate:       s.DueDate,
		TotalAmount:   s.TotalAmount,
		AmountMode:    string(s.AmountMode),
		Status:        string(s.EffectiveStatus(time.Now().UTC())),
		PaidAt:        s.PaidAt,
		PaidAccountID: s.PaidAccountID,
		Adjustments:   s.Adjustments,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// StatementsFromDomain converts domain statements to responses.
func StatementsFromDomain(statements []*domain.CardStatement) []*StatementResponse {
	result := make([]*StatementResponse, len(statements))
	for i, s := range statements {
		result[i] = StatementFromDomain(s)
	}
	return result
}

// BillResponse represents a recurring bill in API responses.
type BillResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDay    int             `json:"due_day"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BillFromDomain converts domain bill to response.
func BillFromDomain(b *domain.RecurringBill) *BillResponse {
	return &BillResponse{
		ID:        b.ID,
		Name:      b.Name,
		Amount:    b.Amount,
		DueDay:    b.DueDay,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BillPaymentResponse represents a bill payment in API responses.
type BillPaymentResponse struct {
	ID            string          `json:"id"`
	BillID        string          `json:"bill_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Status        string          `json:"status"`
	DueDate       time.Time       `json:"due_date"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaidAccountID string          `json:"paid_account_id,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BillPaymentFromDomain converts domain bill payment to response.
func BillPaymentFromDomain(p *domain.BillPayment) *BillPaymentResponse {
	return &BillPaymentResponse{
		ID:            p.ID,
		BillID:        p.BillID,
		Month:         p.Month,
		Year:          p.Year,
		Status:        string(p.Status),
		DueDate:       p.DueDate,
		PaidAmount:    p.PaidAmount,
		PaidAccountID: p.PaidAccountID,
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
		Note:          p.Note,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// BillPaymentsFromDomain converts domain bill payments to responses.
func BillPaymentsFromDomain(payments []*domain.BillPayment) []*BillPaymentResponse {
	result := make([]*BillPaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = BillPaymentFromDomain(p)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description,omitempty"`
	AccountID     string          `json:"account_id,omitempty"`
	PaidAccountID string          `json:"paid_account_id,omitempty"`
	CardID        string          `json:"card_id,omitempty"`
	Source        string          `json:"source,omitempty"`
	BillPaymentID string          `json:"bill_payment_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Status:        string(t.Status),
		Date:          t.Date,
		Description:   t.Description,
		AccountID:     t.AccountID,
		PaidAccountID: t.PaidAccountID,
		CardID:        t.CardID,
		Source:        string(t.Source),
		BillPaymentID: t.BillPaymentID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// SummaryResponse represents a card limit summary in API responses.
type SummaryResponse struct {
	Outstanding        decimal.Decimal `json:"outstanding"`
	Available          decimal.Decimal `json:"available"`
	UsedPercent        decimal.Decimal `json:"used_percent"`
	CurrentCycleAmount decimal.Decimal `json:"current_cycle_amount"`
}

// SummaryFromDomain converts domain summary to response.
func SummaryFromDomain(s *domain.CardLimitSummary) *SummaryResponse {
	return &SummaryResponse{
		Outstanding:        s.Outstanding,
		Available:          s.Available,
		UsedPercent:        s.UsedPercent,
		CurrentCycleAmount: s.CurrentCycleAmount,
	}
}

// GeneratePaymentsResponse reports the outcome of one bill generation pass.
type GeneratePaymentsResponse struct {
	Created    []*BillPaymentResponse `json:"created"`
	Deduped    int                    `json:"deduped"`
	BillsTotal int                    `json:"bills_total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
