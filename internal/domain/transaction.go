package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "pending"
	TransactionPaid    TransactionStatus = "paid"
)

// TransactionSource tags transactions created by subsystems rather than users.
type TransactionSource string

const (
	SourceBillPayment      TransactionSource = "bill_payment"
	SourceTransfer         TransactionSource = "transfer"
	SourceSystem           TransactionSource = "system"
	SourceStatementPayment TransactionSource = "statement_payment"
	SourceCardAdjustment   TransactionSource = "card_adjustment"
)

// Transaction is a single money movement.
//
// Extra carries document fields outside the modeled schema. Statement linkage
// written by older clients lives there under several historical spellings; the
// reference resolver reads it through an ordered key lookup.
type Transaction struct {
	ID                string            `json:"id"`
	WorkspaceID       string            `json:"workspaceId"`
	Amount            decimal.Decimal   `json:"amount"`
	Type              TransactionType   `json:"type"`
	Status            TransactionStatus `json:"status"`
	Date              time.Time         `json:"date"`
	Description       string            `json:"description,omitempty"`
	AccountID         string            `json:"accountId,omitempty"`
	PaidAccountID     string            `json:"paidAccountId,omitempty"`
	CardID            string            `json:"cardId,omitempty"`
	Source            TransactionSource `json:"source,omitempty"`
	BillPaymentID     string            `json:"billPaymentId,omitempty"`
	ExcludeFromTotals bool              `json:"excludeFromTotals,omitempty"`
	Extra             map[string]any    `json:"extra,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// SignedAmount is positive for income and negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TouchesAccount reports whether the transaction moves money on the account,
// either as its home account or as the account that settled it.
func (t *Transaction) TouchesAccount(accountID string) bool {
	return accountID != "" && (t.AccountID == accountID || t.PaidAccountID == accountID)
}

// BalanceDelta is the effect this transaction has on the balance of the given
// account, zero unless the transaction is paid and touches the account.
func (t *Transaction) BalanceDelta(accountID string) decimal.Decimal {
	if t.Status != TransactionPaid || !t.TouchesAccount(accountID) {
		return decimal.Zero
	}
	return t.SignedAmount()
}
