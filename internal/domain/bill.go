package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillPaymentStatus is the lifecycle state of one bill instantiation.
// Overdue is pending with a due date in the past; the two are the same state
// with a date-derived label.
type BillPaymentStatus string

const (
	BillPending BillPaymentStatus = "pending"
	BillOverdue BillPaymentStatus = "overdue"
	BillPaid    BillPaymentStatus = "paid"
	BillSkipped BillPaymentStatus = "skipped"
)

// RecurringBill is a monthly bill template.
type RecurringBill struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDay      int             `json:"dueDay"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// BillPayment is one instantiation of a recurring bill for one month.
// TransactionID, when set, points to the expense transaction created when the
// payment was marked paid; the pair is dissolved together on reversal.
type BillPayment struct {
	ID            string            `json:"id"`
	WorkspaceID   string            `json:"workspaceId"`
	BillID        string            `json:"billId"`
	Month         int               `json:"month"`
	Year          int               `json:"year"`
	Status        BillPaymentStatus `json:"status"`
	DueDate       time.Time         `json:"dueDate"`
	PaidAmount    decimal.Decimal   `json:"paidAmount"`
	PaidAccountID string            `json:"paidAccountId,omitempty"`
	TransactionID string            `json:"transactionId,omitempty"`
	PaidAt        *time.Time        `json:"paidAt,omitempty"`
	Note          string            `json:"note,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Key returns the period this payment covers.
func (p *BillPayment) Key() StatementKey {
	return StatementKey{Month: p.Month, Year: p.Year}
}

// paymentPriority ranks duplicate payments for the same (bill, month, year).
func paymentPriority(p *BillPayment) int {
	switch p.Status {
	case BillPaid:
		return 3
	case BillOverdue:
		return 2
	case BillPending:
		return 1
	default:
		return 0
	}
}

// PreferredPayment picks the canonical record among two duplicates: paid >
// overdue > pending > skipped, most recent paidAt breaking ties.
func PreferredPayment(a, b *BillPayment) *BillPayment {
	return PickPreferred(a, b, paymentPriority, func(a, b *BillPayment) bool {
		switch {
		case a.PaidAt == nil:
			return false
		case b.PaidAt == nil:
			return true
		default:
			return a.PaidAt.After(*b.PaidAt)
		}
	})
}

// DedupPayments collapses duplicates for one (bill, period) into a canonical
// record, returning the rest for deletion.
func DedupPayments(payments []*BillPayment) (canonical *BillPayment, extras []*BillPayment) {
	if len(payments) == 0 {
		return nil, nil
	}

	canonical = payments[0]
	for _, p := range payments[1:] {
		canonical = PreferredPayment(canonical, p)
	}

	for _, p := range payments {
		if p.ID != canonical.ID {
			extras = append(extras, p)
		}
	}

	return canonical, extras
}

// BillDueDate derives the due date of a bill for a period, clamped to short
// months.
func BillDueDate(key StatementKey, dueDay int) time.Time {
	return time.Date(key.Year, time.Month(key.Month), clampDay(dueDay, key.Month, key.Year), 0, 0, 0, 0, time.UTC)
}

// PendingStatusAt labels an unpaid payment pending or overdue for a clock
// reading.
func PendingStatusAt(due, now time.Time) BillPaymentStatus {
	if due.Before(now) {
		return BillOverdue
	}
	return BillPending
}
