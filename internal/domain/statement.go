package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementStatus is the lifecycle state of a card statement.
type StatementStatus string

const (
	StatementOpen   StatementStatus = "open"
	StatementClosed StatementStatus = "closed"
	StatementPaid   StatementStatus = "paid"
)

// AmountMode tells whether a statement total is derived from transactions or
// was explicitly set by a user. A manual total must never be silently
// recomputed until an explicit auto update.
type AmountMode string

const (
	AmountAuto   AmountMode = "auto"
	AmountManual AmountMode = "manual"
)

// Adjustment is one entry of the statement's amount audit trail.
type Adjustment struct {
	Source         string          `json:"source"`
	PreviousAmount decimal.Decimal `json:"previousAmount"`
	NewAmount      decimal.Decimal `json:"newAmount"`
	At             time.Time       `json:"at"`
	Note           string          `json:"note,omitempty"`
}

// CardStatement is one billing cycle of one card. At most one logical
// statement exists per (cardID, month, year); duplicates created by racing
// writers are collapsed by PreferredStatement before any balance is read.
type CardStatement struct {
	ID            string          `json:"id"`
	WorkspaceID   string          `json:"workspaceId"`
	CardID        string          `json:"cardId"`
	CardName      string          `json:"cardName,omitempty"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	ClosingDate   time.Time       `json:"closingDate"`
	DueDate       time.Time       `json:"dueDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountMode    AmountMode      `json:"amountMode"`
	Status        StatementStatus `json:"status"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	PaidAccountID string          `json:"paidAccountId,omitempty"`
	Adjustments   []Adjustment    `json:"adjustments,omitempty"`
	// ExternalIDs are linkage ids written by clients that predate the current
	// id convention; transactions may still reference a statement through them.
	ExternalIDs []string  `json:"externalIds,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Key returns the billing cycle this statement covers.
func (s *CardStatement) Key() StatementKey {
	return StatementKey{Month: s.Month, Year: s.Year}
}

// IsPaid reports whether the statement has been settled.
func (s *CardStatement) IsPaid() bool {
	return s.Status == StatementPaid
}

// EffectiveStatus derives the state consumers see at a given instant. The
// stored status never flips to closed; a statement past its closing date
// simply reads closed until it is paid.
func (s *CardStatement) EffectiveStatus(now time.Time) StatementStatus {
	if s.IsPaid() {
		return StatementPaid
	}
	if !s.ClosingDate.IsZero() && now.After(s.ClosingDate) {
		return StatementClosed
	}
	return s.Status
}

// PickPreferred collapses two duplicates into one canonical record: higher
// priority wins, and newer breaks ties among equal priority.
func PickPreferred[T any](a, b T, priority func(T) int, newer func(a, b T) bool) T {
	pa, pb := priority(a), priority(b)
	if pa != pb {
		if pa > pb {
			return a
		}
		return b
	}
	if newer(a, b) {
		return a
	}
	return b
}

// statementPriority ranks duplicate statements for the same cycle: an unpaid
// statement beats a paid one (so outstanding amounts are not hidden), and a
// manual amount beats an auto one.
func statementPriority(s *CardStatement) int {
	p := 0
	if !s.IsPaid() {
		p += 2
	}
	if s.AmountMode == AmountManual {
		p++
	}
	return p
}

// PreferredStatement picks the canonical record among two duplicates.
func PreferredStatement(a, b *CardStatement) *CardStatement {
	return PickPreferred(a, b, statementPriority, func(a, b *CardStatement) bool {
		return a.UpdatedAt.After(b.UpdatedAt)
	})
}

// DedupStatementsByKey collapses a statement list into one canonical record
// per billing cycle.
func DedupStatementsByKey(statements []*CardStatement) map[StatementKey]*CardStatement {
	byKey := make(map[StatementKey]*CardStatement, len(statements))
	for _, s := range statements {
		if existing, ok := byKey[s.Key()]; ok {
			byKey[s.Key()] = PreferredStatement(existing, s)
		} else {
			byKey[s.Key()] = s
		}
	}
	return byKey
}

// CycleDates derives the closing and due dates for a billing cycle, clamping
// both days to the month length. A due day on or before the closing day rolls
// into the next month.
func CycleDates(key StatementKey, closingDay, dueDay int) (closing, due time.Time) {
	closing = time.Date(key.Year, time.Month(key.Month), clampDay(closingDay, key.Month, key.Year), 0, 0, 0, 0, time.UTC)

	dueKey := key
	if dueDay <= closingDay {
		dueKey = key.Next()
	}
	due = time.Date(dueKey.Year, time.Month(dueKey.Month), clampDay(dueDay, dueKey.Month, dueKey.Year), 0, 0, 0, 0, time.UTC)

	return closing, due
}
