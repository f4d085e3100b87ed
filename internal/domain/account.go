package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a balance-bearing container scoped to one workspace.
//
// Balance is authoritative for spending decisions. StartingBalance anchors the
// reconciliation invariant and is nil on accounts created before reconciliation
// existed; the first apply-mode reconciliation pass backfills it.
type Account struct {
	ID               string           `json:"id"`
	WorkspaceID      string           `json:"workspaceId"`
	Name             string           `json:"name"`
	Balance          decimal.Decimal  `json:"balance"`
	StartingBalance  *decimal.Decimal `json:"startingBalance,omitempty"`
	LastReconciledAt *time.Time       `json:"lastReconciledAt,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ApplyDelta returns the balance after a signed adjustment, rounded to cents.
func (a *Account) ApplyDelta(delta decimal.Decimal) decimal.Decimal {
	return RoundCents(a.Balance.Add(delta))
}
