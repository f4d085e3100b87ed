package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card is a credit card whose spending is grouped into monthly statements.
// ClosingDay and DueDay are days of month; both are clamped to the length of
// short months when dates are derived from them.
type Card struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	Name        string          `json:"name"`
	Limit       decimal.Decimal `json:"limit"`
	ClosingDay  int             `json:"closingDay"`
	DueDay      int             `json:"dueDay"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
