package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPreferredStatement(t *testing.T) {
	tests := []struct {
		name   string
		a, b   *CardStatement
		wantID string
	}{
		{
			name:   "unpaid beats paid",
			a:      &CardStatement{ID: "paid", Status: StatementPaid, UpdatedAt: date(2024, 3, 10)},
			b:      &CardStatement{ID: "open", Status: StatementOpen, UpdatedAt: date(2024, 3, 1)},
			wantID: "open",
		},
		{
			name:   "manual beats auto among unpaid",
			a:      &CardStatement{ID: "auto", Status: StatementOpen, AmountMode: AmountAuto, UpdatedAt: date(2024, 3, 10)},
			b:      &CardStatement{ID: "manual", Status: StatementOpen, AmountMode: AmountManual, UpdatedAt: date(2024, 3, 1)},
			wantID: "manual",
		},
		{
			name:   "newer breaks ties",
			a:      &CardStatement{ID: "old", Status: StatementOpen, UpdatedAt: date(2024, 3, 1)},
			b:      &CardStatement{ID: "new", Status: StatementOpen, UpdatedAt: date(2024, 3, 2)},
			wantID: "new",
		},
		{
			name:   "unpaid auto beats paid manual",
			a:      &CardStatement{ID: "paid-manual", Status: StatementPaid, AmountMode: AmountManual, UpdatedAt: date(2024, 3, 10)},
			b:      &CardStatement{ID: "open-auto", Status: StatementOpen, AmountMode: AmountAuto, UpdatedAt: date(2024, 3, 1)},
			wantID: "open-auto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreferredStatement(tt.a, tt.b); got.ID != tt.wantID {
				t.Errorf("PreferredStatement() = %s, want %s", got.ID, tt.wantID)
			}
			// Order of arguments must not change the winner.
			if got := PreferredStatement(tt.b, tt.a); got.ID != tt.wantID {
				t.Errorf("PreferredStatement(reversed) = %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

func TestDedupStatementsByKey(t *testing.T) {
	statements := []*CardStatement{
		{ID: "mar-paid", Month: 3, Year: 2024, Status: StatementPaid, UpdatedAt: date(2024, 4, 1)},
		{ID: "mar-open", Month: 3, Year: 2024, Status: StatementOpen, UpdatedAt: date(2024, 3, 1)},
		{ID: "apr", Month: 4, Year: 2024, Status: StatementOpen},
	}

	byKey := DedupStatementsByKey(statements)

	if len(byKey) != 2 {
		t.Fatalf("expected 2 cycles, got %d", len(byKey))
	}
	if got := byKey[StatementKey{Month: 3, Year: 2024}]; got.ID != "mar-open" {
		t.Errorf("march canonical = %s, want mar-open", got.ID)
	}
	if got := byKey[StatementKey{Month: 4, Year: 2024}]; got.ID != "apr" {
		t.Errorf("april canonical = %s, want apr", got.ID)
	}
}

func TestCycleDates(t *testing.T) {
	tests := []struct {
		name        string
		key         StatementKey
		closingDay  int
		dueDay      int
		wantClosing time.Time
		wantDue     time.Time
	}{
		{
			name:        "due after closing in same month",
			key:         StatementKey{Month: 3, Year: 2024},
			closingDay:  10,
			dueDay:      17,
			wantClosing: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantDue:     time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "due on closing day rolls to next month",
			key:         StatementKey{Month: 3, Year: 2024},
			closingDay:  10,
			dueDay:      10,
			wantClosing: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantDue:     time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "due before closing rolls to next month",
			key:         StatementKey{Month: 12, Year: 2024},
			closingDay:  25,
			dueDay:      5,
			wantClosing: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			wantDue:     time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "days clamped to short month",
			key:         StatementKey{Month: 2, Year: 2023},
			closingDay:  31,
			dueDay:      30,
			wantClosing: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC),
			wantDue:     time.Date(2023, 3, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closing, due := CycleDates(tt.key, tt.closingDay, tt.dueDay)
			if !closing.Equal(tt.wantClosing) {
				t.Errorf("closing = %s, want %s", closing, tt.wantClosing)
			}
			if !due.Equal(tt.wantDue) {
				t.Errorf("due = %s, want %s", due, tt.wantDue)
			}
		})
	}
}

func TestEffectiveStatus(t *testing.T) {
	closing := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		st   CardStatement
		now  time.Time
		want StatementStatus
	}{
		{"open before closing", CardStatement{Status: StatementOpen, ClosingDate: closing}, closing.AddDate(0, 0, -1), StatementOpen},
		{"closed after closing", CardStatement{Status: StatementOpen, ClosingDate: closing}, closing.AddDate(0, 0, 1), StatementClosed},
		{"paid stays paid", CardStatement{Status: StatementPaid, ClosingDate: closing}, closing.AddDate(0, 1, 0), StatementPaid},
		{"no closing date keeps stored status", CardStatement{Status: StatementOpen}, closing, StatementOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.EffectiveStatus(tt.now); got != tt.want {
				t.Errorf("EffectiveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatementKey(t *testing.T) {
	if !(StatementKey{Month: 1, Year: 1970}).Valid() {
		t.Error("january 1970 should be valid")
	}
	if (StatementKey{Month: 0, Year: 2024}).Valid() {
		t.Error("month 0 should be invalid")
	}
	if (StatementKey{Month: 6, Year: 1969}).Valid() {
		t.Error("year 1969 should be invalid")
	}

	next := StatementKey{Month: 12, Year: 2024}.Next()
	if next != (StatementKey{Month: 1, Year: 2025}) {
		t.Errorf("Next() = %v, want 2025-01", next)
	}
}

func TestRoundCents(t *testing.T) {
	got := RoundCents(decimal.NewFromFloat(10.005))
	if want := decimal.NewFromFloat(10.01); !got.Equal(want) {
		t.Errorf("RoundCents(10.005) = %s, want %s", got, want)
	}

	if !WithinCent(decimal.NewFromFloat(100.004), decimal.NewFromInt(100)) {
		t.Error("0.004 apart should be within a cent")
	}
	if WithinCent(decimal.NewFromFloat(100.02), decimal.NewFromInt(100)) {
		t.Error("0.02 apart should not be within a cent")
	}
}
