package domain

import (
	"testing"
	"time"
)

func TestPreferredPayment(t *testing.T) {
	early := date(2024, 3, 5)
	late := date(2024, 3, 20)

	tests := []struct {
		name   string
		a, b   *BillPayment
		wantID string
	}{
		{
			name:   "paid beats overdue",
			a:      &BillPayment{ID: "overdue", Status: BillOverdue},
			b:      &BillPayment{ID: "paid", Status: BillPaid},
			wantID: "paid",
		},
		{
			name:   "overdue beats pending",
			a:      &BillPayment{ID: "pending", Status: BillPending},
			b:      &BillPayment{ID: "overdue", Status: BillOverdue},
			wantID: "overdue",
		},
		{
			name:   "pending beats skipped",
			a:      &BillPayment{ID: "skipped", Status: BillSkipped},
			b:      &BillPayment{ID: "pending", Status: BillPending},
			wantID: "pending",
		},
		{
			name:   "latest paidAt breaks ties",
			a:      &BillPayment{ID: "old-paid", Status: BillPaid, PaidAt: &early},
			b:      &BillPayment{ID: "new-paid", Status: BillPaid, PaidAt: &late},
			wantID: "new-paid",
		},
		{
			name:   "paidAt beats nil paidAt on tie",
			a:      &BillPayment{ID: "no-ts", Status: BillPaid},
			b:      &BillPayment{ID: "with-ts", Status: BillPaid, PaidAt: &early},
			wantID: "with-ts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreferredPayment(tt.a, tt.b); got.ID != tt.wantID {
				t.Errorf("PreferredPayment() = %s, want %s", got.ID, tt.wantID)
			}
			if got := PreferredPayment(tt.b, tt.a); got.ID != tt.wantID {
				t.Errorf("PreferredPayment(reversed) = %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

func TestDedupPayments_Deterministic(t *testing.T) {
	pending := &BillPayment{ID: "p-pending", Status: BillPending}
	paid := &BillPayment{ID: "p-paid", Status: BillPaid}
	skipped := &BillPayment{ID: "p-skipped", Status: BillSkipped}

	// Every permutation must elect the same canonical record.
	orders := [][]*BillPayment{
		{pending, paid, skipped},
		{paid, skipped, pending},
		{skipped, pending, paid},
		{skipped, paid, pending},
	}

	for _, payments := range orders {
		canonical, extras := DedupPayments(payments)
		if canonical.ID != "p-paid" {
			t.Fatalf("canonical = %s, want p-paid", canonical.ID)
		}
		if len(extras) != 2 {
			t.Fatalf("extras = %d, want 2", len(extras))
		}
		for _, e := range extras {
			if e.ID == canonical.ID {
				t.Errorf("canonical %s listed among extras", e.ID)
			}
		}
	}
}

func TestDedupPayments_Empty(t *testing.T) {
	canonical, extras := DedupPayments(nil)
	if canonical != nil || extras != nil {
		t.Errorf("DedupPayments(nil) = %v, %v; want nil, nil", canonical, extras)
	}
}

func TestBillDueDate(t *testing.T) {
	got := BillDueDate(StatementKey{Month: 2, Year: 2023}, 31)
	want := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("BillDueDate() = %s, want %s", got, want)
	}
}

func TestPendingStatusAt(t *testing.T) {
	due := date(2024, 3, 10)

	if got := PendingStatusAt(due, date(2024, 3, 5)); got != BillPending {
		t.Errorf("before due = %s, want pending", got)
	}
	if got := PendingStatusAt(due, date(2024, 3, 15)); got != BillOverdue {
		t.Errorf("after due = %s, want overdue", got)
	}
}
