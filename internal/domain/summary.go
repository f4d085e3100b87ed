package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardLimitSummary is the aggregated view of what is owed on a card.
//
// CurrentCycleAmount is "what you'd owe if you closed the statement today",
// independent of whether a statement document exists yet for the cycle.
type CardLimitSummary struct {
	Outstanding        decimal.Decimal `json:"outstanding"`
	Available          decimal.Decimal `json:"available"`
	UsedPercent        decimal.Decimal `json:"usedPercent"`
	CurrentCycleAmount decimal.Decimal `json:"currentCycleAmount"`
}

var oneHundred = decimal.NewFromInt(100)

// SummarizeCard combines a card's transactions and statements into its limit
// summary.
//
// Every countable transaction lands in exactly one bucket: the statement-id
// bucket when its explicit linkage resolves to a known statement, the
// (month, year) bucket otherwise. A paid statement contributes zero no matter
// how many stale transactions still reference it, and a manual unpaid total
// survives even when no transaction references the statement at all.
func SummarizeCard(card *Card, transactions []*Transaction, statements []*CardStatement, now time.Time) CardLimitSummary {
	byID := make(map[string]*CardStatement, len(statements))
	for _, s := range statements {
		byID[s.ID] = s
		for _, ext := range s.ExternalIDs {
			if _, taken := byID[ext]; !taken {
				byID[ext] = s
			}
		}
	}

	byKey := DedupStatementsByKey(statements)

	idSums := make(map[string]decimal.Decimal)
	keySums := make(map[StatementKey]decimal.Decimal)

	for _, t := range transactions {
		if ExcludedFromTotals(t) || !t.Amount.IsPositive() {
			continue
		}

		if invID := TransactionInvoiceID(t); invID != "" {
			if s, known := byID[invID]; known {
				idSums[s.ID] = RoundCents(idSums[s.ID].Add(t.Amount))
				continue
			}
		}

		if key, ok := ResolveStatementReference(t, card.ClosingDay); ok {
			keySums[key] = RoundCents(keySums[key].Add(t.Amount))
		}
	}

	outstanding := decimal.Zero
	countedManual := make(map[string]bool)

	for id, sum := range idSums {
		s := byID[id]
		if s.IsPaid() {
			continue
		}
		if s.AmountMode == AmountManual {
			if !countedManual[s.ID] {
				countedManual[s.ID] = true
				outstanding = RoundCents(outstanding.Add(s.TotalAmount))
			}
			continue
		}
		outstanding = RoundCents(outstanding.Add(sum))
	}

	for key, sum := range keySums {
		s := byKey[key]
		if s == nil {
			outstanding = RoundCents(outstanding.Add(sum))
			continue
		}
		if s.IsPaid() {
			continue
		}
		if s.AmountMode == AmountManual {
			if !countedManual[s.ID] {
				countedManual[s.ID] = true
				outstanding = RoundCents(outstanding.Add(s.TotalAmount))
			}
			continue
		}
		outstanding = RoundCents(outstanding.Add(sum))
	}

	// A manual override must survive even when the transactions behind it are
	// long gone.
	for _, s := range byKey {
		if s.AmountMode == AmountManual && !s.IsPaid() && !countedManual[s.ID] {
			countedManual[s.ID] = true
			outstanding = RoundCents(outstanding.Add(s.TotalAmount))
		}
	}

	currentKey := ResolveCardCycle(now, card.ClosingDay)
	currentCycle := keySums[currentKey]
	for id, sum := range idSums {
		if byID[id].Key() == currentKey {
			currentCycle = RoundCents(currentCycle.Add(sum))
		}
	}
	if s := byKey[currentKey]; s != nil && s.AmountMode == AmountManual && !s.IsPaid() {
		currentCycle = s.TotalAmount
	}

	available := RoundCents(card.Limit.Sub(outstanding))

	usedPercent := decimal.Zero
	if card.Limit.IsPositive() {
		used := outstanding
		if used.IsNegative() {
			used = decimal.Zero
		}
		usedPercent = used.Div(card.Limit).Mul(oneHundred).Round(2)
		if usedPercent.GreaterThan(oneHundred) {
			usedPercent = oneHundred
		}
	}

	return CardLimitSummary{
		Outstanding:        outstanding,
		Available:          available,
		UsedPercent:        usedPercent,
		CurrentCycleAmount: currentCycle,
	}
}
