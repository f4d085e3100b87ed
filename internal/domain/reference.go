package domain

import (
	"strconv"
	"strings"
	"time"
)

// StatementKey identifies one billing cycle of one card.
type StatementKey struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Valid reports whether the key describes a plausible billing cycle.
func (k StatementKey) Valid() bool {
	return k.Month >= 1 && k.Month <= 12 && k.Year >= 1970 && k.Year <= 3000
}

// Next returns the key of the following month with year rollover.
func (k StatementKey) Next() StatementKey {
	if k.Month == 12 {
		return StatementKey{Month: 1, Year: k.Year + 1}
	}
	return StatementKey{Month: k.Month + 1, Year: k.Year}
}

// Statement linkage has been written under several spellings over the life of
// the product. Each concept is resolved by the first key present, in order.
var (
	invoiceIDKeys = []string{
		"invoiceId", "invoice_id",
		"statementId", "statement_id",
		"faturaId", "fatura_id",
	}
	invoiceMonthKeys = []string{
		"invoiceMonth", "invoice_month",
		"statementMonth", "statement_month",
		"faturaMes", "fatura_mes",
	}
	invoiceYearKeys = []string{
		"invoiceYear", "invoice_year",
		"statementYear", "statement_year",
		"faturaAno", "fatura_ano",
	}
	invoiceRefKeys = []string{
		"invoiceRef", "invoice_ref",
		"statementRef", "statement_ref",
		"faturaRef", "fatura_ref",
	}
)

// firstString returns the first non-empty string stored under any of the keys.
func firstString(extra map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		v, ok := extra[key]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// firstInt returns the first numeric value stored under any of the keys.
// Documents round-trip through JSON, so numbers usually arrive as float64.
func firstInt(extra map[string]any, keys []string) (int, bool) {
	for _, key := range keys {
		v, ok := extra[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case int:
			return n, true
		case int32:
			return int(n), true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return i, true
			}
		}
	}
	return 0, false
}

// TransactionInvoiceID extracts an explicit statement linkage id, if any.
// When present it wins over every date-based resolution: the transaction is
// counted against that statement regardless of its date.
func TransactionInvoiceID(t *Transaction) string {
	if t == nil || t.Extra == nil {
		return ""
	}
	id, _ := firstString(t.Extra, invoiceIDKeys)
	return id
}

// ParseStatementRef parses "YYYY-MM", "YYYY/MM", "MM-YYYY" or "MM/YYYY".
func ParseStatementRef(ref string) (StatementKey, bool) {
	ref = strings.TrimSpace(ref)

	sep := "-"
	if strings.Contains(ref, "/") {
		sep = "/"
	}

	parts := strings.Split(ref, sep)
	if len(parts) != 2 {
		return StatementKey{}, false
	}

	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return StatementKey{}, false
	}

	// Four-digit part is the year, wherever it sits.
	var key StatementKey
	if len(parts[0]) == 4 {
		key = StatementKey{Month: b, Year: a}
	} else {
		key = StatementKey{Month: a, Year: b}
	}

	if !key.Valid() {
		return StatementKey{}, false
	}
	return key, true
}

// clampDay limits a day-of-month to the length of the given month.
func clampDay(day, month, year int) int {
	if day < 1 {
		return 1
	}
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}

// ResolveCardCycle maps a transaction date onto a billing cycle given the
// card's closing day. A cycle runs from the day after one closing date to the
// next, so a date on or after the closing day of month M belongs to the cycle
// that closes in month M+1, rolling December into January.
func ResolveCardCycle(date time.Time, closingDay int) StatementKey {
	key := StatementKey{Month: int(date.Month()), Year: date.Year()}
	if closingDay <= 0 {
		return key
	}

	effective := clampDay(closingDay, key.Month, key.Year)
	if date.Day() >= effective {
		return key.Next()
	}
	return key
}

// ResolveStatementReference decides which billing cycle a transaction counts
// toward. Priority: explicit month/year fields, then a string reference, then
// the card cycle rule when a closing day is known, then the plain calendar
// month of the date. Returns false only when the date itself is unusable.
func ResolveStatementReference(t *Transaction, closingDay int) (StatementKey, bool) {
	if t == nil {
		return StatementKey{}, false
	}

	if t.Extra != nil {
		month, okM := firstInt(t.Extra, invoiceMonthKeys)
		year, okY := firstInt(t.Extra, invoiceYearKeys)
		if okM && okY {
			key := StatementKey{Month: month, Year: year}
			if key.Valid() {
				return key, true
			}
		}

		if ref, ok := firstString(t.Extra, invoiceRefKeys); ok {
			if key, ok := ParseStatementRef(ref); ok {
				return key, true
			}
		}
	}

	if t.Date.IsZero() {
		return StatementKey{}, false
	}

	if closingDay > 0 {
		return ResolveCardCycle(t.Date, closingDay), true
	}

	return StatementKey{Month: int(t.Date.Month()), Year: t.Date.Year()}, true
}
