package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Descriptions used by the app itself when it writes technical adjustments
// against a card. Matched case and diacritics insensitively, exact or prefix,
// so "Pagamento de fatura - Nubank" still matches.
var adjustmentPhrases = []string{
	"pagamento de fatura",
	"ajuste de fatura",
	"ajuste de saldo",
	"estorno de fatura",
	"statement payment",
	"statement adjustment",
	"balance adjustment",
}

// Sources whose transactions represent a card total rather than spending
// against it. Counting them would double the very amount they settle.
var systemSources = map[TransactionSource]struct{}{
	SourceStatementPayment: {},
	SourceCardAdjustment:   {},
	SourceSystem:           {},
}

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// foldText lowercases and strips diacritics for phrase comparison.
func foldText(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ExcludedFromTotals reports whether a transaction must not count toward card
// outstanding totals: explicitly flagged, generated by a system-internal
// source, or a technical adjustment written against a card.
func ExcludedFromTotals(t *Transaction) bool {
	if t == nil {
		return true
	}

	if t.ExcludeFromTotals {
		return true
	}

	if _, ok := systemSources[t.Source]; ok {
		return true
	}

	hasCardContext := t.CardID != "" || TransactionInvoiceID(t) != ""
	if !hasCardContext || t.Description == "" {
		return false
	}

	desc := foldText(t.Description)
	for _, phrase := range adjustmentPhrases {
		if desc == phrase || strings.HasPrefix(desc, phrase) {
			return true
		}
	}

	return false
}
