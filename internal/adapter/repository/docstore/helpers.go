// Package docstore adapts the JSON document store to the typed repository
// interfaces of the usecase layer. Each repository owns one collection and
// round-trips its domain type through JSON. Writes re-marshal the typed form,
// so keys outside the modeled schema do not survive an update; transactions
// are the exception, carrying unmodeled keys in their Extra map.
package docstore

import (
	"encoding/json"
	"fmt"
)

// Collection names.
const (
	collAccounts     = "accounts"
	collCards        = "cards"
	collTransactions = "transactions"
	collStatements   = "card_statements"
	collBills        = "recurring_bills"
	collBillPayments = "bill_payments"
	collAuditEvents  = "audit_events"
)

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

func decode[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &v, nil
}

func decodeAll[T any](bodies [][]byte) ([]*T, error) {
	result := make([]*T, 0, len(bodies))
	for _, body := range bodies {
		v, err := decode[T](body)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// filter builds a JSONB containment filter body.
func filter(fields map[string]any) []byte {
	data, _ := json.Marshal(fields)
	return data
}
