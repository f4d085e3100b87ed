package domain

import "errors"

var (
	// Lookup errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrCardNotFound        = errors.New("card not found")
	ErrStatementNotFound   = errors.New("statement not found")
	ErrBillNotFound        = errors.New("bill not found")
	ErrPaymentNotFound     = errors.New("bill payment not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Validation errors
	ErrMissingAccount   = errors.New("account id is required")
	ErrMissingCard      = errors.New("card id is required")
	ErrInvalidAmount    = errors.New("amount must not be negative")
	ErrInvalidPeriod    = errors.New("month must be in 1-12 and year in 1970-3000")
	ErrStatementNotPaid = errors.New("statement is not paid")
)
