package usecase

import "time"

const (
	// SummaryCacheTTL bounds how stale a cached card summary may get.
	SummaryCacheTTL = 60 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultReconcileAccountLimit caps accounts fetched per workspace when the
	// caller does not set a limit.
	DefaultReconcileAccountLimit = 10000
)
