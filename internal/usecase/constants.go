package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single write transaction so a stuck
	// store call cannot hold locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
