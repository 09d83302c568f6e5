package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/domain"
)

// AccountRepository defines data access for the account registry.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	UpdateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	ExistsTx(ctx context.Context, tx Transaction, id string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListAll(ctx context.Context) ([]*domain.Account, error)
}

// EntryRepository defines data access for the journal.
type EntryRepository interface {
	CreateTx(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Entry, error)
	UpdateTx(ctx context.Context, tx Transaction, entry *domain.Entry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, int64, error)
	ListChronological(ctx context.Context) ([]*domain.Entry, error)
	CountByAccountTx(ctx context.Context, tx Transaction, accountID string) (int64, error)

	// SumsBefore aggregates per-account debit/credit turnover strictly
	// before the given date. SumsInRange aggregates within inclusive
	// bounds; a nil bound is open.
	SumsBefore(ctx context.Context, before time.Time) (map[string]domain.AccountSums, error)
	SumsInRange(ctx context.Context, from, to *time.Time) (map[string]domain.AccountSums, error)
}

// LedgerRepository defines journal-wide aggregate access.
type LedgerRepository interface {
	// Totals returns the debit-side and credit-side amount totals over the
	// whole journal.
	Totals(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error)
	// Counts returns the number of accounts and entries.
	Counts(ctx context.Context) (accounts, entries int64, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient store failures (serialization
// conflicts, deadlocks). Business errors are never retried.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
