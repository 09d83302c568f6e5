package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Totals sums each side of the journal. Every entry contributes its amount
// to both sides, so the two figures can only diverge if rows were mutated
// outside the application.
func (r *LedgerRepository) Totals(ctx context.Context) (totalDebits decimal.Decimal, totalCredits decimal.Decimal, err error) {
	var debits, credits pgtype.Numeric

	err = r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE debit_account_id IS NOT NULL), 0),
			COALESCE(SUM(amount) FILTER (WHERE credit_account_id IS NOT NULL), 0)
		FROM entries`,
	).Scan(&debits, &credits)
	if err != nil {
		return decimal.Zero, decimal.Zero, &domain.StoreError{Op: "sum ledger totals", Err: err}
	}

	return numericToDecimal(debits), numericToDecimal(credits), nil
}

// Counts returns the number of accounts and entries.
func (r *LedgerRepository) Counts(ctx context.Context) (accounts int64, entries int64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM accounts),
			(SELECT COUNT(*) FROM entries)`,
	).Scan(&accounts, &entries)
	if err != nil {
		return 0, 0, &domain.StoreError{Op: "count ledger rows", Err: err}
	}

	return accounts, entries, nil
}
