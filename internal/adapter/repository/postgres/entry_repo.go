package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// entrySelect joins the registry so listings carry account names.
const entrySelect = `
	SELECT e.id, e.entry_date, e.description,
	       e.debit_account_id, e.credit_account_id,
	       e.amount, e.document, e.created_at, e.updated_at,
	       COALESCE(da.name, ''), COALESCE(ca.name, '')
	FROM entries e
	LEFT JOIN accounts da ON e.debit_account_id = da.id
	LEFT JOIN accounts ca ON e.credit_account_id = ca.id`

// CreateTx inserts a new entry inside a transaction.
func (r *EntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	_, err := tx.(*Tx).PgxTx().Exec(ctx,
		`INSERT INTO entries
		   (id, entry_date, description, debit_account_id, credit_account_id, amount, document, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID,
		timeToPgDate(entry.Date),
		entry.Description,
		entry.DebitAccountID,
		entry.CreditAccountID,
		decimalToNumeric(entry.Amount),
		ptrToPgText(entry.Document),
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return &domain.StoreError{Op: "create entry", Err: err}
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	return getEntry(ctx, r.pool, id)
}

// GetByIDTx retrieves an entry by ID inside a transaction.
func (r *EntryRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	return getEntry(ctx, tx.(*Tx).PgxTx(), id)
}

// UpdateTx updates an entry in place.
func (r *EntryRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx,
		`UPDATE entries
		 SET entry_date = $2, description = $3, debit_account_id = $4,
		     credit_account_id = $5, amount = $6, document = $7, updated_at = $8
		 WHERE id = $1`,
		entry.ID,
		timeToPgDate(entry.Date),
		entry.Description,
		entry.DebitAccountID,
		entry.CreditAccountID,
		decimalToNumeric(entry.Amount),
		ptrToPgText(entry.Document),
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return &domain.StoreError{Op: "update entry", Err: err}
	}

	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "entry", ID: entry.ID}
	}

	return nil
}

// Delete deletes an entry. Existence is the only guard.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return &domain.StoreError{Op: "delete entry", Err: err}
	}

	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "entry", ID: id}
	}

	return nil
}

// List returns one page of entries matching the filter plus the total match
// count. Ordering is date descending, then creation time descending, then id
// descending so ties resolve most-recent-first.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, int64, error) {
	where, args := buildEntryFilter(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM entries e`+where, args...).Scan(&total); err != nil {
		return nil, 0, &domain.StoreError{Op: "count entries", Err: err}
	}

	pageArgs := append(args, int32(filter.Limit), int32(filter.Offset))
	query := fmt.Sprintf(
		"%s%s ORDER BY e.entry_date DESC, e.created_at DESC, e.id DESC LIMIT $%d OFFSET $%d",
		entrySelect, where, len(args)+1, len(args)+2,
	)

	rows, err := r.pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, &domain.StoreError{Op: "list entries", Err: err}
	}

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// ListChronological returns the full journal in (date, createdAt) ascending
// order for the consistency sweep.
func (r *EntryRepository) ListChronological(ctx context.Context) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, entrySelect+` ORDER BY e.entry_date ASC, e.created_at ASC, e.id ASC`)
	if err != nil {
		return nil, &domain.StoreError{Op: "list entries chronologically", Err: err}
	}

	return scanEntries(rows)
}

// CountByAccountTx counts entries referencing the account on either side,
// inside a transaction.
func (r *EntryRepository) CountByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) (int64, error) {
	var count int64

	err := tx.(*Tx).PgxTx().QueryRow(ctx,
		`SELECT COUNT(*) FROM entries WHERE debit_account_id = $1 OR credit_account_id = $1`,
		accountID,
	).Scan(&count)
	if err != nil {
		return 0, &domain.StoreError{Op: "count entries by account", Err: err}
	}

	return count, nil
}

// SumsBefore aggregates per-account turnover strictly before the date.
func (r *EntryRepository) SumsBefore(ctx context.Context, before time.Time) (map[string]domain.AccountSums, error) {
	return r.sums(ctx, `WHERE entry_date < $1`, timeToPgDate(before))
}

// SumsInRange aggregates per-account turnover within inclusive bounds; a nil
// bound is open.
func (r *EntryRepository) SumsInRange(ctx context.Context, from, to *time.Time) (map[string]domain.AccountSums, error) {
	var (
		clauses []string
		args    []any
	)

	if from != nil {
		args = append(args, timeToPgDate(*from))
		clauses = append(clauses, fmt.Sprintf("entry_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, timeToPgDate(*to))
		clauses = append(clauses, fmt.Sprintf("entry_date <= $%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	return r.sums(ctx, where, args...)
}

// sums runs both sides of the aggregation in one pass: each entry is
// unpivoted into a debit row and a credit row, then grouped by account.
func (r *EntryRepository) sums(ctx context.Context, where string, args ...any) (map[string]domain.AccountSums, error) {
	query := fmt.Sprintf(`
		SELECT account_id,
		       COALESCE(SUM(amount) FILTER (WHERE side = 'debit'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE side = 'credit'), 0)
		FROM (
			SELECT debit_account_id AS account_id, 'debit' AS side, amount FROM entries %s
			UNION ALL
			SELECT credit_account_id AS account_id, 'credit' AS side, amount FROM entries %s
		) sides
		GROUP BY account_id`, where, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "sum entries", Err: err}
	}
	defer rows.Close()

	sums := make(map[string]domain.AccountSums)

	for rows.Next() {
		var (
			accountID string
			debit     pgtype.Numeric
			credit    pgtype.Numeric
		)

		if err := rows.Scan(&accountID, &debit, &credit); err != nil {
			return nil, &domain.StoreError{Op: "scan entry sums", Err: err}
		}

		sums[accountID] = domain.AccountSums{
			Debit:  numericToDecimal(debit),
			Credit: numericToDecimal(credit),
		}
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "read entry sums", Err: err}
	}

	return sums, nil
}

func buildEntryFilter(filter domain.EntryFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if !filter.FromDate.IsZero() {
		args = append(args, timeToPgDate(filter.FromDate))
		clauses = append(clauses, fmt.Sprintf("e.entry_date >= $%d", len(args)))
	}
	if !filter.ToDate.IsZero() {
		args = append(args, timeToPgDate(filter.ToDate))
		clauses = append(clauses, fmt.Sprintf("e.entry_date <= $%d", len(args)))
	}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		clauses = append(clauses, fmt.Sprintf("(e.debit_account_id = $%d OR e.credit_account_id = $%d)", len(args), len(args)))
	}
	if filter.Document != "" {
		args = append(args, filter.Document)
		clauses = append(clauses, fmt.Sprintf("e.document = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func getEntry(ctx context.Context, q querier, id string) (*domain.Entry, error) {
	row := q.QueryRow(ctx, entrySelect+` WHERE e.id = $1`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "entry", ID: id}
		}

		return nil, &domain.StoreError{Op: "get entry", Err: err}
	}

	return entry, nil
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry     domain.Entry
		date      pgtype.Date
		amount    pgtype.Numeric
		document  pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID, &date, &entry.Description,
		&entry.DebitAccountID, &entry.CreditAccountID,
		&amount, &document, &createdAt, &updatedAt,
		&entry.DebitAccountName, &entry.CreditAccountName,
	)
	if err != nil {
		return nil, err
	}

	entry.Date = date.Time
	entry.Amount = numericToDecimal(amount)
	entry.Document = pgTextToPtr(document)
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	defer rows.Close()

	var entries []*domain.Entry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, &domain.StoreError{Op: "scan entry", Err: err}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "read entries", Err: err}
	}

	return entries, nil
}
