package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, name, type, initial_balance, created_at, updated_at`

// Create inserts a new account. A name collision surfaces as
// domain.DuplicateNameError via the unique constraint, so the check and the
// insert are a single atomic statement.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO accounts (id, name, type, initial_balance, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID,
		account.Name,
		string(account.Type),
		decimalToNumeric(account.InitialBalance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Name: account.Name}
		}

		return &domain.StoreError{Op: "create account", Err: err}
	}

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return getAccount(ctx, r.pool, id)
}

// GetByIDTx retrieves an account by ID inside a transaction, locking the row
// so concurrent writers serialize on it.
func (r *AccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return getAccountLocked(ctx, tx.(*Tx).PgxTx(), id)
}

// UpdateTx updates an account in place.
func (r *AccountRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx,
		`UPDATE accounts
		 SET name = $2, type = $3, initial_balance = $4, updated_at = $5
		 WHERE id = $1`,
		account.ID,
		account.Name,
		string(account.Type),
		decimalToNumeric(account.InitialBalance),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Name: account.Name}
		}

		return &domain.StoreError{Op: "update account", Err: err}
	}

	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "account", ID: account.ID}
	}

	return nil
}

// DeleteTx deletes an account. The application checks references first; the
// RESTRICT foreign keys are the backstop against a concurrent entry insert.
func (r *AccountRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return &domain.ReferencedError{AccountID: id}
		}

		return &domain.StoreError{Op: "delete account", Err: err}
	}

	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "account", ID: id}
	}

	return nil
}

// ExistsTx reports whether an account exists, inside a transaction.
func (r *AccountRepository) ExistsTx(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	var exists bool

	err := tx.(*Tx).PgxTx().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, &domain.StoreError{Op: "check account exists", Err: err}
	}

	return exists, nil
}

// List lists accounts, most recently created first.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+`
		 FROM accounts
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset),
	)
	if err != nil {
		return nil, &domain.StoreError{Op: "list accounts", Err: err}
	}

	return scanAccounts(rows)
}

// ListAll lists every account without pagination, for the balance engine and
// the consistency sweep. Account counts are expected to stay small.
func (r *AccountRepository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, &domain.StoreError{Op: "list all accounts", Err: err}
	}

	return scanAccounts(rows)
}

func getAccount(ctx context.Context, q querier, id string) (*domain.Account, error) {
	row := q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row, id)
}

func getAccountLocked(ctx context.Context, q querier, id string) (*domain.Account, error) {
	row := q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)

	return scanAccount(row, id)
}

func scanAccount(row pgx.Row, id string) (*domain.Account, error) {
	var (
		account   domain.Account
		accType   string
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&account.ID, &account.Name, &accType, &balance, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "account", ID: id}
		}

		return nil, &domain.StoreError{Op: "get account", Err: err}
	}

	account.Type = domain.AccountType(accType)
	account.InitialBalance = numericToDecimal(balance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

func scanAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	defer rows.Close()

	var accounts []*domain.Account

	for rows.Next() {
		var (
			account   domain.Account
			accType   string
			balance   pgtype.Numeric
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)

		if err := rows.Scan(&account.ID, &account.Name, &accType, &balance, &createdAt, &updatedAt); err != nil {
			return nil, &domain.StoreError{Op: "scan account", Err: err}
		}

		account.Type = domain.AccountType(accType)
		account.InitialBalance = numericToDecimal(balance)
		account.CreatedAt = createdAt.Time
		account.UpdatedAt = updatedAt.Time

		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "read accounts", Err: err}
	}

	return accounts, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
