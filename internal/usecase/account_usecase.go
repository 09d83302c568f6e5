package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/infrastructure/metrics"
)

// AccountUseCase handles account registry business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	Type           string
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new account. The initial balance defaults to zero.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	accountType, err := domain.ParseAccountType(input.Type)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Name:           strings.TrimSpace(input.Name),
		Type:           accountType,
		InitialBalance: input.InitialBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// UpdateAccountInput represents a partial account update. Nil fields are
// left unchanged.
type UpdateAccountInput struct {
	Name           *string
	Type           *string
	InitialBalance *decimal.Decimal
}

// UpdateAccount applies a partial update to an account. Changing the type of
// an account that journal entries already reference is rejected, since the
// sign convention of every derived balance depends on it.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*domain.Account, error) {
	if input.Name != nil {
		if err := domain.ValidateAccountName(*input.Name); err != nil {
			return nil, err
		}
	}

	var newType domain.AccountType
	if input.Type != nil {
		t, err := domain.ParseAccountType(*input.Type)
		if err != nil {
			return nil, err
		}
		newType = t
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	var updated *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if input.Type != nil && newType != account.Type {
			count, err := uc.entryRepo.CountByAccountTx(ctx, tx, id)
			if err != nil {
				return err
			}
			if count > 0 {
				return &domain.ReferencedError{AccountID: id, EntryCount: count}
			}
			account.Type = newType
		}

		if input.Name != nil {
			account.Name = strings.TrimSpace(*input.Name)
		}
		if input.InitialBalance != nil {
			account.InitialBalance = *input.InitialBalance
		}
		account.UpdatedAt = time.Now().UTC()

		if err := uc.accountRepo.UpdateTx(ctx, tx, account); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		updated = account

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteAccount deletes an account. Deletion is refused while any journal
// entry references the account as debit or credit; the reference check and
// the delete observe one snapshot.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := uc.accountRepo.GetByIDTx(ctx, tx, id); err != nil {
			return err
		}

		count, err := uc.entryRepo.CountByAccountTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return &domain.ReferencedError{AccountID: id, EntryCount: count}
		}

		if err := uc.accountRepo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsDeleted.Inc()
	}

	return nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts, most recently created first.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}
