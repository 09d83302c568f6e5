package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/infrastructure/metrics"
)

// EntryUseCase handles journal business logic.
type EntryUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics *metrics.Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// CreateEntryInput represents input for creating a journal entry.
type CreateEntryInput struct {
	Date            time.Time
	Description     string
	DebitAccountID  string
	CreditAccountID string
	Amount          decimal.Decimal
	Document        *string
}

// CreateEntry records a new journal entry. Checks run in a fixed order and
// the first failure is reported: amount, date, description, debit != credit,
// then account existence. The existence checks and the insert run inside one
// transaction so a concurrent account delete cannot leave a dangling
// reference.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDate(input.Date); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := domain.ValidateDocument(input.Document); err != nil {
		return nil, err
	}

	if input.DebitAccountID == input.CreditAccountID {
		return nil, &domain.SameAccountError{AccountID: input.DebitAccountID}
	}

	now := time.Now().UTC()

	entry := &domain.Entry{
		ID:              uc.idGen.Generate(),
		Date:            input.Date,
		Description:     input.Description,
		DebitAccountID:  input.DebitAccountID,
		CreditAccountID: input.CreditAccountID,
		Amount:          input.Amount,
		Document:        input.Document,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.checkAccountExists(ctx, tx, "debit", entry.DebitAccountID); err != nil {
			return err
		}
		if err := uc.checkAccountExists(ctx, tx, "credit", entry.CreditAccountID); err != nil {
			return err
		}

		if err := uc.entryRepo.CreateTx(ctx, tx, entry); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
		amount, _ := entry.Amount.Float64()
		uc.metrics.EntryAmount.Observe(amount)
	}

	return uc.entryRepo.GetByID(ctx, entry.ID)
}

// UpdateEntryInput represents a partial entry update. Nil fields are left
// unchanged.
type UpdateEntryInput struct {
	Date            *time.Time
	Description     *string
	DebitAccountID  *string
	CreditAccountID *string
	Amount          *decimal.Decimal
	Document        *string
}

// UpdateEntry applies a partial update to a journal entry. A supplied
// account id that differs from the current value must exist, and the
// resulting (debit, credit) pair after merging supplied and retained fields
// must still differ.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, id string, input UpdateEntryInput) (*domain.Entry, error) {
	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}
	if input.Date != nil {
		if err := domain.ValidateDate(*input.Date); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := domain.ValidateDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateDocument(input.Document); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		entry, err := uc.entryRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		debitID := entry.DebitAccountID
		creditID := entry.CreditAccountID

		if input.DebitAccountID != nil && *input.DebitAccountID != entry.DebitAccountID {
			if err := uc.checkAccountExists(ctx, tx, "debit", *input.DebitAccountID); err != nil {
				return err
			}
			debitID = *input.DebitAccountID
		}
		if input.CreditAccountID != nil && *input.CreditAccountID != entry.CreditAccountID {
			if err := uc.checkAccountExists(ctx, tx, "credit", *input.CreditAccountID); err != nil {
				return err
			}
			creditID = *input.CreditAccountID
		}

		// The resulting pair matters, not the supplied fields alone.
		if debitID == creditID {
			return &domain.SameAccountError{AccountID: debitID}
		}

		entry.DebitAccountID = debitID
		entry.CreditAccountID = creditID
		if input.Date != nil {
			entry.Date = *input.Date
		}
		if input.Description != nil {
			entry.Description = *input.Description
		}
		if input.Amount != nil {
			entry.Amount = *input.Amount
		}
		if input.Document != nil {
			entry.Document = input.Document
		}
		entry.UpdatedAt = time.Now().UTC()

		if err := uc.entryRepo.UpdateTx(ctx, tx, entry); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesUpdated.Inc()
	}

	return uc.entryRepo.GetByID(ctx, id)
}

// DeleteEntry deletes a journal entry. Derived balances reflect the removal
// on the next read; nothing else is touched.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	if err := uc.entryRepo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Inc()
	}

	return nil
}

// ListEntriesResult is one page of the journal plus the total match count.
type ListEntriesResult struct {
	Entries []*domain.Entry
	Total   int64
	Limit   int
	Offset  int
}

// ListEntries lists journal entries matching the filter, ordered by date
// descending then creation time descending.
func (uc *EntryUseCase) ListEntries(ctx context.Context, filter domain.EntryFilter) (*ListEntriesResult, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	entries, total, err := uc.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListEntriesResult{
		Entries: entries,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

func (uc *EntryUseCase) checkAccountExists(ctx context.Context, tx Transaction, side, accountID string) error {
	exists, err := uc.accountRepo.ExistsTx(ctx, tx, accountID)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.UnknownAccountError{Side: side, AccountID: accountID}
	}

	return nil
}
