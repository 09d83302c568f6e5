package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/usecase"
	"github.com/example/bookkeeper/internal/usecase/mocks"
)

func newAccountUseCase(accountRepo *mocks.MockAccountRepository, entryRepo *mocks.MockEntryRepository) *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		entryRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		nil,
	)
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		seed    []*domain.Account
		wantErr error
	}{
		{
			name:  "successful creation",
			input: usecase.CreateAccountInput{Name: "Cash", Type: "asset", InitialBalance: decimal.NewFromInt(100)},
		},
		{
			name:  "zero initial balance by default",
			input: usecase.CreateAccountInput{Name: "Sales", Type: "income"},
		},
		{
			name:    "empty name",
			input:   usecase.CreateAccountInput{Name: "  ", Type: "asset"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "invalid type",
			input:   usecase.CreateAccountInput{Name: "Cash", Type: "bank"},
			wantErr: domain.ErrInvalidType,
		},
		{
			name:    "duplicate name",
			input:   usecase.CreateAccountInput{Name: "Cash", Type: "asset"},
			seed:    []*domain.Account{{ID: "a1", Name: "Cash", Type: domain.AccountTypeAsset}},
			wantErr: domain.ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := mocks.NewMockAccountRepository()
			for _, account := range tt.seed {
				accountRepo.Put(account)
			}

			uc := newAccountUseCase(accountRepo, mocks.NewMockEntryRepository())
			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.ID == "" {
				t.Error("expected generated ID")
			}
			if account.Name != tt.input.Name {
				t.Errorf("expected name %q, got %q", tt.input.Name, account.Name)
			}
			if account.CreatedAt.IsZero() || account.UpdatedAt.IsZero() {
				t.Error("expected registry-set timestamps")
			}
		})
	}
}

func TestAccountUseCase_UpdateAccount(t *testing.T) {
	newName := "Petty cash"
	newType := "expense"
	newBalance := decimal.NewFromInt(500)

	t.Run("partial update keeps unspecified fields", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Put(&domain.Account{ID: "a1", Name: "Cash", Type: domain.AccountTypeAsset, InitialBalance: decimal.NewFromInt(100)})

		uc := newAccountUseCase(accountRepo, mocks.NewMockEntryRepository())
		account, err := uc.UpdateAccount(context.Background(), "a1", usecase.UpdateAccountInput{Name: &newName})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.Name != newName {
			t.Errorf("expected name %q, got %q", newName, account.Name)
		}
		if account.Type != domain.AccountTypeAsset {
			t.Errorf("type changed unexpectedly: %s", account.Type)
		}
		if !account.InitialBalance.Equal(decimal.NewFromInt(100)) {
			t.Errorf("initial balance changed unexpectedly: %s", account.InitialBalance)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		uc := newAccountUseCase(mocks.NewMockAccountRepository(), mocks.NewMockEntryRepository())
		_, err := uc.UpdateAccount(context.Background(), "missing", usecase.UpdateAccountInput{Name: &newName})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rename collision", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Put(&domain.Account{ID: "a1", Name: "Cash", Type: domain.AccountTypeAsset})
		accountRepo.Put(&domain.Account{ID: "a2", Name: "Petty cash", Type: domain.AccountTypeAsset})

		uc := newAccountUseCase(accountRepo, mocks.NewMockEntryRepository())
		_, err := uc.UpdateAccount(context.Background(), "a1", usecase.UpdateAccountInput{Name: &newName})
		if !errors.Is(err, domain.ErrDuplicateName) {
			t.Fatalf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("type change blocked while referenced", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Put(&domain.Account{ID: "a1", Name: "Cash", Type: domain.AccountTypeAsset})
		accountRepo.Put(&domain.Account{ID: "a2", Name: "Sales", Type: domain.AccountTypeIncome})

		entryRepo := mocks.NewMockEntryRepository()
		entryRepo.CreateTx(context.Background(), nil, &domain.Entry{
			ID: "e1", DebitAccountID: "a1", CreditAccountID: "a2", Amount: decimal.NewFromInt(10),
		})

		uc := newAccountUseCase(accountRepo, entryRepo)
		_, err := uc.UpdateAccount(context.Background(), "a1", usecase.UpdateAccountInput{Type: &newType})
		if !errors.Is(err, domain.ErrReferenced) {
			t.Fatalf("expected ErrReferenced, got %v", err)
		}
	})

	t.Run("type change allowed while unreferenced", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Put(&domain.Account{ID: "a1", Name: "Cash", Type: domain.AccountTypeAsset})

		uc := newAccountUseCase(accountRepo, mocks.NewMockEntryRepository())
		account, err := uc.UpdateAccount(context.Background(), "a1", usecase.UpdateAccountInput{Type: &newType, InitialBalance: &newBalance})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.Type != domain.AccountTypeExpense {
			t.Errorf("expected type expense, got %s", account.Type)
		}
		if !account.InitialBalance.Equal(newBalance) {
			t.Errorf("expected initial balance %s, got %s", newBalance, account.InitialBalance)
		}
	})
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	t.Run("unreferenced account deletes", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Put(&domain.Account{ID: "a1", Name: "Cash", Type: domain.AccountTypeAsset})

		uc := newAccountUseCase(accountRepo, mocks.NewMockEntryRepository())
		if err := uc.DeleteAccount(context.Background(), "a1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := uc.GetAccount(context.Background(), "a1"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("account still present after delete")
		}
	})

	t.Run("referenced account survives", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Put(&domain.Account{ID: "a1", Name: "Cash", Type: domain.AccountTypeAsset})
		accountRepo.Put(&domain.Account{ID: "a2", Name: "Sales", Type: domain.AccountTypeIncome})

		entryRepo := mocks.NewMockEntryRepository()
		entryRepo.CreateTx(context.Background(), nil, &domain.Entry{
			ID: "e1", DebitAccountID: "a1", CreditAccountID: "a2", Amount: decimal.NewFromInt(10),
		})

		uc := newAccountUseCase(accountRepo, entryRepo)
		err := uc.DeleteAccount(context.Background(), "a2")

		var refErr *domain.ReferencedError
		if !errors.As(err, &refErr) {
			t.Fatalf("expected ReferencedError, got %v", err)
		}
		if refErr.AccountID != "a2" || refErr.EntryCount != 1 {
			t.Errorf("unexpected error detail: %+v", refErr)
		}
		if _, err := uc.GetAccount(context.Background(), "a2"); err != nil {
			t.Errorf("account should remain after refused delete: %v", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		uc := newAccountUseCase(mocks.NewMockAccountRepository(), mocks.NewMockEntryRepository())
		if err := uc.DeleteAccount(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
