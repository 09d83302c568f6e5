package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/usecase"
)

// MockAccountRepository is a mock implementation of usecase.AccountRepository.
// With no Func overrides it behaves as an in-memory registry.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc    func(ctx context.Context, account *domain.Account) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTxFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	UpdateTxFunc  func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	DeleteTxFunc  func(ctx context.Context, tx usecase.Transaction, id string) error
	ExistsTxFunc  func(ctx context.Context, tx usecase.Transaction, id string) (bool, error)
	ListFunc      func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListAllFunc   func(ctx context.Context) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Put seeds an account directly, bypassing any Func override.
func (m *MockAccountRepository) Put(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.Name == account.Name {
			return &domain.DuplicateNameError{Name: account.Name}
		}
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if account, ok := m.accounts[id]; ok {
		return account, nil
	}
	return nil, &domain.NotFoundError{Resource: "account", ID: id}
}

func (m *MockAccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDTxFunc != nil {
		return m.GetByIDTxFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return &domain.NotFoundError{Resource: "account", ID: account.ID}
	}
	for id, existing := range m.accounts {
		if id != account.ID && existing.Name == account.Name {
			return &domain.DuplicateNameError{Name: account.Name}
		}
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteTxFunc != nil {
		return m.DeleteTxFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return &domain.NotFoundError{Resource: "account", ID: id}
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) ExistsTx(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	if m.ExistsTxFunc != nil {
		return m.ExistsTxFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.accounts[id]
	return ok, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return m.ListAll(ctx)
}

func (m *MockAccountRepository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// MockEntryRepository is a mock implementation of usecase.EntryRepository.
// With no Func overrides it behaves as an in-memory journal and computes
// sums by scanning it, so balance tests can run against realistic data.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	CreateTxFunc          func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Entry, error)
	GetByIDTxFunc         func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error)
	UpdateTxFunc          func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	DeleteFunc            func(ctx context.Context, id string) error
	ListFunc              func(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, int64, error)
	ListChronologicalFunc func(ctx context.Context) ([]*domain.Entry, error)
	CountByAccountTxFunc  func(ctx context.Context, tx usecase.Transaction, accountID string) (int64, error)
	SumsBeforeFunc        func(ctx context.Context, before time.Time) (map[string]domain.AccountSums, error)
	SumsInRangeFunc       func(ctx context.Context, from, to *time.Time) (map[string]domain.AccountSums, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *MockEntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.entries[id]; ok {
		return entry, nil
	}
	return nil, &domain.NotFoundError{Resource: "entry", ID: id}
}

func (m *MockEntryRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	if m.GetByIDTxFunc != nil {
		return m.GetByIDTxFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockEntryRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return &domain.NotFoundError{Resource: "entry", ID: entry.ID}
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return &domain.NotFoundError{Resource: "entry", ID: id}
	}
	delete(m.entries, id)
	return nil
}

func (m *MockEntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]*domain.Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		if matches(entry, filter) {
			matched = append(matched, entry)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *MockEntryRepository) ListChronological(ctx context.Context) ([]*domain.Entry, error) {
	if m.ListChronologicalFunc != nil {
		return m.ListChronologicalFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, entry)
	}
	return entries, nil
}

func (m *MockEntryRepository) CountByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) (int64, error) {
	if m.CountByAccountTxFunc != nil {
		return m.CountByAccountTxFunc(ctx, tx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, entry := range m.entries {
		if entry.DebitAccountID == accountID || entry.CreditAccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (m *MockEntryRepository) SumsBefore(ctx context.Context, before time.Time) (map[string]domain.AccountSums, error) {
	if m.SumsBeforeFunc != nil {
		return m.SumsBeforeFunc(ctx, before)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sums := make(map[string]domain.AccountSums)
	for _, entry := range m.entries {
		if entry.Date.Before(before) {
			accumulate(sums, entry)
		}
	}
	return sums, nil
}

func (m *MockEntryRepository) SumsInRange(ctx context.Context, from, to *time.Time) (map[string]domain.AccountSums, error) {
	if m.SumsInRangeFunc != nil {
		return m.SumsInRangeFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sums := make(map[string]domain.AccountSums)
	for _, entry := range m.entries {
		if from != nil && entry.Date.Before(*from) {
			continue
		}
		if to != nil && entry.Date.After(*to) {
			continue
		}
		accumulate(sums, entry)
	}
	return sums, nil
}

func accumulate(sums map[string]domain.AccountSums, entry *domain.Entry) {
	debit := sums[entry.DebitAccountID]
	debit.Debit = debit.Debit.Add(entry.Amount)
	sums[entry.DebitAccountID] = debit

	credit := sums[entry.CreditAccountID]
	credit.Credit = credit.Credit.Add(entry.Amount)
	sums[entry.CreditAccountID] = credit
}

func matches(entry *domain.Entry, filter domain.EntryFilter) bool {
	if !filter.FromDate.IsZero() && entry.Date.Before(filter.FromDate) {
		return false
	}
	if !filter.ToDate.IsZero() && entry.Date.After(filter.ToDate) {
		return false
	}
	if filter.AccountID != "" && entry.DebitAccountID != filter.AccountID && entry.CreditAccountID != filter.AccountID {
		return false
	}
	if filter.Document != "" && (entry.Document == nil || *entry.Document != filter.Document) {
		return false
	}
	return true
}

// MockLedgerRepository is a mock implementation of usecase.LedgerRepository.
type MockLedgerRepository struct {
	TotalsFunc func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
	CountsFunc func(ctx context.Context) (int64, int64, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) Totals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.TotalsFunc != nil {
		return m.TotalsFunc(ctx)
	}
	return decimal.Zero, decimal.Zero, nil
}

func (m *MockLedgerRepository) Counts(ctx context.Context) (int64, int64, error) {
	if m.CountsFunc != nil {
		return m.CountsFunc(ctx)
	}
	return 0, 0, nil
}

// MockTransaction is a no-op usecase.Transaction that records its outcome.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of usecase.TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Transactions []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%03d", m.counter)
}

// MockRetrier is a pass-through usecase.Retrier.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error

	Calls int
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	m.Calls++
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
