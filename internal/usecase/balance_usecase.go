package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/infrastructure/metrics"
)

// BalanceUseCase derives per-account balances from the journal. It performs
// no writes and holds no state: every call recomputes from the full entry
// set, so a balance is always derivable fresh from the journal.
type BalanceUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	metrics     *metrics.Metrics
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(accountRepo AccountRepository, entryRepo EntryRepository, metrics *metrics.Metrics) *BalanceUseCase {
	return &BalanceUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		metrics:     metrics,
	}
}

// BalanceAsOf computes each account's balance at a single point in time,
// covering all history up to and including the date. The stated initial
// balance is the base; income and expense accounts report turnover only.
func (uc *BalanceUseCase) BalanceAsOf(ctx context.Context, date time.Time) ([]domain.Balance, error) {
	defer uc.observe(time.Now())

	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	period, err := uc.entryRepo.SumsInRange(ctx, nil, &date)
	if err != nil {
		return nil, err
	}

	return assemble(accounts, nil, period), nil
}

// BalancePeriod computes each account's balance over [start, end] inclusive.
// The all-time initial balance is rolled forward past the turnover strictly
// before start, per the account type's convention.
func (uc *BalanceUseCase) BalancePeriod(ctx context.Context, start, end time.Time) ([]domain.Balance, error) {
	defer uc.observe(time.Now())

	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	before, err := uc.entryRepo.SumsBefore(ctx, start)
	if err != nil {
		return nil, err
	}

	period, err := uc.entryRepo.SumsInRange(ctx, &start, &end)
	if err != nil {
		return nil, err
	}

	return assemble(accounts, before, period), nil
}

func (uc *BalanceUseCase) observe(start time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.BalanceComputations.Inc()
	uc.metrics.BalanceDuration.Observe(time.Since(start).Seconds())
}

// assemble computes one balance record per account, ordered by type then
// name. Accounts with no matching entries appear with zero sums.
func assemble(accounts []*domain.Account, before, period map[string]domain.AccountSums) []domain.Balance {
	typeOrder := make(map[domain.AccountType]int, len(domain.AccountTypes))
	for i, t := range domain.AccountTypes {
		typeOrder[t] = i
	}

	balances := make([]domain.Balance, 0, len(accounts))
	for _, account := range accounts {
		balances = append(balances, domain.ComputeBalance(account, before[account.ID], period[account.ID]))
	}

	sort.Slice(balances, func(i, j int) bool {
		if balances[i].AccountType != balances[j].AccountType {
			return typeOrder[balances[i].AccountType] < typeOrder[balances[j].AccountType]
		}
		return balances[i].AccountName < balances[j].AccountName
	})

	return balances
}
