package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/example/bookkeeper/internal/adapter/http/dto"
	"github.com/example/bookkeeper/internal/domain"
)

// defaultStartDate is the reporting window start used when the caller does
// not supply one. Nothing in the journal predates it in practice, so the
// window degenerates to an as-of computation.
var defaultStartDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	BalanceAsOf(ctx context.Context, date time.Time) ([]domain.Balance, error)
	BalancePeriod(ctx context.Context, start, end time.Time) ([]domain.Balance, error)
}

// BalanceHandler handles balance report HTTP requests.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// Get derives the balance of every account over the requested window. With
// no startDate the report is an as-of statement at endDate; endDate
// defaults to today.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	end, err := dto.ParseDateQuery(q.Get("endDate"), today())
	if err != nil {
		writeDomainError(w, err, "invalid endDate")
		return
	}

	var (
		start    = defaultStartDate
		balances []domain.Balance
	)

	if v := q.Get("startDate"); v != "" {
		start, err = domain.ParseDate(v)
		if err != nil {
			writeDomainError(w, err, "invalid startDate")
			return
		}
		balances, err = h.balanceUC.BalancePeriod(r.Context(), start, end)
	} else {
		balances, err = h.balanceUC.BalanceAsOf(r.Context(), end)
	}
	if err != nil {
		writeDomainError(w, err, "failed to compute balances")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances, start, end))
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
