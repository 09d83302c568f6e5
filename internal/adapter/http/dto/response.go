package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/usecase"
)

// Response is the envelope shared by every successful payload.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Type:           string(a.Type),
		InitialBalance: a.InitialBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// EntryResponse represents a journal entry in API responses. The date is
// rendered as a calendar day, not a timestamp.
type EntryResponse struct {
	ID                string          `json:"id"`
	Date              string          `json:"date"`
	Description       string          `json:"description"`
	DebitAccountID    string          `json:"debitAccountId"`
	CreditAccountID   string          `json:"creditAccountId"`
	DebitAccountName  string          `json:"debitAccountName,omitempty"`
	CreditAccountName string          `json:"creditAccountName,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Document          *string         `json:"document,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:                e.ID,
		Date:              e.Date.Format(domain.DateLayout),
		Description:       e.Description,
		DebitAccountID:    e.DebitAccountID,
		CreditAccountID:   e.CreditAccountID,
		DebitAccountName:  e.DebitAccountName,
		CreditAccountName: e.CreditAccountName,
		Amount:            e.Amount,
		Document:          e.Document,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// PaginationResponse carries paging metadata alongside a listing.
type PaginationResponse struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// ListEntriesResponse represents a page of journal entries.
type ListEntriesResponse struct {
	Success    bool               `json:"success"`
	Data       []*EntryResponse   `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// BalanceResponse represents one account's derived balance.
type BalanceResponse struct {
	AccountID      string          `json:"accountId"`
	AccountName    string          `json:"accountName"`
	AccountType    string          `json:"accountType"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	DebitBefore    decimal.Decimal `json:"debitBefore"`
	CreditBefore   decimal.Decimal `json:"creditBefore"`
	DebitSum       decimal.Decimal `json:"debitSum"`
	CreditSum      decimal.Decimal `json:"creditSum"`
	Balance        decimal.Decimal `json:"balance"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b domain.Balance) BalanceResponse {
	return BalanceResponse{
		AccountID:      b.AccountID,
		AccountName:    b.AccountName,
		AccountType:    string(b.AccountType),
		InitialBalance: b.InitialBalance,
		DebitBefore:    b.DebitBefore,
		CreditBefore:   b.CreditBefore,
		DebitSum:       b.DebitSum,
		CreditSum:      b.CreditSum,
		Balance:        b.Balance,
	}
}

// BalancesResponse represents derived balances over a reporting window.
type BalancesResponse struct {
	Success   bool              `json:"success"`
	Data      []BalanceResponse `json:"data"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
}

// BalancesFromDomain converts domain balances to a response.
func BalancesFromDomain(balances []domain.Balance, start, end time.Time) BalancesResponse {
	data := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		data[i] = BalanceFromDomain(b)
	}
	return BalancesResponse{
		Success:   true,
		Data:      data,
		StartDate: start.Format(domain.DateLayout),
		EndDate:   end.Format(domain.DateLayout),
	}
}

// SweepResponse represents the outcome of a journal sweep.
type SweepResponse struct {
	EntriesProcessed int64     `json:"entriesProcessed"`
	EntriesTotal     int64     `json:"entriesTotal"`
	AccountsTotal    int64     `json:"accountsTotal"`
	CheckedAt        time.Time `json:"checkedAt"`
}

// SweepFromReport converts a sweep report to a response.
func SweepFromReport(r *usecase.SweepReport) SweepResponse {
	return SweepResponse{
		EntriesProcessed: r.EntriesProcessed,
		EntriesTotal:     r.EntriesTotal,
		AccountsTotal:    r.AccountsTotal,
		CheckedAt:        r.CheckedAt,
	}
}

// AdminHealthResponse reports registry and journal totals.
type AdminHealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Accounts int64  `json:"accounts"`
	Entries  int64  `json:"entries"`
}
