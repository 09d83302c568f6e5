package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/bookkeeper/internal/domain"
	"github.com/example/bookkeeper/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	InitialBalance *decimal.Decimal `json:"initialBalance,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	input := usecase.CreateAccountInput{
		Name: r.Name,
		Type: r.Type,
	}
	if r.InitialBalance != nil {
		input.InitialBalance = *r.InitialBalance
	}
	return input
}

// UpdateAccountRequest represents a partial account update. Absent fields
// keep their stored values.
type UpdateAccountRequest struct {
	Name           *string          `json:"name,omitempty"`
	Type           *string          `json:"type,omitempty"`
	InitialBalance *decimal.Decimal `json:"initialBalance,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Name:           r.Name,
		Type:           r.Type,
		InitialBalance: r.InitialBalance,
	}
}

// CreateEntryRequest represents a request to record a journal entry.
type CreateEntryRequest struct {
	Date            string          `json:"date"`
	Description     string          `json:"description"`
	DebitAccountID  string          `json:"debitAccountId"`
	CreditAccountID string          `json:"creditAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Document        *string         `json:"document,omitempty"`
}

// ToUseCaseInput converts to use case input, parsing the entry date.
func (r *CreateEntryRequest) ToUseCaseInput() (usecase.CreateEntryInput, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	return usecase.CreateEntryInput{
		Date:            date,
		Description:     r.Description,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		Amount:          r.Amount,
		Document:        r.Document,
	}, nil
}

// UpdateEntryRequest represents a partial entry update. Absent fields keep
// their stored values.
type UpdateEntryRequest struct {
	Date            *string          `json:"date,omitempty"`
	Description     *string          `json:"description,omitempty"`
	DebitAccountID  *string          `json:"debitAccountId,omitempty"`
	CreditAccountID *string          `json:"creditAccountId,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Document        *string          `json:"document,omitempty"`
}

// ToUseCaseInput converts to use case input, parsing the date when supplied.
func (r *UpdateEntryRequest) ToUseCaseInput() (usecase.UpdateEntryInput, error) {
	input := usecase.UpdateEntryInput{
		Description:     r.Description,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		Amount:          r.Amount,
		Document:        r.Document,
	}

	if r.Date != nil {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return usecase.UpdateEntryInput{}, err
		}
		input.Date = &date
	}

	return input, nil
}

// ParseDateQuery parses a date query parameter, falling back to the default
// when the parameter is absent.
func ParseDateQuery(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return domain.ParseDate(value)
}
