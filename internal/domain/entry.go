package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry represents a single double-entry journal transaction: one account is
// debited and another is credited by the same amount. Date is the accounting
// date (calendar day, no time component), distinct from CreatedAt.
type Entry struct {
	ID                string
	Date              time.Time
	Description       string
	DebitAccountID    string
	CreditAccountID   string
	Amount            decimal.Decimal
	Document          *string
	DebitAccountName  string
	CreditAccountName string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EntryFilter narrows a journal listing. Date bounds are inclusive; a zero
// bound means unbounded. AccountID matches entries where the account appears
// on either side. Document is an exact match.
type EntryFilter struct {
	FromDate  time.Time
	ToDate    time.Time
	AccountID string
	Document  string
	Limit     int
	Offset    int
}

// AccountSums holds the debit and credit turnover of one account over some
// date window.
type AccountSums struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}
