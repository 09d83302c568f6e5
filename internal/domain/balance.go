package domain

import (
	"github.com/shopspring/decimal"
)

// Balance is the derived balance record of one account over a date window.
// The before/period sums are reported for auditability.
type Balance struct {
	AccountID      string
	AccountName    string
	AccountType    AccountType
	InitialBalance decimal.Decimal
	DebitBefore    decimal.Decimal
	CreditBefore   decimal.Decimal
	DebitSum       decimal.Decimal
	CreditSum      decimal.Decimal
	Balance        decimal.Decimal
}

// AdjustedInitialBalance rolls an account's all-time initial balance forward
// to the start of a reporting period, given the debit and credit turnover
// strictly before the period.
//
// Income and expense accounts track turnover only: the nominal initial
// balance is discarded and the adjustment is just the prior-period turnover
// on the account's normal side.
func AdjustedInitialBalance(t AccountType, initial, debitBefore, creditBefore decimal.Decimal) decimal.Decimal {
	switch t {
	case AccountTypeAsset:
		return initial.Add(debitBefore).Sub(creditBefore)
	case AccountTypeLiability, AccountTypeEquity:
		return initial.Add(creditBefore).Sub(debitBefore)
	case AccountTypeIncome:
		return creditBefore
	case AccountTypeExpense:
		return debitBefore
	}

	return decimal.Zero
}

// ClosingBalance applies the period turnover to an adjusted opening balance
// under the account type's sign convention: increases to assets and expenses
// are debits, increases to liabilities, equity and income are credits.
func ClosingBalance(t AccountType, opening, debitSum, creditSum decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return opening.Add(debitSum).Sub(creditSum)
	}

	if t.Valid() {
		return opening.Add(creditSum).Sub(debitSum)
	}

	return decimal.Zero
}

// ComputeBalance derives the full balance record of one account for a
// period, given its turnover before and within the period.
func ComputeBalance(account *Account, before, period AccountSums) Balance {
	opening := AdjustedInitialBalance(account.Type, account.InitialBalance, before.Debit, before.Credit)

	return Balance{
		AccountID:      account.ID,
		AccountName:    account.Name,
		AccountType:    account.Type,
		InitialBalance: account.InitialBalance,
		DebitBefore:    before.Debit,
		CreditBefore:   before.Credit,
		DebitSum:       period.Debit,
		CreditSum:      period.Credit,
		Balance:        ClosingBalance(account.Type, opening, period.Debit, period.Credit),
	}
}
