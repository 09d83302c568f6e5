package domain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers branch on these with errors.Is; the typed
// errors below carry the structured detail.
var (
	ErrValidation     = errors.New("validation failed")
	ErrInvalidType    = errors.New("invalid account type")
	ErrDuplicateName  = errors.New("account name already exists")
	ErrNotFound       = errors.New("not found")
	ErrUnknownAccount = errors.New("account does not exist")
	ErrSameAccount    = errors.New("debit and credit accounts must be different")
	ErrReferenced     = errors.New("account is referenced by journal entries")
)

// ValidationError reports malformed or out-of-range input, detected before
// any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InvalidTypeError reports an account type outside the five-value enumeration.
type InvalidTypeError struct {
	Type string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid account type %q: must be one of asset, liability, equity, income, expense", e.Type)
}

func (e *InvalidTypeError) Unwrap() error { return ErrInvalidType }

// DuplicateNameError reports an account name collision.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("account name %q already exists", e.Name)
}

func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// NotFoundError reports a missing account or entry.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// UnknownAccountError reports a journal entry referencing an account that
// does not exist. Side is "debit" or "credit".
type UnknownAccountError struct {
	Side      string
	AccountID string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("%s account %s does not exist", e.Side, e.AccountID)
}

func (e *UnknownAccountError) Unwrap() error { return ErrUnknownAccount }

// SameAccountError reports an entry whose debit and credit sides resolve to
// the same account.
type SameAccountError struct {
	AccountID string
}

func (e *SameAccountError) Error() string {
	return fmt.Sprintf("debit and credit accounts must be different, both are %s", e.AccountID)
}

func (e *SameAccountError) Unwrap() error { return ErrSameAccount }

// ReferencedError reports a delete blocked because journal entries still
// reference the account.
type ReferencedError struct {
	AccountID  string
	EntryCount int64
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("account %s is referenced by %d journal entries", e.AccountID, e.EntryCount)
}

func (e *ReferencedError) Unwrap() error { return ErrReferenced }

// StoreError wraps a failure from the persistence layer. It is surfaced
// as-is and never retried inside the core.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
