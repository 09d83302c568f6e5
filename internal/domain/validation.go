package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxDescriptionLength = 500
	MaxDocumentLength    = 255

	DateLayout = "2006-01-02"
)

// ValidateAccountName validates an account name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if len(name) > MaxAccountNameLength {
		return &ValidationError{Field: "name", Reason: "must not exceed 255 characters"}
	}

	return nil
}

// ValidateDescription validates an entry description.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	if len(description) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Reason: "must not exceed 500 characters"}
	}

	return nil
}

// ValidateAmount validates an entry amount: strictly positive, at most two
// fractional digits (currency minor-unit precision).
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}

	if !amount.Equal(amount.Round(2)) {
		return &ValidationError{Field: "amount", Reason: "must have at most two fractional digits"}
	}

	return nil
}

// ValidateDate validates an accounting date. The zero time means the field
// was absent or failed to parse upstream.
func ValidateDate(date time.Time) error {
	if date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be a date in YYYY-MM-DD format"}
	}

	return nil
}

// ParseDate parses an accounting date in YYYY-MM-DD format.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: "must be a date in YYYY-MM-DD format"}
	}

	return d, nil
}

// ValidateDocument validates the optional external document reference.
func ValidateDocument(document *string) error {
	if document == nil {
		return nil
	}

	if len(*document) > MaxDocumentLength {
		return &ValidationError{Field: "document", Reason: "must not exceed 255 characters"}
	}

	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
