package query

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTable is returned when a composed statement has no table bound.
	ErrNoTable = errors.New("query: no table specified")

	// ErrNoColumns is recorded when insert or update data is empty.
	ErrNoColumns = errors.New("query: no columns specified")

	// ErrInvalidIdentifier is matched by every *ValidationError.
	ErrInvalidIdentifier = errors.New("query: invalid identifier")

	// ErrMalformedCondition is returned by ParseConditions.
	ErrMalformedCondition = errors.New("query: malformed condition")

	// ErrPlaceholderMismatch means the rendered statement and its parameter
	// list disagree. Nothing is sent to the database.
	ErrPlaceholderMismatch = errors.New("query: placeholder count does not match parameter count")
)

// ValidationError describes an identifier rejected while building.
type ValidationError struct {
	Identifier string
	Context    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("query: invalid %s identifier %q", e.Context, e.Identifier)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// QueryError wraps a backend failure with the statement that caused it.
// Unwrap yields the driver's own error value.
type QueryError struct {
	Op   string
	SQL  string
	Args []any
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.SQL, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
