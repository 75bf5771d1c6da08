/*
errors.go - Centralized error types for the ledger engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Outer layers (HTTP handlers) map these to status codes with
  errors.Is/errors.As, never by string matching.

ERROR CATEGORIES:
  1. Validation errors - malformed input to Insert/Edit
  2. Not-found errors  - Edit/Remove referencing an unknown id
  3. Funds errors      - redemption exceeding the invested principal

SEE ALSO:
  - ledger.go: Returns these errors from the public operations
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTransaction is returned when Insert/Edit input violates
	// a basic rule (non-positive amount, empty description, bad enum).
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrNotFound is returned when Edit/Remove references a transaction
	// id that is not in the ledger. The operation is a no-op.
	ErrNotFound = errors.New("transaction not found")

	// ErrInsufficientFunds is returned when a redemption asks for more
	// than the current invested principal. Neither step is performed.
	ErrInsufficientFunds = errors.New("insufficient invested funds")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError describes which field of an Insert/Edit was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidTransaction }

// InsufficientFundsError reports how far a redemption overshot.
type InsufficientFundsError struct {
	Available Money
	Requested Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient invested funds: available %s, requested %s",
		e.Available, e.Requested)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// NotFoundError carries the missing transaction id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("transaction not found: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTransaction) ||
		errors.Is(err, ErrInsufficientFunds)
}

// IsNotFound returns true if the error indicates a missing transaction.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
