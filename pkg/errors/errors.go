package custom_error

import (
	"fmt"
	"strings"
)

// CustomError marks the rejection types handlers map onto HTTP statuses.
// Constructors return it so call sites never touch the concrete struct.
type CustomError interface {
	Error() string
}

// ValidationError covers every rule violation that rejects a mutation: empty
// required fields, duplicate item codes, duplicate serials, non-positive
// quantities and outbound movements exceeding the derived stock. The mutation
// is never partially applied.
type ValidationError struct {
	message string
}

func NewValidationError(message string) CustomError {
	return &ValidationError{message: message}
}

func NewDuplicateSerialError(serials []string) CustomError {
	return &ValidationError{
		message: fmt.Sprintf("serial numbers already registered: %s", strings.Join(serials, ", ")),
	}
}

func (e *ValidationError) Error() string {
	return e.message
}

// RangeTooLargeError rejects serial range expansions above the allowed count.
type RangeTooLargeError struct {
	Count int
	Limit int
}

func (e *RangeTooLargeError) Error() string {
	return fmt.Sprintf("serial range expands to %d entries, limit is %d", e.Count, e.Limit)
}

// AuthorizationError reports a static-secret mismatch. The guarded operation
// is aborted and state is unchanged; retrying with the right secret recovers.
type AuthorizationError struct {
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("secret mismatch, operation %q denied", e.Action)
}

// SyncFailure wraps a failed fetch or push against the remote store. It is
// recorded as status only and never blocks local mutations.
type SyncFailure struct {
	Op  string
	Err error
}

func (e *SyncFailure) Error() string {
	return fmt.Sprintf("sync %s failed: %v", e.Op, e.Err)
}

func (e *SyncFailure) Unwrap() error {
	return e.Err
}
