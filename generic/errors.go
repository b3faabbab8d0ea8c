/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Input errors - the report cannot be attributed to a worker
  2. Directory errors - unknown worker, invalid profile
  3. Collaborator errors - directory or bonus table unavailable (retryable)

USAGE:
  Callers branch with errors.Is / errors.As:

    var unknown *generic.UnknownWorkerError
    if errors.As(err, &unknown) {
        fmt.Println("known workers:", unknown.Known)
    }
    if generic.IsRetryable(err) {
        // try again later
    }

SEE ALSO:
  - attendance/errors.go: ParseError wraps ErrMissingName
  - payroll/engine.go: maps directory misses to UnknownWorkerError
*/
package generic

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingName is returned when the report has no recognizable name field.
	ErrMissingName = errors.New("employee name not found in report")

	// ErrUnknownWorker is returned when the parsed name has no profile.
	ErrUnknownWorker = errors.New("unknown worker")

	// ErrWorkerNotFound is returned by a WorkerDirectory lookup miss.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrLookupFailed is returned when a collaborator could not be read.
	// The engine never retries; callers may.
	ErrLookupFailed = errors.New("collaborator lookup failed")

	// ErrInvalidWorker is returned when a profile violates its invariants.
	ErrInvalidWorker = errors.New("invalid worker profile")

	// ErrInvalidBonus is returned when bonus amounts are negative.
	ErrInvalidBonus = errors.New("invalid bonus amounts")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownWorkerError names the worker that was not found and the names that
// do exist, so the caller can fix the report or the directory.
type UnknownWorkerError struct {
	Name  string
	Known []string
}

func (e *UnknownWorkerError) Error() string {
	return fmt.Sprintf("worker %q not found; known workers: %s", e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownWorkerError) Unwrap() error {
	return ErrUnknownWorker
}

// LookupError wraps a failure of the worker directory or bonus table.
type LookupError struct {
	Op  string // "lookup_worker", "list_workers", "lookup_bonus_amounts"
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() []error {
	return []error{ErrLookupFailed, e.Err}
}

// ValidationError reports the offending field of a profile or bonus table.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	if strings.HasPrefix(e.Field, "bonus") {
		return ErrInvalidBonus
	}
	return ErrInvalidWorker
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLookupFailed)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrUnknownWorker) ||
		errors.Is(err, ErrInvalidWorker) ||
		errors.Is(err, ErrInvalidBonus)
}

// IsNotFound returns true if the error indicates a missing worker.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkerNotFound) ||
		errors.Is(err, ErrUnknownWorker)
}
