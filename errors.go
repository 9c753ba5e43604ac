package juro

import (
	"fmt"

	"github.com/pkg/errors"
)

// Contract errors: misuses of the promise API itself, raised as panics at
// the point of misuse so they surface synchronously to the caller that
// triggered them.
var (
	// ErrAlreadySettled is the sentinel wrapped by panics from Resolve or
	// Reject called on a promise that is no longer Pending.
	ErrAlreadySettled = errors.New("juro: promise is already settled")

	// ErrUnhandledRejection is the sentinel wrapped by panics from Reject
	// called on a promise with no continuation installed. Promises built
	// already-rejected via Rejected are exempt from this check.
	ErrUnhandledRejection = errors.New("juro: rejected promise has no attached handler")

	// ErrNilCause is the sentinel wrapped by panics from Reject called with
	// a nil cause.
	ErrNilCause = errors.New("juro: reject requires a non-nil cause")
)

// ContractError reports a misuse of the promise API: a second settlement of
// an already-settled promise, a rejection with no handler attached, or a
// rejection with a nil cause. It
// carries a stack trace captured at the point of violation.
type ContractError struct {
	cause error
}

func (e *ContractError) Error() string {
	return e.cause.Error()
}

// Unwrap lets errors.Is/errors.As match ContractError against the sentinel
// it wraps (ErrAlreadySettled, ErrUnhandledRejection, ErrNilCause).
func (e *ContractError) Unwrap() error {
	return e.cause
}

func newContractError(sentinel error) *ContractError {
	return &ContractError{cause: errors.WithStack(sentinel)}
}

// Cause wraps a rejection value that does not already satisfy error. Go's
// panic/recover is this package's analogue of the source library's
// throw/catch: a handler that panics with an arbitrary value has that value
// captured here, so the original value is always recoverable via Value.
type Cause struct {
	value any
}

// Value returns the original value a handler panicked with.
func (c *Cause) Value() any {
	return c.value
}

func (c *Cause) Error() string {
	if err, ok := c.value.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("juro: %v", c.value)
}

// panicToError turns a recovered panic value into the error carrier that
// will become a promise's rejection cause. Values that already satisfy error
// are stored as-is; everything else is wrapped in a Cause.
func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &Cause{value: r}
}
