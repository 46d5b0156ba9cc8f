package apperr

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrAuth is returned for a failed login. It never says which part was wrong.
var ErrAuth = errors.New("invalid credentials")

// ErrForbidden indicates an authenticated caller lacking the required role.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate indicates a unique identifier already taken.
var ErrDuplicate = errors.New("already exists")

// ErrConflict indicates a state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrTransaction indicates a storage failure inside a transaction.
var ErrTransaction = errors.New("transaction failed")

// ErrTimeout indicates an operation that ran out of time and may be retried.
var ErrTimeout = errors.New("operation timed out")

var kinds = [...]error{
	ErrInvalid, ErrAuth, ErrForbidden, ErrNotFound,
	ErrDuplicate, ErrConflict, ErrTransaction, ErrTimeout,
}

// Error attaches an operation name and a cause to one of the sentinel kinds.
type Error struct {
	Kind error
	Op   string
	Err  error
}

// E builds an *Error. The cause keeps a stack trace for logging.
func E(kind error, op string, err error) error {
	if err != nil {
		err = pkgerrors.WithStack(err)
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, pkgerrors.Cause(e.Err))
}

// Unwrap exposes the cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind, so errors.Is(err, ErrConflict) works through wrapping.
func (e *Error) Is(target error) bool { return target == e.Kind }

// KindOf returns the sentinel kind carried by err, or nil.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// FromContext converts deadline and cancellation errors into ErrTimeout.
// Other errors are returned unchanged.
func FromContext(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != nil {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return E(ErrTimeout, op, err)
	}
	return err
}

// Retryable reports whether the caller may repeat the operation unchanged.
func Retryable(err error) bool {
	return errors.Is(err, ErrTimeout)
}
