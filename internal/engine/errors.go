package engine

import (
	"errors"
	"fmt"
)

// ErrValidation and ErrNotFound are the two boundary error kinds per the
// spec's error model: a malformed command or lifecycle violation, and an
// unknown order id, respectively. Both are raised synchronously before
// any mutation that would leave the book inconsistent.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// ValidationError signals a malformed command (bad tick size, bad
// quantity, bad price) or a lifecycle violation (cancelling a terminal
// order).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrValidation, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that an order id is unknown to the registry.
type NotFoundError struct {
	OrderID uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: order %d", ErrNotFound, e.OrderID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
