package render

import (
	"errors"
	"fmt"
)

// Sentinel errors for render request validation failures.
var (
	ErrNoInvoice   = errors.New("render: single request carries no invoice")
	ErrNoInvoices  = errors.New("render: bulk request carries no invoices")
	ErrUnknownMode = errors.New("render: unknown request mode")
)

// Error represents a failure during a specific render operation. It wraps
// an underlying error and includes the operation name for context.
type Error struct {
	Op  string // operation name, e.g. "Document", "Output"
	Err error  // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render.%s: unknown error", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError creates a new Error wrapping the given error with operation context.
func newError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}
