package types

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by core operations. A lookup that matches nothing is
// not an error: it is reported as a zero count.
var (
	ErrConnection      = errors.New("connection error")
	ErrIntegrity       = errors.New("integrity error")
	ErrInvalidArgument = errors.New("invalid argument")
)

// StoreError wraps a driver error with the kind it was classified as.
// errors.Is matches both the kind and the wrapped driver error.
type StoreError struct {
	Kind  error
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func NewStoreError(kind error, op, table string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Table: table, Err: err}
}
