package harness

import (
	"errors"
	"fmt"
)

var (
	ErrForbiddenImport    = errors.New("harness: import is not in the allow-list")
	ErrForbiddenStatement = errors.New("harness: statement is not allowed in units")
	ErrMissingEntrypoint  = errors.New("harness: file form must declare func Run(params ocp.Params) any")
	ErrCompile            = errors.New("harness: unit does not compile")
	ErrUnknownLang        = errors.New("harness: unknown source language")
	ErrEmptySource        = errors.New("harness: empty source")
	ErrPanic              = errors.New("harness: unit panicked")
	ErrNilHandle          = errors.New("harness: nil handle")
)

// LoadError reports a unit that could not be prepared for execution.
type LoadError struct {
	Unit string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("harness: load %s: %v", e.Unit, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ExecutionError reports a unit that failed while running or produced an
// unusable result. It is never retried.
type ExecutionError struct {
	Unit string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("harness: run %s: %v", e.Unit, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
