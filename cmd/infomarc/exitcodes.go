package main

import (
	"errors"
	"fmt"
)

// Exit codes
const (
	ExitSuccess       = 0 // Success
	ExitError         = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError   = 2 // Configuration error (unreadable or invalid config)
	ExitDataError     = 3 // Data error (unreadable or malformed export)
	ExitRegistryError = 4 // Lab or author registry could not be loaded
)

// exitError attaches an exit code to a command failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// withCode wraps err so main exits with code.
func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// withCodef formats an error carrying an exit code.
func withCodef(code int, format string, args ...interface{}) error {
	return withCode(code, fmt.Errorf(format, args...))
}

// exitCode returns the exit code carried by err, ExitError otherwise.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitError
}
