// Package sweeperrors contains generic errors returned by the sweep driver and the result extractor.
// The command line entrypoint looks for the error types defined in this file and picks the process
// exit code accordingly.
//
// If multiple errors occur in some function (e.g., if several sweep points fail), that
// function should return an error of type multierror.Error from package
// github.com/hashicorp/go-multierror that encapsulates those individual errors.
package sweeperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitInvalidArgument = 2
)

// ErrNotFound is a generic error to be returned whenever some resource isn't found.
// Type and Message are optional and are omitted from the error message if not provided.
type ErrNotFound struct {
	Type    string // Resource type, e.g., "metric" or "file"
	Value   string // Resource name, e.g., "99th"
	Message string // An optional message to include in the error message
}

func (err *ErrNotFound) Error() (s string) {
	if err.Type != "" {
		s = fmt.Sprintf("resource %q of type %q does not exist", err.Value, err.Type)
	} else {
		s = fmt.Sprintf("resource %q does not exist", err.Value)
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	} else {
		return s
	}
}

// ErrInvalidArgument is a generic error to be returned on invalid argument.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "cores"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message to include with the error message, e.g., explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", fmt.Sprint(err.Value), err.Name)
	} else {
		return fmt.Sprintf("value %q is invalid for field %q; %s", fmt.Sprint(err.Value), err.Name, err.Message)
	}
}

// ErrMalformedReport is returned when simulator output can't be mapped onto result blocks,
// e.g., a metrics row that is too short or that precedes any rate marker.
type ErrMalformedReport struct {
	Line    int    // 1-indexed row number within the report
	Message string // What was wrong with the row
}

func (err *ErrMalformedReport) Error() string {
	return fmt.Sprintf("malformed simulator report at row %d: %s", err.Line, err.Message)
}

// ExitCodeFromError maps error types to process exit codes.
// Uses errors.As to look through the chain of errors, as opposed to just considering the topmost error in the chain.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitOK
	}
	{
		var e *ErrInvalidArgument
		if errors.As(err, &e) {
			return ExitInvalidArgument
		}
	}
	return ExitFailure
}
