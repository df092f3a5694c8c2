package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the command line tool.
const (
	ExitCodeOK          = 0
	ExitCodeInvalidArgs = 1
	ExitCodeIO          = 2
	ExitCodeInputShape  = 3
)

// InputShapeError reports a document whose top level cannot be normalized at all.
type InputShapeError struct {
	Reason string
}

// Error implements the error interface for InputShapeError.
func (e *InputShapeError) Error() string {
	return fmt.Sprintf("unexpected document shape: %s", e.Reason)
}

// NewInputShapeError builds an InputShapeError with a formatted reason.
func NewInputShapeError(format string, a ...interface{}) error {
	return &InputShapeError{Reason: fmt.Sprintf(format, a...)}
}

// ParseError reports an input file that is not valid JSON.
type ParseError struct {
	Path   string
	Offset int64
	Err    error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("failed to parse %q at offset %d: %v", e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("failed to parse %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a file that could not be read or written.
type IOError struct {
	Path string
	Op   string
	Err  error
}

// Error implements the error interface for IOError.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err with the operation and path that caused it.
func NewIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// CommandError represents an error that occurred during command execution, storing the exit code.
type CommandError struct {
	ExitCode    int
	CommonError string
	Args        interface{}
	err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

func (e *CommandError) Unwrap() error { return e.err }

// NewCommandError creates a new CommandError instance, encapsulating args and the error message.
func NewCommandError(args interface{}, err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Args:        args,
		err:         err,
	}
}

// ExitCodeFor maps an error to the exit code of the process.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitCodeOK
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}

	var shapeErr *InputShapeError
	if errors.As(err, &shapeErr) {
		return ExitCodeInputShape
	}

	var parseErr *ParseError
	var ioErr *IOError
	if errors.As(err, &parseErr) || errors.As(err, &ioErr) {
		return ExitCodeIO
	}

	return ExitCodeInvalidArgs
}
