package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures that can surface from the installer,
// the uninstaller and the command bridge.
type ErrorKind int

const (
	// FormatError is an unrecognized compression format.
	FormatError ErrorKind = iota + 1
	// DecodeError is corrupt compressed or tar data.
	DecodeError
	// IOError is a filesystem read or write failure.
	IOError
	// MissingExecutable means a run was requested without a runnable primary executable.
	MissingExecutable
	// SpawnError means the subprocess could not be started.
	SpawnError
	// ProcessError means the subprocess started but exited unsuccessfully.
	ProcessError
	// Timeout means the subprocess was killed after exceeding its deadline.
	Timeout
)

func (k ErrorKind) String() string {
	switch k {
	case FormatError:
		return "format error"
	case DecodeError:
		return "decode error"
	case IOError:
		return "io error"
	case MissingExecutable:
		return "missing executable"
	case SpawnError:
		return "spawn error"
	case ProcessError:
		return "process error"
	case Timeout:
		return "timeout"
	}
	return "unknown error"
}

// Error is a classified failure. Op is a short human readable description of
// what was being attempted, and is what ends up in user facing messages.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewError returns a new classified error.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind of the first classified error in err's chain,
// or zero if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind returns true if err carries the given classification.
func IsKind(err error, kind ErrorKind) bool { return KindOf(err) == kind }
