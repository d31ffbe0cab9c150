package failure

import (
	"errors"
	"fmt"
)

// Kind classifies why a run was aborted. None of them is recoverable.
type Kind int

const (
	Unknown Kind = iota
	Connectivity
	Query
	FileWrite
)

func (k Kind) String() string {
	switch k {
	case Connectivity:
		return "connectivity error"
	case Query:
		return "query error"
	case FileWrite:
		return "file write error"
	default:
		return "error"
	}
}

// ExitCode maps a failure kind to the process exit status.
func (k Kind) ExitCode() int {
	switch k {
	case Connectivity:
		return 2
	case Query:
		return 3
	case FileWrite:
		return 4
	default:
		return 1
	}
}

// Error wraps the underlying driver / OS error with the failing operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewConnectivity(op string, err error) error {
	return &Error{Kind: Connectivity, Op: op, Err: err}
}

func NewQuery(op string, err error) error {
	return &Error{Kind: Query, Op: op, Err: err}
}

func NewFileWrite(op string, err error) error {
	return &Error{Kind: FileWrite, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in the chain, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}
