package document

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned for operations on a closed session.
	ErrClosed = errors.New("session closed")

	// ErrPending is returned while the session waits on a dialog.
	ErrPending = errors.New("session waiting on a dialog")
)

// OperationError describes a failed file operation of a session.
type OperationError struct {
	Op   string // "open", "save", ...
	Path string
	Err  error
}

func (e *OperationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
