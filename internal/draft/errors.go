package draft

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	errNoID    = errors.New("no task id in response")
	errNoSpace = errors.New("no space id in list response")
)

// ValidationError means an input failed a local or cached-reference
// check. It never follows a side effect on the remote service.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func newValidation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StateError means an operation was invoked in the wrong lifecycle
// state, e.g. update before create or a second create.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return "state: " + e.Reason
}

func newState(format string, args ...any) error {
	return &StateError{Reason: fmt.Sprintf(format, args...)}
}

// RemoteError means the remote service call itself failed, either at
// the transport or with a non-success response.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func wrapRemote(op string, err error) error {
	return &RemoteError{Op: op, Err: err}
}
