package collaborator

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks transport-level failures: the collaborator could not
	// be reached or the exchange broke off.
	ErrNetwork = errors.New("network failure")
	// ErrApplication marks a reachable collaborator that answered with a
	// non-success indication.
	ErrApplication = errors.New("application failure")
)

// Error describes a failed collaborator call.
type Error struct {
	Op         string
	Kind       error
	StatusCode int
	// Message is safe to show to the user.
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func networkError(op string, err error) *Error {
	return &Error{Op: op, Kind: ErrNetwork, Message: "Failed to fetch", Err: err}
}

func applicationError(op string, status int, message string, err error) *Error {
	return &Error{Op: op, Kind: ErrApplication, StatusCode: status, Message: message, Err: err}
}

// Kind classifies err for logs and API responses.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrApplication):
		return "application"
	default:
		return "internal"
	}
}

// Message returns the text a view shows for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
