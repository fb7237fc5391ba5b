package grid

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoSearchableFields is returned when field resolution for a search
	// yields no field names.
	ErrNoSearchableFields = errors.New("no searchable fields found in table")
	// ErrMissingFieldNames is returned when a formula search is requested
	// without explicit field names.
	ErrMissingFieldNames = errors.New("field names are required for formula search")
)

// ValidationError reports a missing or malformed request parameter. It is
// raised before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.Message
	}
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Message)
}

// TableNotFoundError is returned when a table id or name is not present in
// the base schema.
type TableNotFoundError struct {
	BaseID string
	Table  string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found in base %s", e.Table, e.BaseID)
}

// SafetyError is returned when the safety configuration blocks an operation.
type SafetyError struct {
	Op     string
	Reason string
}

func (e *SafetyError) Error() string {
	return fmt.Sprintf("%s blocked: %s", e.Op, e.Reason)
}

// RemoteOperationError represents any failure talking to the remote API:
// network errors, auth failures, not-found and malformed ids alike.
type RemoteOperationError struct {
	Op         string
	StatusCode int    // zero when no response was received
	Type       string // remote error type, e.g. NOT_FOUND
	Message    string
	Path       string
	Err        error
}

func (e *RemoteOperationError) Error() string {
	op := e.Op
	if op == "" {
		op = "remote call"
	}
	switch {
	case e.StatusCode != 0 && e.Type != "":
		return fmt.Sprintf("%s: remote error (status %d, %s): %s", op, e.StatusCode, e.Type, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: remote error (status %d): %s", op, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s: %s", op, e.Message)
	}
}

func (e *RemoteOperationError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the remote answered 404.
func (e *RemoteOperationError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsNotFoundError checks if an error is a remote 404 Not Found error.
func IsNotFoundError(err error) bool {
	var remoteErr *RemoteOperationError
	if errors.As(err, &remoteErr) {
		return remoteErr.IsNotFound()
	}
	return false
}

// remoteErr tags err with the operation name, converting any non-remote
// error (transport failures, decode errors) into a RemoteOperationError.
func remoteErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var remote *RemoteOperationError
	if errors.As(err, &remote) {
		tagged := *remote
		tagged.Op = op
		return &tagged
	}
	return &RemoteOperationError{Op: op, Message: err.Error(), Err: err}
}
