package resource

import (
	"errors"
	"fmt"
)

// ErrNotFound is the remote "not found" signal returned by client
// implementations. The core turns it into a NotFoundError wherever it knows
// which path was being looked up.
var ErrNotFound = errors.New("resource: not found")

// ErrMalformedPath matches every MalformedPathError.
var ErrMalformedPath = errors.New("resource: malformed path")

// MalformedPathError reports a path that is not of the form "<org>/<name>".
type MalformedPathError struct {
	Path string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q: expected <org>/<name>", e.Path)
}

func (e *MalformedPathError) Is(target error) bool {
	return target == ErrMalformedPath
}

// NotFoundError reports a resource that could not be located by path.
type NotFoundError struct {
	Kind Kind
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Path)
}

// Is lets callers test any NotFoundError against ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotCreatedError reports a create call that returned no record.
type NotCreatedError struct {
	Kind  Kind
	Path  string
	Attrs any
}

func (e *NotCreatedError) Error() string {
	return fmt.Sprintf("%s %s not created", e.Kind, e.Path)
}

// NotUpdatedError reports an update call that returned no record.
type NotUpdatedError struct {
	Kind Kind
	Path string
}

func (e *NotUpdatedError) Error() string {
	return fmt.Sprintf("%s %s not updated", e.Kind, e.Path)
}

// ValidationError carries a rejection message from the remote service
// (or from local attribute validation) verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError is any other failure talking to the remote service. It is
// fatal to the invocation.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: api request failed (%d): %v", e.Op, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: api request failed with status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// notFoundAs rewrites a remote not-found signal into a NotFoundError for the
// given kind and path. Other errors pass through untouched.
func notFoundAs(err error, kind Kind, path string) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return err
	}
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Kind: kind, Path: path}
	}
	return err
}
