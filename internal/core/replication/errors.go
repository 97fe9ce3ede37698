package replication

import (
	"errors"
	"fmt"
)

// Sentinel errors, grounded on the teacher's protocol.Error/ErrorCode
// taxonomy (internal/core/protocol/errors.go), trimmed to the kinds
// spec.md §7 names.
var (
	// ErrInvalidLayout covers too many fields, forbidden visibility,
	// event-like fields, unsupported primitives, and doubly nested
	// composites. Fatal at build.
	ErrInvalidLayout = errors.New("replication: invalid record layout")

	// ErrMissingSerializer is returned when a composite field has no
	// registered Read/Write pair. Fatal at build.
	ErrMissingSerializer = errors.New("replication: missing composite serializer")

	// ErrDuplicateID is returned when the same record type is registered
	// twice during Init. Fatal at init.
	ErrDuplicateID = errors.New("replication: record type registered twice")

	// ErrNotInitialized is returned when a record type is not in the
	// Registry: by Compile, and by Init for a binder whose type Build did
	// not classify.
	ErrNotInitialized = errors.New("replication: registry not initialized")
)

// Code identifies the taxonomy bucket of a BuildError/InitError.
type Code int

const (
	CodeUnknown Code = iota
	CodeInvalidLayout
	CodeMissingSerializer
	CodeDuplicateID
)

// BuildError carries build-phase (C1-C5) failure context: which record
// type was being processed when classification or emission failed.
type BuildError struct {
	Code   Code
	Record string
	Cause  error
}

func (e *BuildError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("replication build: record %s: %s", e.Record, e.Cause)
	}
	return fmt.Sprintf("replication build: %s", e.Cause)
}

func (e *BuildError) Unwrap() error { return e.Cause }

func newBuildError(record string, cause error) *BuildError {
	code := CodeUnknown
	switch {
	case errors.Is(cause, ErrInvalidLayout):
		code = CodeInvalidLayout
	case errors.Is(cause, ErrMissingSerializer):
		code = CodeMissingSerializer
	}
	return &BuildError{Code: code, Record: record, Cause: cause}
}

// InitError carries init-phase (C6) failure context.
type InitError struct {
	Code   Code
	Record string
	Cause  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("replication init: record %s: %s", e.Record, e.Cause)
}

func (e *InitError) Unwrap() error { return e.Cause }
