// Package errors provides error handling for forge-native.
//
// This package re-exports github.com/cockroachdb/errors so that every
// package wraps, inspects and annotates errors the same way, and defines the
// sentinel errors that make up the schematic failure taxonomy.
//
// Usage:
//
//	// Wrap a sentinel with context
//	return errors.Wrapf(errors.ErrNotFound, "class %q in %s", name, path)
//
//	// Add a hint for the user
//	return errors.WithHint(err, "run 'forge-native generate add-ns' first")
//
//	// Check errors
//	if errors.IsNotFound(err) {
//	    // branch
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Sentinel errors. Wrap these with Wrapf to add context while keeping them
// detectable with Is.
var (
	// ErrNotFound indicates a required file, class, decorator, property or
	// array could not be located.
	ErrNotFound = New("not found")

	// ErrAmbiguous indicates a pattern meant to match exactly one node
	// matched several.
	ErrAmbiguous = New("ambiguous match")

	// ErrUnsupportedConstruct indicates source holds a shape the editor
	// will not extend. Editors return no edits instead of surfacing it;
	// it is used for logging and for callers that demand an edit.
	ErrUnsupportedConstruct = New("unsupported construct")

	// ErrUnsupportedKind indicates a query asked for a name on a node kind
	// that has no name extractor.
	ErrUnsupportedKind = New("unsupported node kind")

	// ErrStaleUpdate indicates an update recorder was committed against a
	// file whose content changed after the recorder was created.
	ErrStaleUpdate = New("stale update")

	// ErrConflict indicates overlapping edits in one update.
	ErrConflict = New("conflicting edits")

	// ErrAlreadyExists indicates a file or entity that must be created is
	// already present.
	ErrAlreadyExists = New("already exists")

	// ErrInvalidOption indicates schematic options failed validation.
	ErrInvalidOption = New("invalid option")
)

// IsNotFound checks if an error is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsAmbiguous checks if an error is or wraps ErrAmbiguous.
func IsAmbiguous(err error) bool {
	return err != nil && Is(err, ErrAmbiguous)
}

// IsAlreadyExists checks if an error is or wraps ErrAlreadyExists.
func IsAlreadyExists(err error) bool {
	return err != nil && Is(err, ErrAlreadyExists)
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}

// AlreadyExistsf creates an already-exists error with a formatted message.
func AlreadyExistsf(format string, args ...interface{}) error {
	return Wrapf(ErrAlreadyExists, format, args...)
}

// InvalidOptionf creates an invalid-option error with a formatted message.
func InvalidOptionf(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidOption, format, args...)
}
