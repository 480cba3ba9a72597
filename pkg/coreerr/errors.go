// Package coreerr defines the error taxonomy shared by the core engine
// packages (atomicio, store, index, refs, workdir, status). The objects
// package returns plain errors, which the store wraps as Corrupt.
//
// Every core package returns errors wrapped in an *Error with one of the
// Kinds below, so callers can branch on failure class with errors.Is /
// errors.As instead of string matching.
package coreerr

import (
	"errors"
	"fmt"
)

// Kind categorizes a core engine failure.
type Kind string

const (
	// NotFound means the requested object, ref, or path does not exist.
	NotFound Kind = "not_found"
	// LockContention means a .lock file already exists for the target.
	LockContention Kind = "lock_contention"
	// Corrupt means on-disk data failed a structural or checksum check.
	Corrupt Kind = "corrupt"
	// UnsupportedFileType means a working-tree entry is not a regular file
	// or directory (symlink, device, socket, ...).
	UnsupportedFileType Kind = "unsupported_file_type"
	// IOError wraps an underlying filesystem failure that isn't better
	// described by one of the other kinds.
	IOError Kind = "io_error"
	// Invariant means an internal precondition was violated; seeing this
	// means a bug in the engine itself, not bad input.
	Invariant Kind = "invariant"
)

// Error is the typed error returned by core engine packages.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can write errors.Is(err, coreerr.NotFound)
// the same as they would with a sentinel.
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Is reports whether target (or an error it wraps) is an *Error of kind
// k, so callers can write coreerr.NotFound.Is(err). errors.Is(err,
// coreerr.NotFound) works through (*Error).Is above.
func (k Kind) Is(target error) bool {
	var e *Error
	if errors.As(target, &e) {
		return e.Kind == k
	}
	return false
}

func (k Kind) Error() string { return string(k) }

// New builds a new *Error.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Wrap annotates err with an operation and kind, propagating the kind of
// an already-wrapped *Error when present instead of guessing.
func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Kind: existing.Kind, Op: op, Path: path, Err: err}
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Of extracts the Kind carried by err, if any.
func Of(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Fmt is a convenience constructor mirroring fmt.Errorf for leaf errors
// that don't wrap an existing error.
func Fmt(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
