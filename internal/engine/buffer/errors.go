package buffer

import (
	"errors"
	"fmt"
	"io/fs"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrNoPath           = errors.New("buffer has no file path")

	// ErrNotFound and ErrPermissionDenied classify a LoadError.
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// LoadError describes a failure to read a file into a buffer.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports the kind of the failure, so callers can test with
// errors.Is(err, ErrNotFound) or errors.Is(err, ErrPermissionDenied).
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return errors.Is(e.Err, fs.ErrNotExist)
	case ErrPermissionDenied:
		return errors.Is(e.Err, fs.ErrPermission)
	}
	return false
}

// SaveError describes a failure to write a buffer to disk.
type SaveError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *SaveError) Unwrap() error {
	return e.Err
}
