// Package ledgererror defines the error types shared by the ledger, the settings
// store, the exporter and the CLI.
package ledgererror

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnreadable is reported when a persisted value exists but cannot be decoded
	// or the backend cannot be read at all.
	ErrStorageUnreadable = errors.New("storage unreadable")

	// ErrNothingToExport is returned when an export is requested for an empty transaction set.
	ErrNothingToExport = errors.New("nothing to export")

	// ErrDuplicateCategory is returned when a category already exists (case-insensitively).
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrPhotoTooLarge is returned when a receipt image exceeds the configured size limit.
	ErrPhotoTooLarge = errors.New("photo too large")

	// ErrNotFound is returned by lookups on a missing transaction id.
	ErrNotFound = errors.New("not found")
)

// ValidationError represents a rejected request. No state is changed when it is returned.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError represents a failure reading or writing a persisted key.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s of key '%s' failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Unreadable builds the StorageError reported when a stored value cannot be decoded.
func Unreadable(key string, cause error) *StorageError {
	return &StorageError{
		Key: key,
		Op:  "read",
		Err: fmt.Errorf("%w: %v", ErrStorageUnreadable, cause),
	}
}

// ExportError represents a failure producing or delivering an export artifact.
type ExportError struct {
	Kind string
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s export to '%s' failed: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s export failed: %v", e.Kind, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
