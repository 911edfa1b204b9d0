package board

import (
	"errors"
	"fmt"
)

// ErrMalformed marks stored bytes that exist but fail to decode. It never
// escapes this package: single-record reads collapse it to not-found and
// scans skip the record, so callers only ever see absence.
var ErrMalformed = errors.New("stored record is malformed")

// ValidationError reports a rejected field on a create operation. The HTTP
// layer translates it into a client error.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps an engine failure on a read or write so the boundary
// can distinguish it from validation problems.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
