package resumes

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing resume and one owned by another
	// user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidInput marks rejected caller input that is not tied to a
	// single document field.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldValidationError identifies the offending field path and the reason a
// document (or one of its sections) failed validation. It is surfaced inline
// to the editor and never reaches the persistence layer.
type FieldValidationError struct {
	Field  string
	Reason string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AsFieldValidationError unwraps err into a FieldValidationError if possible.
func AsFieldValidationError(err error) (*FieldValidationError, bool) {
	var fieldErr *FieldValidationError
	if errors.As(err, &fieldErr) {
		return fieldErr, true
	}
	return nil, false
}
