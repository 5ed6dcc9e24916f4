package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries client-side validation failures. It blocks the
// request entirely: no HTTP call is made while one is pending.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// FieldMessage returns the message attached to a field, or "".
func (err ValidationError) FieldMessage(field string) string {
	for _, fld := range err.Fields {
		if fld.Field == field {
			return fld.Error
		}
	}
	return ""
}

func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}
