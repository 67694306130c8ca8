package domain

import (
	"errors"
	"strings"
)

// ErrNotFound marks lookups of pages, comments or users that do not exist.
var ErrNotFound = errors.New("not found")

// ValidationError is a recoverable, user-facing rejection. Field is empty for
// form-level errors such as gate denials.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// AsValidationErrors unwraps err into user-facing validation errors,
// reporting whether it is one.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var many ValidationErrors
	if errors.As(err, &many) {
		return many, true
	}
	var one *ValidationError
	if errors.As(err, &one) {
		return ValidationErrors{*one}, true
	}
	return nil, false
}
