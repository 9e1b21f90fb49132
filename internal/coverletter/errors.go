package coverletter

import "errors"

// ErrTemplate indicates the cover letter template is missing or broken.
var ErrTemplate = errors.New("template error")

// ValidationError reports a missing or blank field for the selected mode.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
