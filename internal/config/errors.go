package config

import "fmt"

// FieldError names the offending config field and why it was
// rejected, so the CLI can report a precise location instead of a
// bare "invalid config" message.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newFieldError(field, reason string) error {
	return FieldError{Field: field, Reason: reason}
}
