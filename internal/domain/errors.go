package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ValidationError reports client input that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a *ValidationError for field with a formatted message.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Required builds the standard "x is required" validation error.
func Required(field string) error {
	return Invalid(field, "%s is required", field)
}

// ParseDate parses a YYYY-MM-DD value for the named field.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, Required(field)
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, Invalid(field, "%s must be a date in YYYY-MM-DD format, got %q", field, value)
	}
	return t, nil
}
