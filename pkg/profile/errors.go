package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("profile validation failed")

// ValidationError reports a malformed, out-of-range or legacy constraint
// record. Field and Code identify the offending record; Message describes the
// expected shape or range.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "invalid constraint"
	}
	switch {
	case e.Field == "" && e.Code == "":
		return "profile validation: " + msg
	case e.Code == "":
		return fmt.Sprintf("profile validation: field %q: %s", e.Field, msg)
	default:
		return fmt.Sprintf("profile validation: field %q (%s): %s", e.Field, e.Code, msg)
	}
}

// Is lets callers match any validation failure with errors.Is(err, ErrValidation).
func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for the record.
func Invalid(rec Record, format string, args ...any) error {
	return ValidationError{
		Field:   rec.Field,
		Code:    rec.Is,
		Message: fmt.Sprintf(format, args...),
	}
}
