package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrCodeValidation marks a request whose body or query failed field validation
const ErrCodeValidation = "VALIDATION_ERROR"

// FormatBindingError flattens gin binding failures into one stable message.
// Field-level validator errors list every offending field; anything else
// (malformed JSON, wrong types) passes through as-is.
func FormatBindingError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed '%s'", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
