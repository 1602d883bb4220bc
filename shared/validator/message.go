package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const messageSeparator = "; "

var messages = map[string]string{
	"required": "{field} is required",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be less than or equal to {param}",
	"instant":  "{field} must be an ISO 8601 timestamp with a UTC offset",
}

// message renders one line per failed field, in declaration order.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	lines := make([]string, 0, len(valErrors))
	for _, valErr := range valErrors {
		tmpl, ok := messages[valErr.Tag()]
		if !ok {
			lines = append(lines, valErr.Field()+" is invalid")

			continue
		}

		lines = append(lines, strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(tmpl))
	}

	return strings.Join(lines, messageSeparator)
}
