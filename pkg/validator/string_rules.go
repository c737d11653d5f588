package validator

import "strings"

// Required rejects empty and whitespace-only input. Every IVR validator starts
// with it: empty input is never valid.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: fieldError(field, "field is required", "validation.required", nil),
	}
}
