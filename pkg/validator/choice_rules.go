package validator

import (
	"fmt"
	"strings"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/sanitizer"
)

// AccountTypes is the list accepted by the custom-list validator.
var AccountTypes = []string{"checking", "savings", "credit", "mortgage", "loan"}

// InListCaseInsensitive trims and lowercases value before checking membership.
func InListCaseInsensitive(field, value string, allowedValues []string) Rule {
	return Rule{
		Check: func() bool {
			normalized := sanitizer.TrimToLower(value)
			for _, allowed := range allowedValues {
				if normalized == sanitizer.TrimToLower(allowed) {
					return true
				}
			}
			return false
		},
		Error: fieldError(field,
			fmt.Sprintf("must be one of: %s", strings.Join(allowedValues, ", ")),
			"validation.in_list",
			map[string]any{"allowed_values": allowedValues},
		),
	}
}
