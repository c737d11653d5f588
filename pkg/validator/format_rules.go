package validator

import (
	"regexp"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/sanitizer"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	zip5Regex  = regexp.MustCompile(`^\d{5}$`)
	zip9Regex  = regexp.MustCompile(`^\d{9}$`)
)

func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailRegex.MatchString(value)
		},
		Error: fieldError(field, "must be a valid email address", "validation.email", nil),
	}
}

// ZipCode accepts five or nine digits after removing spaces and dashes.
func ZipCode(field, value string) Rule {
	return Rule{
		Check: func() bool {
			cleaned := sanitizer.StripSpacesAndDashes(value)
			return zip5Regex.MatchString(cleaned) || zip9Regex.MatchString(cleaned)
		},
		Error: fieldError(field, "must be a 5 or 9 digit zip code", "validation.zip_code", nil),
	}
}
