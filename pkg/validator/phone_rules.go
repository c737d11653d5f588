package validator

import (
	"regexp"
	"strings"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/sanitizer"
)

var (
	auLandlineRegex   = regexp.MustCompile(`^0[2378]\d{8}$`)
	auLandlineIntlRe  = regexp.MustCompile(`^[2378]\d{8}$`)
	auMobileRegex     = regexp.MustCompile(`^04\d{8}$`)
	auMobileIntlRegex = regexp.MustCompile(`^4\d{8}$`)
)

const auCountryPrefix = "+61"

// splitAU strips everything but digits and '+' and reports whether the number
// is in +61 international form, returning the national significant digits
// for international numbers and the cleaned value otherwise.
func splitAU(value string) (string, bool) {
	cleaned := sanitizer.KeepPhoneChars(value)
	if rest, ok := strings.CutPrefix(cleaned, auCountryPrefix); ok {
		return rest, true
	}
	return cleaned, false
}

// AULandline accepts 0[2378]XXXXXXXX or +61 followed by nine digits starting
// with 2, 3, 7 or 8.
func AULandline(field, value string) Rule {
	return Rule{
		Check: func() bool {
			digits, intl := splitAU(value)
			if intl {
				return auLandlineIntlRe.MatchString(digits)
			}
			return auLandlineRegex.MatchString(digits)
		},
		Error: fieldError(field, "invalid australian landline number", "validation.au_landline", nil),
	}
}

// AUMobile accepts 04XXXXXXXX or +61 4XXXXXXXX.
func AUMobile(field, value string) Rule {
	return Rule{
		Check: func() bool {
			digits, intl := splitAU(value)
			if intl {
				return auMobileIntlRegex.MatchString(digits)
			}
			return auMobileRegex.MatchString(digits)
		},
		Error: fieldError(field, "invalid australian mobile number", "validation.au_mobile", nil),
	}
}

// USPhone requires exactly ten digits once every non-digit is removed.
func USPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return len(sanitizer.KeepDigits(value)) == 10
		},
		Error: fieldError(field, "phone number must have 10 digits", "validation.phone", nil),
	}
}
