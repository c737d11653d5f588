package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/sanitizer"
)

var (
	digitsRegex        = regexp.MustCompile(`^\d+$`)
	plainAmountRegex   = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	leadingZeroRegex   = regexp.MustCompile(`^0\d`)
	accountPrefixRegex = regexp.MustCompile(`^[123]`)
)

const (
	CardMinDigits = 15
	CardMaxDigits = 20

	AccountMinDigits = 8
	AccountMaxDigits = 12

	AmountMin = 10.0
	AmountMax = 10000.0
)

// LuhnValid reports whether a string of ASCII digits passes the Luhn checksum.
// Non-digit input is never valid.
func LuhnValid(digits string) bool {
	if digits == "" || !digitsRegex.MatchString(digits) {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// CreditCardNumber strips every non-digit, requires 15 to 20 digits and a
// valid Luhn checksum.
func CreditCardNumber(field, value string) Rule {
	return Rule{
		Check: func() bool {
			digits := sanitizer.KeepDigits(value)
			if len(digits) < CardMinDigits || len(digits) > CardMaxDigits {
				return false
			}
			return LuhnValid(digits)
		},
		Error: fieldError(field, "invalid credit card number", "validation.credit_card", nil),
	}
}

// AccountNumber strips spaces and dashes; the rest must be 8 to 12 digits
// starting with 1, 2 or 3.
func AccountNumber(field, value string) Rule {
	return Rule{
		Check: func() bool {
			cleaned := sanitizer.StripSpacesAndDashes(value)
			if !digitsRegex.MatchString(cleaned) {
				return false
			}
			if len(cleaned) < AccountMinDigits || len(cleaned) > AccountMaxDigits {
				return false
			}
			return accountPrefixRegex.MatchString(cleaned)
		},
		Error: fieldError(field, "invalid account number", "validation.account_number", map[string]any{
			"min": AccountMinDigits,
			"max": AccountMaxDigits,
		}),
	}
}

// AmountFormat accepts plain decimal notation with at most two decimals.
// Leading zeros, signs, separators and scientific notation are rejected.
func AmountFormat(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return plainAmountRegex.MatchString(value) && !leadingZeroRegex.MatchString(value)
		},
		Error: fieldError(field, "amount must be a plain number with up to 2 decimals", "validation.amount_format", nil),
	}
}

// AmountRange checks min <= value <= max.
func AmountRange[T Numeric](field string, value T, min T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min && value <= max
		},
		Error: fieldError(field,
			fmt.Sprintf("amount must be between %v and %v", min, max),
			"validation.amount_range",
			map[string]any{"min": min, "max": max},
		),
	}
}

// Amount combines AmountFormat with the [10, 10000] range check on the raw
// input string.
func Amount(field, value string) []Rule {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		parsed = -1
	}
	return []Rule{
		AmountFormat(field, value),
		AmountRange(field, parsed, AmountMin, AmountMax),
	}
}
