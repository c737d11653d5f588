package validator

import "github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/sanitizer"

// medicareWeights apply to the first eight digits of an Australian Medicare
// card number.
var medicareWeights = [8]int{1, 3, 7, 9, 1, 3, 7, 9}

// MedicareCheckDigit returns the check digit for the first eight digits of
// base, or -1 when base is shorter than eight digits.
func MedicareCheckDigit(base string) int {
	if len(base) < 8 {
		return -1
	}
	sum := 0
	for i, w := range medicareWeights {
		c := base[i]
		if c < '0' || c > '9' {
			return -1
		}
		sum += int(c-'0') * w
	}
	return sum % 10
}

// MedicareNumber validates an Australian Medicare card number: ten digits
// after stripping non-digits, first digit 2-6, issue number (tenth digit) 1-9
// and the ninth digit equal to the weighted checksum of the first eight.
func MedicareNumber(field, value string) Rule {
	return Rule{
		Check: func() bool {
			digits := sanitizer.KeepDigits(value)
			if len(digits) != 10 {
				return false
			}
			if digits[0] < '2' || digits[0] > '6' {
				return false
			}
			if digits[9] < '1' || digits[9] > '9' {
				return false
			}
			return MedicareCheckDigit(digits) == int(digits[8]-'0')
		},
		Error: fieldError(field, "invalid medicare number", "validation.medicare", nil),
	}
}
