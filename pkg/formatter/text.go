package formatter

import "github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/sanitizer"

// MaskVisible is how many trailing characters Mask keeps.
const MaskVisible = 4

// DefaultMaxRetries bounds ShouldRetry.
const DefaultMaxRetries = 3

// Mask hides all but the last four characters behind "****".
func Mask(value string) string {
	return sanitizer.MaskLast(value, MaskVisible)
}

// Plural returns "" for exactly one and "s" otherwise.
func Plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// FormatPhone renders ten-digit numbers as (555) 123-4567 and returns other
// input unchanged.
func FormatPhone(phone string) string {
	return sanitizer.FormatPhoneUS(phone)
}

// ShouldRetry reports whether the dialog error counter is still below max.
func ShouldRetry(errors, max int) bool {
	return errors < max
}
