package sanitizer

// KeepDigits removes every character that is not an ASCII digit.
func KeepDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// StripSpacesAndDashes removes whitespace and '-' but keeps any other
// punctuation, so stray characters still fail a later digits-only check.
func StripSpacesAndDashes(s string) string {
	return spaceDashRegex.ReplaceAllString(s, "")
}

// KeepPhoneChars removes everything except digits and '+'.
func KeepPhoneChars(s string) string {
	return phoneCharsRegex.ReplaceAllString(s, "")
}

// FormatPhoneUS renders ten digits as (555) 123-4567. Anything else is
// returned unchanged.
func FormatPhoneUS(phone string) string {
	digits := KeepDigits(phone)
	if len(digits) != 10 {
		return phone
	}
	return "(" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:10]
}

// MaskLast replaces everything but the last visible characters with a fixed
// four-star prefix: MaskLast("1234567890", 4) == "****7890". Values no longer
// than visible are returned as the prefix followed by the whole value.
func MaskLast(s string, visible int) string {
	if visible < 0 {
		visible = 0
	}
	runes := []rune(s)
	if len(runes) > visible {
		runes = runes[len(runes)-visible:]
	}
	return "****" + string(runes)
}
