package sanitizer

import "strings"

func Trim(s string) string {
	return strings.TrimSpace(s)
}

func ToLower(s string) string {
	return strings.ToLower(s)
}

// TrimToLower is the normalization list lookups use before comparing.
var TrimToLower = Compose(Trim, ToLower)

// CollapseWhitespace replaces every run of whitespace with a single space and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// StripAngleBrackets removes '<' and '>' so caller text cannot smuggle markup
// into SSML prompts.
func StripAngleBrackets(s string) string {
	return angleRegex.ReplaceAllString(s, "")
}

// SanitizeInput trims, strips angle brackets and collapses whitespace.
var SanitizeInput = Compose(
	Trim,
	StripAngleBrackets,
	CollapseWhitespace,
)
