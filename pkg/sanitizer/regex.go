package sanitizer

import "regexp"

var (
	nonDigitRegex   = regexp.MustCompile(`\D`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	angleRegex      = regexp.MustCompile(`[<>]`)
	spaceDashRegex  = regexp.MustCompile(`[\s-]`)
	phoneCharsRegex = regexp.MustCompile(`[^\d+]`)
)
