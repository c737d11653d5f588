// Package sanitizer holds the small string transforms IVR units apply to caller
// input before validating or speaking it back.
//
// The helpers fall into two groups:
//
//   - Strings: trimming, case folding, whitespace collapsing and stripping of
//     markup characters from free-form caller input.
//
//   - Format: digit extraction, masking of sensitive values and US phone
//     formatting for prompts.
//
// Every helper is a pure func(string) string (or close to it), so they can be
// chained with Apply and Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.StripAngleBrackets,
//	    sanitizer.CollapseWhitespace,
//	)
//
//	clean("  <b>hello</b>   world ") // "bhello/b world"
package sanitizer
