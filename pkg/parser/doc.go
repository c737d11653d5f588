// Package parser implements the output-function algorithms. Each parser reads
// the web-service response carried in the Input Context (wsResponseCode,
// wsResponseBody, wsResponseHeaders) and returns a flat field map.
//
// Conventions shared by every parser:
//
//   - Only status "200" is a success.
//   - Success branches tolerate missing nested values and substitute fixed
//     placeholders for anything missing.
//   - Failure branches emit every declared field at its default plus the
//     FailExitReason sentinel.
//   - All values are strings. Money uses two decimals, counts are integers.
package parser
