// Package formatter implements the user-function algorithms: pure helpers
// that turn Input Context values into text for prompts and URLs.
//
// No helper reads the wall clock. Callers pass the current instant, which
// units resolve from the Input Context Timestamp first and the injected clock
// second.
package formatter
