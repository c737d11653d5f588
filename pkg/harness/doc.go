// Package harness loads unit source text and runs it in an isolated scope
// against a fresh Input Context.
//
// Three engines sit behind one Handle type:
//
//   - go: Go source interpreted by yaegi. A fresh interpreter is built for
//     every run, so nothing survives between runs.
//   - cel: a CEL expression over params, compiled once at load time.
//   - native: a compiled unit.Func, usually from package units.
//
// # Go units
//
// File form declares package main and a Run function:
//
//	package main
//
//	import (
//		"strings"
//
//		"ocp"
//	)
//
//	func Run(params ocp.Params) any {
//		return strings.ToUpper(params.String("extValue1"))
//	}
//
// Body form is plain statements. The harness wraps them into Run, imports
// the allow-listed packages the body mentions and turns a trailing
// expression into the return value:
//
//	digits := strings.Map(func(r rune) rune {
//		if unicode.IsDigit(r) {
//			return r
//		}
//		return -1
//	}, params.String("valueToValidate"))
//	len(digits) == 10
//
// Units may call ocp.Return(v) instead of returning; the last call wins over
// the return value. Package ocp also exports Now, SignJWT, ParseXML, Log and
// the Params type. Only the packages in DefaultAllowedPackages (or
// WithAllowedPackages) may be imported, go statements are rejected, and
// package time has no wall clock or timers: units read time through
// ocp.Now, which prefers the Input Context Timestamp.
//
// # Results
//
// A bool is a Validator result, a string a Formatter result, and a flat map a
// Parser result. See unit.ResultFrom for the coercion rules. Failures are
// *LoadError or *ExecutionError values that name the unit and wrap the cause.
package harness
