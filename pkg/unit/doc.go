// Package unit defines the data model shared by every IVR unit: the Input
// Context (Params), the three result shapes (Result), the host capabilities
// a unit may use (Env), and the fixed function shape native units compile to
// (Func).
//
// A unit is one independent rule. It is a Validator (boolean result), a
// Formatter (string result) or a Parser (flat string map, optionally carrying
// the FailExitReason sentinel). Units never mutate their Params and produce
// exactly one Result per invocation or fail outright.
//
// # Input Context
//
// Params is an untyped map supplied by the hosting platform. The accessors
// coerce values the way the platform's scripts expect:
//
//	p := unit.Params{"valueToValidate": "4532 0151 1283 0366", "CurrentHour": 14}
//	p.String(unit.KeyValueToValidate) // "4532 0151 1283 0366"
//	p.Int(unit.KeyCurrentHour)        // 14, true
//	p.Lookup("wsResponseBody.balanceDetails.balance")
//
// # Time
//
// Units never read the wall clock. Env.Now resolves "now" from the Timestamp
// field of the Input Context and only falls back to the injected Clock when
// the field is absent.
package unit
