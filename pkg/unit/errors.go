package unit

import "errors"

var (
	ErrInvalidResult = errors.New("unit: result is not a boolean, string or flat field map")
	ErrResultKind    = errors.New("unit: result does not match the declared kind")
	ErrNoResult      = errors.New("unit: unit produced no result")
	ErrUnknownKind   = errors.New("unit: unknown kind")
	ErrNoCapability  = errors.New("unit: capability is not configured")
)
