package units

import "errors"

var (
	ErrUnknownUnit   = errors.New("units: unknown unit")
	ErrDuplicateUnit = errors.New("units: duplicate unit name")
	ErrMissingSecret = errors.New("units: token secret not configured")
)
