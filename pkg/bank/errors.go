package bank

import "errors"

var (
	ErrInvalidDocument = errors.New("bank: document does not match the bank schema")
	ErrVersion         = errors.New("bank: unsupported bank version")
	ErrDuplicateUnit   = errors.New("bank: duplicate unit name")
	ErrUnknownFormat   = errors.New("bank: unknown report format")
)
