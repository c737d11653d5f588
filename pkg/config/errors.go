package config

import "errors"

var (
	ErrParsingConfig     = errors.New("config: failed to parse environment variables into config")
	ErrInvalidConfigType = errors.New("config: configuration type must be a struct")
	ErrNilPointer        = errors.New("config: nil pointer provided to config loader")
	ErrLoadingEnvFile    = errors.New("config: failed to load env file")
)
