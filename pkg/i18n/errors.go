package i18n

import "errors"

var (
	ErrNilAdapter           = errors.New("i18n: adapter is nil")
	ErrNoSegments           = errors.New("i18n: no prompt segments loaded")
	ErrEmptyLocale          = errors.New("i18n: empty locale code")
	ErrInvalidLocale        = errors.New("i18n: invalid locale code")
	ErrParsingCancelled     = errors.New("i18n: parsing cancelled")
	ErrFailedToParseYAML    = errors.New("i18n: failed to parse YAML content")
	ErrInvalidSegment       = errors.New("i18n: segment must define first, middle and last")
	ErrLoadingCancelled     = errors.New("i18n: loading segments cancelled")
	ErrFailedToReadDir      = errors.New("i18n: failed to read segment directory")
	ErrFailedToReadFile     = errors.New("i18n: failed to read segment file")
	ErrNoSegmentFiles       = errors.New("i18n: no segment files found")
	ErrDefaultLocaleMissing = errors.New("i18n: default locale has no segments")
)
