package unit

import (
	"fmt"
	"strings"
)

// Kind classifies a unit by the shape of its result.
type Kind string

const (
	// KindAuto is only valid at load time; the kind is inferred from the result.
	KindAuto      Kind = "auto"
	KindValidator Kind = "validator"
	KindFormatter Kind = "formatter"
	KindParser    Kind = "parser"
)

// ParseKind accepts the canonical names plus the platform's own vocabulary
// (validation, user, output).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KindAuto, nil
	case "validator", "validation":
		return KindValidator, nil
	case "formatter", "user", "user-function":
		return KindFormatter, nil
	case "parser", "output", "output-function":
		return KindParser, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) String() string { return string(k) }

func (k Kind) MarshalText() ([]byte, error) { return []byte(k), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
