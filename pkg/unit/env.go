package unit

import (
	"log/slog"
	"time"
)

// SignFunc signs payload as a JWT. opts mirrors the platform's signJwt
// options, e.g. {"expiresIn": "1h", "algorithm": "HS256"}.
type SignFunc func(payload map[string]any, secret string, opts map[string]any) (string, error)

// XMLFunc parses an XML document into nested maps keyed by qualified element
// names.
type XMLFunc func(doc string) (map[string]any, error)

// Env carries the host capabilities available to a unit. Zero fields are
// unavailable capabilities.
type Env struct {
	Clock    func() time.Time
	SignJWT  SignFunc
	ParseXML XMLFunc
	Logger   *slog.Logger
}

// Now resolves the current instant for p: the Timestamp field wins, the
// injected Clock is the fallback, and the zero time is returned when neither
// is available.
func (e Env) Now(p Params) time.Time {
	if t, ok := p.Time(KeyTimestamp); ok {
		return t
	}
	if e.Clock != nil {
		return e.Clock().UTC()
	}
	return time.Time{}
}

// Log never returns nil.
func (e Env) Log() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Func is the compiled shape of a native unit.
type Func func(env Env, p Params) (Result, error)
