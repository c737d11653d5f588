package harness

import (
	"log/slog"
	"time"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// DefaultCacheSize bounds the handle cache.
const DefaultCacheSize = 256

// Option configures a Harness.
type Option func(*Harness)

func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.log = l
		}
	}
}

// WithClock sets the fallback clock used when the Input Context carries no
// Timestamp.
func WithClock(clock func() time.Time) Option {
	return func(h *Harness) {
		if clock != nil {
			h.env.Clock = clock
		}
	}
}

// WithSigner provides the signJwt capability.
func WithSigner(sign unit.SignFunc) Option {
	return func(h *Harness) {
		h.env.SignJWT = sign
	}
}

// WithXMLParser provides the parseXML capability.
func WithXMLParser(parse unit.XMLFunc) Option {
	return func(h *Harness) {
		h.env.ParseXML = parse
	}
}

// WithCacheSize sets how many loaded handles are kept. Non-positive sizes are
// ignored.
func WithCacheSize(n int) Option {
	return func(h *Harness) {
		if n > 0 {
			h.cacheSize = n
		}
	}
}

// WithAllowedPackages replaces the standard library allow-list. Packages
// unknown to the interpreter are ignored at run time.
func WithAllowedPackages(pkgs ...string) Option {
	return func(h *Harness) {
		h.allowed = append([]string(nil), pkgs...)
	}
}

// WithCostLimit bounds the evaluation cost of CEL units. Zero disables the
// limit.
func WithCostLimit(limit uint64) Option {
	return func(h *Harness) {
		h.costLimit = limit
	}
}
