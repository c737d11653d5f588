package jwt

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Option keys understood by Signer.Sign. They follow the jsonwebtoken
// package the platform's signJwt delegates to.
const (
	OptExpiresIn = "expiresIn"
	OptNotBefore = "notBefore"
	OptAlgorithm = "algorithm"
	OptIssuer    = "issuer"
	OptSubject   = "subject"
	OptAudience  = "audience"
	OptJWTID     = "jwtid"
	OptNoIat     = "noTimestamp"
)

var durationRegex = regexp.MustCompile(`^(-?\d*\.?\d+)\s*([a-z]*)$`)

var durationUnits = map[string]time.Duration{
	"ms": time.Millisecond, "msec": time.Millisecond, "msecs": time.Millisecond,
	"millisecond": time.Millisecond, "milliseconds": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second,
	"second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute,
	"minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour,
	"hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"w": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
	"y": 8766 * time.Hour, "yr": 8766 * time.Hour, "yrs": 8766 * time.Hour,
	"year": 8766 * time.Hour, "years": 8766 * time.Hour,
}

// ParseSpan reads a jsonwebtoken time span. Numbers are seconds; strings are
// "<n><unit>" such as "1h", "30m", "7d" or "2 days". A string without a unit
// is milliseconds.
func ParseSpan(v any) (time.Duration, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int:
		return time.Duration(t) * time.Second, nil
	case int64:
		return time.Duration(t) * time.Second, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidExpiresIn, t)
		}
		return time.Duration(t * float64(time.Second)), nil
	case string:
		m := durationRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(t)))
		if m == nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidExpiresIn, t)
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidExpiresIn, t)
		}
		unit := time.Millisecond
		if m[2] != "" {
			u, ok := durationUnits[m[2]]
			if !ok {
				return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidExpiresIn, m[2])
			}
			unit = u
		}
		return time.Duration(n * float64(unit)), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrInvalidExpiresIn, v)
}

// Signer implements the signJwt host capability. The secret is supplied per
// call, so a single Signer serves every unit.
type Signer struct {
	now func() time.Time
}

func NewSigner(opts ...Option) *Signer {
	o := newOptions(opts)
	return &Signer{now: o.clock}
}

// Sign copies payload, stamps iat (unless noTimestamp) and the optional
// registered claims from opts, and signs the result with secret. A numeric
// iat already in payload is the base instant for exp and nbf instead of the
// signer clock. Only HS256 is supported.
func (s *Signer) Sign(payload map[string]any, secret string, opts map[string]any) (string, error) {
	if payload == nil {
		return "", ErrMissingClaims
	}

	if alg, ok := opts[OptAlgorithm]; ok && alg != nil {
		if name, _ := alg.(string); !strings.EqualFold(name, HeaderAlgorithm) {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, alg)
		}
	}

	svc, err := NewFromString(secret, WithClock(s.now))
	if err != nil {
		return "", err
	}

	now := s.now()
	if iat, ok := issuedAt(payload["iat"]); ok {
		now = time.Unix(iat, 0)
	}
	claims := maps.Clone(payload)

	if noIat, _ := opts[OptNoIat].(bool); noIat {
		delete(claims, "iat")
	} else {
		claims["iat"] = now.Unix()
	}

	if raw, ok := opts[OptExpiresIn]; ok {
		span, err := ParseSpan(raw)
		if err != nil {
			return "", err
		}
		claims["exp"] = now.Add(span).Unix()
	}
	if raw, ok := opts[OptNotBefore]; ok {
		span, err := ParseSpan(raw)
		if err != nil {
			return "", err
		}
		claims["nbf"] = now.Add(span).Unix()
	}

	for opt, claim := range map[string]string{
		OptIssuer:   "iss",
		OptSubject:  "sub",
		OptAudience: "aud",
		OptJWTID:    "jti",
	} {
		if v, ok := opts[opt]; ok && v != nil {
			claims[claim] = v
		}
	}

	return svc.Generate(claims)
}

func issuedAt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int64(t), true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	}
	return 0, false
}
