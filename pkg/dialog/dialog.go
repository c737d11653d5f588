package dialog

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/logger"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// Header carries the dialog id between the platform and the API.
const Header = "X-Dialog-ID"

const maxIDLength = 128

// Platform ids are UUIDs or opaque tokens; anything else is replaced.
var validID = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

type contextKey struct{}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the dialog id of ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// NewID returns a fresh dialog id.
func NewID() string {
	return uuid.NewString()
}

// Valid reports whether id may be used as a dialog id.
func Valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}

// Middleware puts the request's dialog id on the context and echoes it in the
// response. Missing or malformed ids are replaced with a new one.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !Valid(id) {
			id = NewID()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// LoggerExtractor adds the dialog id to every record logged with a context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.DialogID(id), true
		}
		return slog.Attr{}, false
	}
}

// Params returns p with DialogID set from ctx when the caller did not supply
// one. p itself is not modified.
func Params(ctx context.Context, p unit.Params) unit.Params {
	id := FromContext(ctx)
	if id == "" || p.Has(unit.KeyDialogID) {
		return p
	}
	out := make(unit.Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[unit.KeyDialogID] = id
	return out
}
