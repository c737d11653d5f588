package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/dialog"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/httpserver"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/i18n"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/logger"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/units"
)

// DefaultMaxBodyBytes caps request bodies unless WithMaxBodyBytes is given.
const DefaultMaxBodyBytes = 1 << 20

// API serves the catalog and the harness.
type API struct {
	h         *harness.Harness
	catalog   *units.Catalog
	prompts   *i18n.Catalog
	log       *slog.Logger
	allowEval bool
	maxBody   int64
	timeout   time.Duration

	handles map[string]*harness.Handle
}

type Option func(*API)

func WithCatalog(c *units.Catalog) Option {
	return func(a *API) {
		if c != nil {
			a.catalog = c
		}
	}
}

// WithPrompts sets the catalog used for locale negotiation.
func WithPrompts(c *i18n.Catalog) Option {
	return func(a *API) {
		if c != nil {
			a.prompts = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.log = l
		}
	}
}

// WithEval mounts POST /eval. Eval runs caller-supplied source and is off by
// default.
func WithEval(allow bool) Option {
	return func(a *API) { a.allowEval = allow }
}

func WithMaxBodyBytes(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBody = n
		}
	}
}

// WithTimeout bounds each request; the deadline reaches the harness through
// the request context.
func WithTimeout(d time.Duration) Option {
	return func(a *API) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// New builds the API around h. Catalog units are wrapped into native handles
// once.
func New(h *harness.Harness, opts ...Option) *API {
	a := &API{
		h:       h,
		catalog: units.Default(),
		prompts: i18n.Default(),
		log:     logger.Discard(),
		maxBody: DefaultMaxBodyBytes,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(logger.Component("api"))

	a.handles = make(map[string]*harness.Handle, a.catalog.Len())
	for _, u := range a.catalog.List() {
		a.handles[u.Name] = h.Native(u.Name, u.Kind, u.Func)
	}
	return a
}

// Router returns the HTTP handler of the API.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		dialog.Middleware,
		a.requestLogger,
		i18n.Middleware(a.prompts),
		middleware.Timeout(a.timeout),
		a.limitBody,
	)

	r.Get("/health", httpserver.HealthHandler(a.log, httpserver.Check{Name: "catalog", Fn: a.catalogReady}))
	r.Get("/units", a.listUnits)
	r.Post("/units/*", a.runUnit)
	r.Post("/eval", a.eval)
	return r
}

func (a *API) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, a.maxBody)
		next.ServeHTTP(w, r)
	})
}

func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.log.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			logger.Duration(time.Since(start)),
		)
	})
}
