package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/cache"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/logger"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// DefaultCostLimit bounds CEL evaluation unless WithCostLimit overrides it.
const DefaultCostLimit = 100_000

type engine interface {
	exec(ctx context.Context, rt *runtime, p unit.Params) (any, error)
}

// runtime is what an engine sees of the harness during one run.
type runtime struct {
	env unit.Env
	log *slog.Logger
}

// Handle is a loaded unit. Handles are immutable and may be run concurrently.
type Handle struct {
	Name   string
	Kind   unit.Kind
	Lang   Lang
	Digest string

	engine engine
}

// Harness loads unit source and runs it in isolation. It is safe for
// concurrent use.
type Harness struct {
	log       *slog.Logger
	env       unit.Env
	allowed   []string
	cacheSize int
	costLimit uint64

	cel     *cel.Env
	handles *cache.LRU[string, *Handle]
}

// New builds a harness. The default clock is time.Now; signer and XML
// parser are unavailable unless configured.
func New(opts ...Option) (*Harness, error) {
	h := &Harness{
		log:       logger.Discard(),
		env:       unit.Env{Clock: time.Now},
		allowed:   DefaultAllowedPackages,
		cacheSize: DefaultCacheSize,
		costLimit: DefaultCostLimit,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("harness"))

	celEnv, err := newCELEnv()
	if err != nil {
		return nil, fmt.Errorf("harness: expression environment: %w", err)
	}
	h.cel = celEnv

	handles, err := cache.New[string, *Handle](h.cacheSize)
	if err != nil {
		return nil, err
	}
	h.handles = handles
	return h, nil
}

// LoadUnit loads Go source in file or body form. The result kind is inferred
// at run time.
func (h *Harness) LoadUnit(source string) (*Handle, error) {
	return h.Load(Source{Lang: LangGo, Text: source})
}

// Load checks and compiles src. Loading identical source again returns the
// cached handle.
func (h *Harness) Load(src Source) (*Handle, error) {
	if src.Lang == "" {
		src.Lang = LangGo
	}
	kind, err := unit.ParseKind(string(src.Kind))
	if err != nil {
		return nil, &LoadError{Unit: src.Name, Err: err}
	}
	src.Kind = kind
	key := digest(src)
	if src.Name == "" {
		src.Name = string(src.Lang) + ":" + key[:12]
	}

	return h.handles.GetOrLoad(key, func() (*Handle, error) {
		start := time.Now()
		eng, err := h.compile(src)
		if err != nil {
			h.log.Debug("unit rejected", logger.Unit(src.Name), logger.Lang(string(src.Lang)), logger.Error(err))
			return nil, &LoadError{Unit: src.Name, Err: err}
		}
		h.log.Debug("unit loaded",
			logger.Unit(src.Name),
			logger.Lang(string(src.Lang)),
			logger.Kind(string(src.Kind)),
			logger.Duration(time.Since(start)),
		)
		return &Handle{Name: src.Name, Kind: src.Kind, Lang: src.Lang, Digest: key, engine: eng}, nil
	})
}

func (h *Harness) compile(src Source) (engine, error) {
	switch src.Lang {
	case LangGo:
		eng, err := h.loadScript(src.Text, true)
		if err == nil {
			return eng, nil
		}
		if errors.Is(err, ErrCompile) && !isFileForm(src.Text) {
			// A trailing call without results cannot be returned; retry with
			// it kept as a statement.
			if alt, altErr := h.loadScript(src.Text, false); altErr == nil {
				return alt, nil
			}
		}
		return nil, err
	case LangCEL:
		if src.Text == "" {
			return nil, ErrEmptySource
		}
		return compileExpr(h.cel, src.Text, h.costLimit)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLang, src.Lang)
}

// loadScript prepares text and trial-compiles it against an empty context
// with capabilities stubbed.
func (h *Harness) loadScript(text string, valueTail bool) (*scriptEngine, error) {
	src, err := prepareScript(text, h.allowed, valueTail)
	if err != nil {
		return nil, err
	}
	imports, err := stdImports(src)
	if err != nil {
		return nil, err
	}
	eng := &scriptEngine{src: src, imports: imports}
	rt := &runtime{env: unit.Env{}, log: logger.Discard()}
	if _, _, err := eng.compile(rt, unit.Params{}, &capture{}); err != nil {
		return nil, err
	}
	return eng, nil
}

// Native wraps a compiled unit.Func. Native handles are not cached.
func (h *Harness) Native(name string, kind unit.Kind, fn unit.Func) *Handle {
	return &Handle{Name: name, Kind: kind, Lang: LangNative, engine: &nativeEngine{fn: fn}}
}

// Run executes h against a deep copy of params and returns its Result.
// Every failure is an *ExecutionError naming the unit.
func (h *Harness) Run(ctx context.Context, hd *Handle, params unit.Params) (unit.Result, error) {
	if hd == nil {
		return unit.Result{}, ErrNilHandle
	}

	log := h.log.With(logger.Unit(hd.Name))
	env := unit.Env{
		Clock:    h.env.Clock,
		ParseXML: h.env.ParseXML,
		Logger:   log,
	}
	env.SignJWT = pinIssuedAt(h.env.SignJWT, env.Now(params))
	rt := &runtime{env: env, log: log}

	start := time.Now()
	res, err := execute(ctx, hd, rt, params)
	if err != nil {
		log.DebugContext(ctx, "unit failed", logger.Error(err), logger.Duration(time.Since(start)))
		return unit.Result{}, &ExecutionError{Unit: hd.Name, Err: err}
	}

	log.DebugContext(ctx, "unit finished", logger.Kind(string(res.Kind)), logger.Duration(time.Since(start)))
	return res, nil
}

// pinIssuedAt stamps the run's instant as iat on payloads that carry none,
// so the same Input Context signs the same token whatever the wall clock.
func pinIssuedAt(sign unit.SignFunc, now time.Time) unit.SignFunc {
	if sign == nil || now.IsZero() {
		return sign
	}
	return func(payload map[string]any, secret string, opts map[string]any) (string, error) {
		if payload != nil {
			if _, ok := payload["iat"]; !ok {
				payload = maps.Clone(payload)
				payload["iat"] = now.Unix()
			}
		}
		return sign(payload, secret, opts)
	}
}

func execute(ctx context.Context, hd *Handle, rt *runtime, params unit.Params) (unit.Result, error) {
	if err := ctx.Err(); err != nil {
		return unit.Result{}, err
	}
	raw, err := hd.engine.exec(ctx, rt, params.Clone())
	if err != nil {
		return unit.Result{}, err
	}
	return unit.ResultFrom(hd.Kind, raw)
}

// Stats reports handle cache counters.
func (h *Harness) Stats() cache.Stats {
	return h.handles.Stats()
}

// IsLoadError reports whether err came from loading a unit.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsExecutionError reports whether err came from running a unit.
func IsExecutionError(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}
