package bank

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/logger"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/units"
)

// Runner executes banks through a harness.
type Runner struct {
	h       *harness.Harness
	catalog *units.Catalog
	log     *slog.Logger
	clock   func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithCatalog sets the catalog native units are resolved from.
func WithCatalog(c *units.Catalog) RunnerOption {
	return func(r *Runner) {
		if c != nil {
			r.catalog = c
		}
	}
}

// WithReportClock sets the clock used to stamp reports.
func WithReportClock(clock func() time.Time) RunnerOption {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRunner returns a runner backed by h. Native units resolve against
// units.Default unless WithCatalog is given.
func NewRunner(h *harness.Harness, opts ...RunnerOption) *Runner {
	r := &Runner{
		h:       h,
		catalog: units.Default(),
		log:     logger.Discard(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("bank"))
	return r
}

// Run executes every case of every bank and returns a combined report.
// Case failures are recorded in the report; only a cancelled context stops
// the run early.
func (r *Runner) Run(ctx context.Context, banks ...*Bank) (*Report, error) {
	rep := &Report{GeneratedAt: r.clock().UTC()}
	start := time.Now()

	for _, b := range banks {
		for _, u := range b.Units {
			hd, loadErr := r.handle(b, u)
			for _, c := range u.Cases {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				cr := r.runCase(ctx, hd, loadErr, u, c)
				cr.Bank = b.Path
				rep.add(cr)
			}
		}
	}

	rep.Duration = time.Since(start)
	r.log.InfoContext(ctx, "bank run finished",
		slog.Int("total", rep.Total),
		slog.Int("passed", rep.Passed),
		slog.Int("failed", rep.Failed),
		logger.Duration(rep.Duration),
	)
	return rep, nil
}

func (r *Runner) handle(b *Bank, u Unit) (*harness.Handle, error) {
	if u.Native != "" {
		cu, err := r.catalog.Get(u.Native)
		if err != nil {
			return nil, err
		}
		kind := u.Kind
		if kind == "" || kind == unit.KindAuto {
			kind = cu.Kind
		}
		return r.h.Native(u.Name, kind, cu.Func), nil
	}

	src, err := b.Source(u)
	if err != nil {
		return nil, err
	}
	return r.h.Load(src)
}

func (r *Runner) runCase(ctx context.Context, hd *harness.Handle, loadErr error, u Unit, c Case) CaseResult {
	cr := CaseResult{Unit: u.Name, Case: c.Name, Want: describeExpect(c)}
	start := time.Now()
	defer func() { cr.Duration = time.Since(start) }()

	err := loadErr
	var res unit.Result
	if err == nil {
		res, err = r.h.Run(ctx, hd, c.Params)
	}

	switch {
	case err != nil:
		cr.Got = "error: " + err.Error()
		cr.Error = err.Error()
		cr.Passed = c.ExpectError != "" && strings.Contains(err.Error(), c.ExpectError)
	case c.ExpectError != "":
		cr.Got = res.String()
	default:
		cr.Got = res.String()
		cr.Passed, cr.Error = matches(res, c.Expect, c.ExpectAbsent)
	}

	r.log.DebugContext(ctx, "case finished",
		logger.Unit(u.Name),
		slog.String("case", c.Name),
		slog.Bool("passed", cr.Passed),
	)
	return cr
}

// matches compares a result with an expectation. Parser expectations are a
// subset of the produced fields, and none of the absent fields may appear.
func matches(res unit.Result, expect any, absent []string) (bool, string) {
	switch want := expect.(type) {
	case bool:
		if res.Kind != unit.KindValidator {
			return false, fmt.Sprintf("expected a validator result, got %s", res.Kind)
		}
		return res.Valid == want, ""
	case string:
		if res.Kind != unit.KindFormatter {
			return false, fmt.Sprintf("expected a formatter result, got %s", res.Kind)
		}
		return res.Text == want, ""
	}

	fields, err := unit.FieldsFrom(expect)
	if err != nil {
		return false, err.Error()
	}
	if res.Kind != unit.KindParser {
		return false, fmt.Sprintf("expected a parser result, got %s", res.Kind)
	}
	for _, k := range fields.Keys() {
		got, ok := res.Fields[k]
		if !ok {
			return false, fmt.Sprintf("missing field %q", k)
		}
		if got != fields[k] {
			return false, fmt.Sprintf("field %q: want %q, got %q", k, fields[k], got)
		}
	}
	for _, k := range absent {
		if got, ok := res.Fields[k]; ok {
			return false, fmt.Sprintf("unexpected field %q = %q", k, got)
		}
	}
	return true, ""
}

func describeExpect(c Case) string {
	if c.ExpectError != "" {
		return "error containing " + fmt.Sprintf("%q", c.ExpectError)
	}
	switch want := c.Expect.(type) {
	case bool, string:
		return fmt.Sprint(want)
	}
	fields, err := unit.FieldsFrom(c.Expect)
	if err != nil {
		return fmt.Sprint(c.Expect)
	}
	want := unit.Output(fields).String()
	if len(c.ExpectAbsent) > 0 {
		want += " without " + strings.Join(c.ExpectAbsent, ", ")
	}
	return want
}
