package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLocale is used when a requested locale matches nothing supported.
const DefaultLocale = "en-US"

// Catalog is an immutable, concurrency-safe set of prompt segments.
type Catalog struct {
	segments      map[string]Segments
	locales       []string // default first, then sorted
	matcher       language.Matcher
	defaultLocale string
	logger        *slog.Logger

	mu     sync.RWMutex
	misses map[string]int
}

// NewCatalog loads segments from adapter. The default locale must be present.
func NewCatalog(ctx context.Context, adapter SegmentAdapter, opts ...Option) (*Catalog, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	c := &Catalog{
		defaultLocale: DefaultLocale,
		logger:        slog.New(slog.DiscardHandler),
		misses:        make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}

	data, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoSegments
	}

	c.segments = make(map[string]Segments, len(data))
	for locale, segs := range data {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, locale, err)
		}
		c.segments[tag.String()] = segs
	}

	def, err := language.Parse(c.defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, c.defaultLocale, err)
	}
	c.defaultLocale = def.String()
	if _, ok := c.segments[c.defaultLocale]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLocaleMissing, c.defaultLocale)
	}

	rest := make([]string, 0, len(c.segments)-1)
	for locale := range c.segments {
		if locale != c.defaultLocale {
			rest = append(rest, locale)
		}
	}
	slices.Sort(rest)
	c.locales = append([]string{c.defaultLocale}, rest...)

	tags := make([]language.Tag, len(c.locales))
	for i, locale := range c.locales {
		tags[i] = language.MustParse(locale)
	}
	c.matcher = language.NewMatcher(tags)

	c.logger.DebugContext(ctx, "prompt segments loaded", slog.Any("locales", c.locales))
	return c, nil
}

// Locales returns the supported locales, default first.
func (c *Catalog) Locales() []string {
	return slices.Clone(c.locales)
}

func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Match resolves locale hints (plain tags or Accept-Language values) to a
// supported locale, falling back to the default.
func (c *Catalog) Match(hints ...string) string {
	hints = slices.DeleteFunc(slices.Clone(hints), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	if len(hints) == 0 {
		return c.defaultLocale
	}
	_, idx := language.MatchStrings(c.matcher, hints...)
	return c.locales[idx]
}

// Segment looks key up in the locale matched from hint. Keys are trimmed and
// case-sensitive.
func (c *Catalog) Segment(hint, key string) (Segment, bool) {
	locale := c.Match(hint)
	seg, ok := c.segments[locale][strings.TrimSpace(key)]
	if !ok {
		c.recordMiss(locale, key)
	}
	return seg, ok
}

// Keys lists the segment keys of the matched locale.
func (c *Catalog) Keys(hint string) []string {
	segs := c.segments[c.Match(hint)]
	keys := make([]string, 0, len(segs))
	for k := range segs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Misses reports how often an unknown key was requested, keyed by
// "locale/key". Useful to spot typos in orchestrator prompt sequences.
func (c *Catalog) Misses() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]int, len(c.misses))
	for k, v := range c.misses {
		out[k] = v
	}
	return out
}

func (c *Catalog) recordMiss(locale, key string) {
	c.mu.Lock()
	c.misses[locale+"/"+key]++
	c.mu.Unlock()
	c.logger.Debug("prompt segment not found", slog.String("locale", locale), slog.String("key", key))
}
