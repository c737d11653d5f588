package units

import (
	"fmt"
	"slices"
	"sync"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/formatter"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/i18n"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// Name prefixes, one per unit kind.
const (
	ValidationPrefix = "validation/"
	UserPrefix       = "user/"
	OutputPrefix     = "output/"
)

// Unit is a named native unit.
type Unit struct {
	Name        string    `json:"name"`
	Kind        unit.Kind `json:"kind"`
	Description string    `json:"description"`
	Func        unit.Func `json:"-"`
}

// Catalog is a read-only set of units keyed by name.
type Catalog struct {
	units map[string]Unit
	names []string
}

type config struct {
	greetingOffset int
	tokenSecret    string
	prompts        *i18n.Catalog
}

// Option configures the units built by New.
type Option func(*config)

// WithGreetingOffset sets the hour offset dynamic-greeting adds to
// CurrentHour.
func WithGreetingOffset(hours int) Option {
	return func(c *config) {
		c.greetingOffset = hours
	}
}

// WithTokenSecret sets the HMAC secret used by generate-jwt-token.
func WithTokenSecret(secret string) Option {
	return func(c *config) {
		c.tokenSecret = secret
	}
}

// WithPrompts replaces the built-in prompt segment catalog.
func WithPrompts(cat *i18n.Catalog) Option {
	return func(c *config) {
		if cat != nil {
			c.prompts = cat
		}
	}
}

// New builds the full unit catalog.
func New(opts ...Option) *Catalog {
	cfg := &config{greetingOffset: formatter.GreetingOffset}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.prompts == nil {
		cfg.prompts = i18n.Default()
	}

	all := slices.Concat(validationUnits(), userUnits(cfg), outputUnits())
	c, err := NewCatalog(all...)
	if err != nil {
		// Unit names are constants; a duplicate is a programming error.
		panic(err)
	}
	return c
}

var defaultCatalog = sync.OnceValue(func() *Catalog { return New() })

// Default returns the catalog built with default options.
func Default() *Catalog {
	return defaultCatalog()
}

// NewCatalog indexes units by name. Names must be unique.
func NewCatalog(units ...Unit) (*Catalog, error) {
	c := &Catalog{units: make(map[string]Unit, len(units))}
	for _, u := range units {
		if _, exists := c.units[u.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUnit, u.Name)
		}
		c.units[u.Name] = u
		c.names = append(c.names, u.Name)
	}
	slices.Sort(c.names)
	return c, nil
}

func (c *Catalog) Lookup(name string) (Unit, bool) {
	u, ok := c.units[name]
	return u, ok
}

// Get is Lookup with an ErrUnknownUnit error.
func (c *Catalog) Get(name string) (Unit, error) {
	u, ok := c.units[name]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %s", ErrUnknownUnit, name)
	}
	return u, nil
}

// List returns every unit sorted by name.
func (c *Catalog) List() []Unit {
	out := make([]Unit, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.units[name])
	}
	return out
}

// ListKind returns the units of kind k sorted by name.
func (c *Catalog) ListKind(k unit.Kind) []Unit {
	var out []Unit
	for _, name := range c.names {
		if u := c.units[name]; u.Kind == k {
			out = append(out, u)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.units)
}
