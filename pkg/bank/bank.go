package bank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// SupportedVersions is the version constraint every bank must satisfy.
const SupportedVersions = "^1"

const schemaURL = "https://omilia-utils.local/bank.schema.json"

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("bank: schema load failed: %w", err)
	}
	return c.Compile(schemaURL)
})

// Bank is a parsed test bank.
type Bank struct {
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Units       []Unit `json:"units"`

	// Path is the file the bank was read from, if any.
	Path string `json:"-"`
}

// Unit is one unit under test. Exactly one of Source, File and Native is set.
type Unit struct {
	Name   string    `json:"name"`
	Kind   unit.Kind `json:"kind,omitempty"`
	Lang   string    `json:"lang,omitempty"`
	Source string    `json:"source,omitempty"`
	File   string    `json:"file,omitempty"`
	Native string    `json:"native,omitempty"`
	Cases  []Case    `json:"cases"`
}

// Case is a single expectation against a unit. ExpectAbsent names parser
// fields that must not be produced, such as FailExitReason on success.
type Case struct {
	Name         string      `json:"name"`
	Params       unit.Params `json:"params,omitempty"`
	Expect       any         `json:"expect,omitempty"`
	ExpectAbsent []string    `json:"expectAbsent,omitempty"`
	ExpectError  string      `json:"expectError,omitempty"`
}

// Source returns the harness source of a script unit. File paths are
// resolved relative to the bank.
func (b *Bank) Source(u Unit) (harness.Source, error) {
	lang, err := harness.ParseLang(u.Lang)
	if err != nil {
		return harness.Source{}, err
	}
	src := harness.Source{Name: u.Name, Kind: u.Kind, Lang: lang, Text: u.Source}
	if u.File != "" {
		path := u.File
		if !filepath.IsAbs(path) && b.Path != "" {
			path = filepath.Join(filepath.Dir(b.Path), path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return harness.Source{}, fmt.Errorf("bank: unit %s: %w", u.Name, err)
		}
		src.Text = string(data)
	}
	return src, nil
}

// LoadFile reads and parses the bank at path.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b.Path = path
	return b, nil
}

// Parse decodes a YAML (or JSON) bank, validates it against the schema and
// checks its version.
func Parse(data []byte) (*Bank, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	// Round-trip through JSON so the schema sees JSON values and numbers keep
	// their literal form.
	js, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	doc, err := decodeJSON[any](js)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	b, err := decodeJSON[Bank](js)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if err := checkVersion(b.Version); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(b.Units))
	for _, u := range b.Units {
		if seen[u.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUnit, u.Name)
		}
		seen[u.Name] = true
		for i := range u.Cases {
			if p := u.Cases[i].Params; p != nil {
				u.Cases[i].Params = unit.Params(numbers(map[string]any(p)).(map[string]any))
			}
		}
	}
	return &b, nil
}

func checkVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrVersion, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrVersion, v, SupportedVersions)
	}
	return nil
}

// numbers turns json.Number params into int64 or float64 so every engine
// sees native numbers.
func numbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, inner := range t {
			t[k] = numbers(inner)
		}
	case []any:
		for i, inner := range t {
			t[i] = numbers(inner)
		}
	}
	return v
}

func decodeJSON[T any](data []byte) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	err := dec.Decode(&v)
	return v, err
}
