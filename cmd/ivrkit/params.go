package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// Mock modes for --mock.
const (
	mockNone  = "none"
	mockOK    = "ok"
	mockError = "error"
)

var errMockMode = errors.New("params: --mock must be ok, error or none")

// mockParams returns the base Input Context for a mock mode. An empty mode
// means ok when the caller gave no params at all, and none otherwise.
func mockParams(mode string, given bool, k unit.Kind, now time.Time) (unit.Params, error) {
	if mode == "" {
		mode = mockOK
		if given {
			mode = mockNone
		}
	}
	switch strings.ToLower(mode) {
	case mockNone:
		return unit.Params{}, nil
	case mockOK:
		return unit.MockParams(k, now), nil
	case mockError:
		return unit.MockErrorParams(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errMockMode, mode)
	}
}

// readParams loads an Input Context from a YAML or JSON file, or from stdin
// when path is "-", on top of base. Each "key=value" in sets is applied last
// as a string, so values such as 0412345678 keep their leading zeros.
func readParams(base unit.Params, path string, stdin io.Reader, sets []string) (unit.Params, error) {
	p := unit.Params{}
	maps.Copy(p, base)

	var data []byte
	var err error
	switch path {
	case "":
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	if len(data) > 0 {
		loaded := unit.Params{}
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
		maps.Copy(p, loaded)
	}

	for _, kv := range sets {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("params: --set %q is not key=value", kv)
		}
		p[key] = raw
	}
	return p, nil
}
