package harness

import (
	"fmt"
	"path"
	"reflect"
	"slices"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/formatter"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/logger"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/parser"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/sanitizer"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// HostPackage is the import path of the capability package units import.
const HostPackage = "ocp"

// DefaultAllowedPackages are the standard library packages units may import.
var DefaultAllowedPackages = []string{
	"bytes",
	"encoding/json",
	"errors",
	"fmt",
	"math",
	"net/url",
	"regexp",
	"sort",
	"strconv",
	"strings",
	"time",
	"unicode",
	"unicode/utf8",
}

// clockSymbols are removed from package time so units cannot read the wall
// clock or block on timers.
var clockSymbols = []string{
	"Now", "Since", "Until", "Sleep", "After", "AfterFunc", "Tick", "NewTimer", "NewTicker",
}

// exportKey is the yaegi symbol table key of an import path.
func exportKey(importPath string) string {
	return importPath + "/" + path.Base(importPath)
}

// allowedSymbols copies the stdlib symbol tables of the allowed packages.
// Packages unknown to yaegi are skipped. Package variables are exported as
// private copies, so an assignment inside a unit never reaches the host.
func allowedSymbols(allowed []string) interp.Exports {
	out := make(interp.Exports, len(allowed))
	for _, pkg := range allowed {
		key := exportKey(pkg)
		syms, ok := stdlib.Symbols[key]
		if !ok {
			continue
		}
		cp := make(map[string]reflect.Value, len(syms))
		dc := &deepCopier{seen: map[uintptr]reflect.Value{}}
		for name, v := range syms {
			if pkg == "time" && slices.Contains(clockSymbols, name) {
				continue
			}
			if !v.CanSet() {
				cp[name] = v
				continue
			}
			if pkg == "time" && name == "Local" {
				// Units have no local zone; Local reads as UTC.
				v = syms["UTC"]
			}
			cp[name] = dc.variable(v)
		}
		out[key] = cp
	}
	return out
}

// deepCopier detaches package variables from host memory. Values reachable
// through exported fields, slices, maps and pointers are copied; shared
// pointers stay shared within one copy.
type deepCopier struct {
	seen map[uintptr]reflect.Value
}

// variable returns a new settable value holding a deep copy of v.
func (d *deepCopier) variable(v reflect.Value) reflect.Value {
	out := reflect.New(v.Type()).Elem()
	out.Set(d.copy(v))
	return out
}

func (d *deepCopier) copy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		if cp, ok := d.seen[v.Pointer()]; ok {
			return cp
		}
		cp := reflect.New(v.Type().Elem())
		d.seen[v.Pointer()] = cp
		cp.Elem().Set(d.copy(v.Elem()))
		return cp
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		cp := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			cp.Index(i).Set(d.copy(v.Index(i)))
		}
		return cp
	case reflect.Array:
		cp := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			cp.Index(i).Set(d.copy(v.Index(i)))
		}
		return cp
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		cp := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), d.copy(iter.Value()))
		}
		return cp
	case reflect.Struct:
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		for i := range v.NumField() {
			if v.Type().Field(i).IsExported() {
				cp.Field(i).Set(d.copy(v.Field(i)))
			}
		}
		return cp
	}
	return v
}

// capture records ocp.Return calls of a single run.
type capture struct {
	called bool
	value  any
}

// hostSymbols builds the ocp package of one run.
func hostSymbols(rt *runtime, p unit.Params, c *capture) interp.Exports {
	env := rt.env
	return interp.Exports{
		exportKey(HostPackage): {
			"Params": reflect.ValueOf((*unit.Params)(nil)),
			"Return": reflect.ValueOf(func(v any) {
				c.called = true
				c.value = v
			}),
			"Now": reflect.ValueOf(func() time.Time {
				return env.Now(p)
			}),
			"SignJWT": reflect.ValueOf(func(payload map[string]any, secret string, opts map[string]any) (string, error) {
				if env.SignJWT == nil {
					return "", unit.ErrNoCapability
				}
				return env.SignJWT(payload, secret, opts)
			}),
			"ParseXML": reflect.ValueOf(func(doc string) (map[string]any, error) {
				if env.ParseXML == nil {
					return nil, unit.ErrNoCapability
				}
				return env.ParseXML(doc)
			}),
			"Log": reflect.ValueOf(func(args ...any) {
				rt.log.Debug(fmt.Sprint(args...), logger.Stream("ocp.Log"))
			}),
			"SanitizeInput":  reflect.ValueOf(sanitizer.SanitizeInput),
			"NormalizePhone": reflect.ValueOf(sanitizer.KeepDigits),
			"FormatPhone":    reflect.ValueOf(formatter.FormatPhone),
			"Mask":           reflect.ValueOf(formatter.Mask),
			"ErrorMessage":   reflect.ValueOf(parser.ReasonForStatus),
			"ShouldRetry":    reflect.ValueOf(func(max int) bool {
				errs, _ := p.Int(unit.KeyErrors)
				return formatter.ShouldRetry(errs, max)
			}),
			"IsBusinessHours": reflect.ValueOf(func(start, end, offset int) bool {
				hour, ok := p.Int(unit.KeyCurrentHour)
				return ok && formatter.IsBusinessHours(hour, offset, start, end)
			}),
		},
	}
}
