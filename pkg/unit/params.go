package unit

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Well-known Input Context keys supplied by the hosting platform.
const (
	KeyAni                  = "Ani"
	KeyDnis                 = "Dnis"
	KeyLocale               = "Locale"
	KeyConnectionID         = "ConnectionID"
	KeyDialogID             = "DialogID"
	KeyDialogGroupID        = "DialogGroupID"
	KeyTestMode             = "testMode"
	KeyStep                 = "step"
	KeyTimestamp            = "Timestamp"
	KeyCurrentHour          = "CurrentHour"
	KeyCurrentTime          = "CurrentTime"
	KeyAgentRequests        = "AgentRequests"
	KeyNoMatches            = "NoMatches"
	KeyNoInputs             = "NoInputs"
	KeyErrors               = "Errors"
	KeyRejections           = "Rejections"
	KeyWrongInput           = "WrongInput"
	KeyInputMode            = "InputMode"
	KeyValueToValidate      = "valueToValidate"
	KeyValidationFailReason = "validationFailReason"
	KeyValidationResult     = "validationResult"
	KeyResponseBody         = "wsResponseBody"
	KeyResponseCode         = "wsResponseCode"
	KeyResponseHeaders      = "wsResponseHeaders"
	KeyPromptSequence       = "promptSequence"
)

// Params is the Input Context of a single unit invocation.
type Params map[string]any

// Header is one entry of the wsResponseHeaders list.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (p Params) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// Has reports whether key is present with a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the value under key rendered as a string. Missing and nil
// values yield "".
func (p Params) String(key string) string {
	s, ok := Stringify(p[key])
	if !ok {
		return fmt.Sprint(p[key])
	}
	return s
}

// Float parses the value under key as a number.
func (p Params) Float(key string) (float64, bool) {
	return ToFloat(p[key])
}

// Int parses the value under key as a number and truncates it toward zero.
func (p Params) Int(key string) (int, bool) {
	f, ok := ToFloat(p[key])
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Bool treats true, "true" and non-zero numbers as true.
func (p Params) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	default:
		f, ok := ToFloat(v)
		return ok && f != 0
	}
}

// Map returns the nested object under key, or nil.
func (p Params) Map(key string) map[string]any {
	return AsMap(p[key])
}

// Slice returns the list under key, or nil.
func (p Params) Slice(key string) []any {
	return AsSlice(p[key])
}

// Lookup resolves a dotted path such as "wsResponseBody.balanceDetails.balance".
// Numeric segments index into lists.
func (p Params) Lookup(path string) (any, bool) {
	return LookupPath(map[string]any(p), path)
}

// LookupString resolves path and renders the value, falling back to def when
// the path is missing, nil or an empty string.
func (p Params) LookupString(path, def string) string {
	v, ok := p.Lookup(path)
	if !ok || v == nil {
		return def
	}
	s, ok := Stringify(v)
	if !ok || s == "" {
		return def
	}
	return s
}

func (p Params) StatusCode() string {
	return strings.TrimSpace(p.String(KeyResponseCode))
}

func (p Params) Body() map[string]any {
	return p.Map(KeyResponseBody)
}

// Headers decodes wsResponseHeaders. Entries without a name are skipped.
func (p Params) Headers() []Header {
	raw, ok := p[KeyResponseHeaders]
	if !ok || raw == nil {
		return nil
	}
	if hs, ok := raw.([]Header); ok {
		return hs
	}

	var out []Header
	for _, item := range AsSlice(raw) {
		m := AsMap(item)
		if m == nil {
			continue
		}
		name, _ := Stringify(m["name"])
		if name == "" {
			continue
		}
		value, _ := Stringify(m["value"])
		out = append(out, Header{Name: name, Value: value})
	}
	return out
}

// Header returns the first header with the exact name.
func (p Params) Header(name string) (string, bool) {
	for _, h := range p.Headers() {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// ExtValue returns the orchestrator-supplied extValueN.
func (p Params) ExtValue(n int) string {
	return p.String("extValue" + strconv.Itoa(n))
}

// Time parses the value under key. See ParseTime for accepted layouts.
func (p Params) Time(key string) (time.Time, bool) {
	return ParseTime(p[key])
}

// Clone returns a deep copy of the Input Context.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return Params(cloneValue(map[string]any(p)).(map[string]any))
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// ParseTime accepts time.Time, epoch milliseconds (number or digit string),
// RFC 3339 with or without a zone, YYYY-MM-DD and MM/DD/YYYY. Zoneless values
// are read as UTC. The result is always in UTC.
func ParseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t.UTC(), !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), true
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
		return time.Time{}, false
	default:
		f, ok := ToFloat(v)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(f)).UTC(), true
	}
}

// Stringify renders scalars the way the platform serializes them: integers in
// base 10, floats without exponent or trailing zeros, bools as true/false.
// Nested maps and lists are rejected.
func Stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", t), true
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

// ToFloat converts numbers and numeric strings. Blank strings are not numbers.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// LookupPath walks a dotted path through nested maps and lists.
func LookupPath(root any, path string) (any, bool) {
	cur := root
	if path == "" {
		return cur, cur != nil
	}
	for _, part := range strings.Split(path, ".") {
		if m := AsMap(cur); m != nil {
			next, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = next
			continue
		}
		if list := AsSlice(cur); list != nil {
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(list) {
				return nil, false
			}
			cur = list[idx]
			continue
		}
		return nil, false
	}
	return cur, true
}

// AsMap views v as an object. Params, Fields and map[string]string are
// converted; anything else yields nil.
func AsMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case Params:
		return map[string]any(m)
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out
	case Fields:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out
	}
	return nil
}

// AsSlice views v as a list. Typed slices produced by Go callers are
// converted; anything else yields nil.
func AsSlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out
	case []string:
		out := make([]any, len(s))
		for i, str := range s {
			out[i] = str
		}
		return out
	case []Header:
		out := make([]any, len(s))
		for i, h := range s {
			out[i] = map[string]any{"name": h.Name, "value": h.Value}
		}
		return out
	}
	return nil
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = cloneValue(inner)
		}
		return out
	case Params:
		return Params(cloneValue(map[string]any(t)).(map[string]any))
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = cloneValue(inner)
		}
		return out
	case map[string]string:
		return maps.Clone(t)
	case Fields:
		return maps.Clone(t)
	case []string:
		return slices.Clone(t)
	case []Header:
		return slices.Clone(t)
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, m := range t {
			if m != nil {
				out[i] = cloneValue(m).(map[string]any)
			}
		}
		return out
	case []map[string]string:
		out := make([]map[string]string, len(t))
		for i, m := range t {
			out[i] = maps.Clone(m)
		}
		return out
	case []Params:
		out := make([]Params, len(t))
		for i, m := range t {
			if m != nil {
				out[i] = m.Clone()
			}
		}
		return out
	case []Fields:
		out := make([]Fields, len(t))
		for i, m := range t {
			out[i] = maps.Clone(m)
		}
		return out
	}
	return cloneReflect(reflect.ValueOf(v)).Interface()
}

// cloneReflect copies the remaining typed maps, slices, arrays and pointers
// a Go caller may put into an Input Context.
func cloneReflect(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneElem(iter.Value(), v.Type().Elem()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(cloneElem(v.Index(i), v.Type().Elem()))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			out.Index(i).Set(cloneElem(v.Index(i), v.Type().Elem()))
		}
		return out
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneElem(v.Elem(), v.Type().Elem()))
		return out
	}
	return v
}

// cloneElem clones one element and converts it back to the container's
// element type.
func cloneElem(v reflect.Value, typ reflect.Type) reflect.Value {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Zero(typ)
		}
		v = v.Elem()
	}
	if !v.CanInterface() {
		return v
	}
	out := reflect.ValueOf(cloneValue(v.Interface()))
	if !out.IsValid() {
		return reflect.Zero(typ)
	}
	return out
}
