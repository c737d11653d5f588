package unit

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FailExitReasonKey is the sentinel key a Parser sets when the response
// represents an error condition.
const FailExitReasonKey = "FailExitReason"

// Fields is the flat output mapping of a Parser.
type Fields map[string]string

// FailExitReason returns the sentinel value, or "" when the output is a success.
func (f Fields) FailExitReason() string {
	return f[FailExitReasonKey]
}

func (f Fields) Failed() bool {
	_, ok := f[FailExitReasonKey]
	return ok
}

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

func (f Fields) Clone() Fields {
	return maps.Clone(f)
}

// FieldsFrom flattens a map produced by a unit into Fields. Scalars are
// rendered with Stringify; nested values are rejected.
func FieldsFrom(v any) (Fields, error) {
	switch m := v.(type) {
	case Fields:
		return m.Clone(), nil
	case map[string]string:
		return Fields(maps.Clone(m)), nil
	}

	src := AsMap(v)
	if src == nil {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidResult, v)
	}
	out := make(Fields, len(src))
	for k, raw := range src {
		s, ok := Stringify(raw)
		if !ok {
			return nil, fmt.Errorf("%w: field %q holds %T", ErrInvalidResult, k, raw)
		}
		out[k] = s
	}
	return out, nil
}

// Result is the single value a unit produces. Exactly one of Valid, Text and
// Fields is meaningful, selected by Kind.
type Result struct {
	Kind   Kind
	Valid  bool
	Text   string
	Fields Fields
	// Reason names the failing rule of a Validator, e.g. validation.credit_card.
	Reason string
}

func Bool(valid bool) Result {
	return Result{Kind: KindValidator, Valid: valid}
}

func Text(s string) Result {
	return Result{Kind: KindFormatter, Text: s}
}

func Output(f Fields) Result {
	if f == nil {
		f = Fields{}
	}
	return Result{Kind: KindParser, Fields: f}
}

// Value returns the payload as bool, string or map[string]string.
func (r Result) Value() any {
	switch r.Kind {
	case KindValidator:
		return r.Valid
	case KindFormatter:
		return r.Text
	case KindParser:
		return map[string]string(r.Fields)
	}
	return nil
}

func (r Result) String() string {
	switch r.Kind {
	case KindValidator:
		if r.Reason != "" && !r.Valid {
			return fmt.Sprintf("false (%s)", r.Reason)
		}
		return fmt.Sprint(r.Valid)
	case KindFormatter:
		return r.Text
	case KindParser:
		parts := make([]string, 0, len(r.Fields))
		for _, k := range r.Fields.Keys() {
			parts = append(parts, k+"="+r.Fields[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "<empty>"
}

// Equal compares payloads of the same kind.
func (r Result) Equal(other Result) bool {
	if r.Kind != other.Kind {
		return false
	}
	switch r.Kind {
	case KindValidator:
		return r.Valid == other.Valid
	case KindFormatter:
		return r.Text == other.Text
	case KindParser:
		return maps.Equal(r.Fields, other.Fields)
	}
	return true
}

type resultJSON struct {
	Kind   Kind   `json:"kind"`
	Value  any    `json:"value"`
	Reason string `json:"reason,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{Kind: r.Kind, Value: r.Value(), Reason: r.Reason})
}

// ResultFrom converts a raw unit value into a Result and checks it against
// the declared kind. KindAuto accepts any well-formed value.
func ResultFrom(declared Kind, v any) (Result, error) {
	var res Result
	switch t := v.(type) {
	case nil:
		return Result{}, ErrNoResult
	case Result:
		res = t
	case bool:
		res = Bool(t)
	case string:
		res = Text(t)
	default:
		fields, err := FieldsFrom(v)
		if err != nil {
			return Result{}, err
		}
		res = Output(fields)
	}

	if declared != "" && declared != KindAuto && declared != res.Kind {
		return Result{}, fmt.Errorf("%w: declared %s, produced %s", ErrResultKind, declared, res.Kind)
	}
	return res, nil
}
