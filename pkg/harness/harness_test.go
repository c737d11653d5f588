package harness_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/formatter"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/jwt"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/xmlmap"
)

var fixedNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newHarness(t *testing.T, opts ...harness.Option) *harness.Harness {
	t.Helper()
	base := []harness.Option{
		harness.WithClock(clock),
		harness.WithSigner(jwt.NewSigner(jwt.WithClock(clock)).Sign),
		harness.WithXMLParser(xmlmap.Parse),
	}
	h, err := harness.New(append(base, opts...)...)
	require.NoError(t, err)
	return h
}

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func mustLoad(t *testing.T, h *harness.Harness, src harness.Source) *harness.Handle {
	t.Helper()
	hd, err := h.Load(src)
	require.NoError(t, err)
	return hd
}

func TestBodyFormValidator(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hd := mustLoad(t, h, harness.Source{Name: "luhn", Kind: unit.KindValidator, Text: readTestdata(t, "luhn.body")})

	tests := []struct {
		value string
		want  bool
	}{
		{"4532015112830366", true},
		{"4532015112830367", false},
		{"4532-0151-1283-0366", true},
		{"1234", false},
		{"", false},
	}
	for _, tt := range tests {
		res, err := h.Run(context.Background(), hd, unit.Params{unit.KeyValueToValidate: tt.value})
		require.NoError(t, err, tt.value)
		assert.Equal(t, unit.KindValidator, res.Kind)
		assert.Equal(t, tt.want, res.Valid, tt.value)
	}
}

func TestFileFormParser(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hd := mustLoad(t, h, harness.Source{Name: "user-profile", Kind: unit.KindParser, Text: readTestdata(t, "user_profile.go")})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		res, err := h.Run(context.Background(), hd, unit.Params{
			unit.KeyResponseCode: 200,
			unit.KeyResponseBody: map[string]any{"firstName": "John", "status": "premium"},
		})
		require.NoError(t, err)
		want := unit.Fields{
			"output1":       "success",
			"firstName":     "John",
			"lastName":      "Unknown",
			"memberSince":   "Unknown",
			"accountStatus": "premium",
		}
		if diff := cmp.Diff(want, res.Fields); diff != "" {
			t.Errorf("fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		res, err := h.Run(context.Background(), hd, unit.Params{unit.KeyResponseCode: "404"})
		require.NoError(t, err)
		assert.Equal(t, "USER_NOT_FOUND", res.Fields.FailExitReason())
		assert.Equal(t, "Unknown", res.Fields["firstName"])
	})
}

func TestClockComesFromContext(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hd := mustLoad(t, h, harness.Source{Name: "days-until", Text: readTestdata(t, "days_until.go")})

	res, err := h.Run(context.Background(), hd, unit.Params{"extValue1": "2025-06-22"})
	require.NoError(t, err)
	assert.Equal(t, "7", res.Text)

	res, err = h.Run(context.Background(), hd, unit.Params{
		"extValue1":        "2025-06-22",
		unit.KeyTimestamp: "2025-06-20T23:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "2", res.Text)
}

func TestCapabilities(t *testing.T) {
	t.Parallel()

	t.Run("parse xml", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		hd := mustLoad(t, h, harness.Source{Name: "soap", Text: readTestdata(t, "soap_customer.body")})

		res, err := h.Run(context.Background(), hd, unit.Params{
			unit.KeyResponseBody: `<soapenv:Envelope xmlns:soapenv="urn:e"><soapenv:Body><ns:CustomerResponse xmlns:ns="urn:c">` +
				`<Customer><CustomerId>C-1</CustomerId><Balance>12.50</Balance></Customer>` +
				`</ns:CustomerResponse></soapenv:Body></soapenv:Envelope>`,
		})
		require.NoError(t, err)
		assert.Equal(t, unit.Fields{"status": "success", "customerId": "C-1", "balance": "12.50"}, res.Fields)
	})

	t.Run("sign jwt", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		hd := mustLoad(t, h, harness.Source{Name: "token", Kind: unit.KindFormatter, Text: readTestdata(t, "token.body")})

		res, err := h.Run(context.Background(), hd, unit.Params{"extValue1": "42", unit.KeyDialogID: "d-1"})
		require.NoError(t, err)

		svc, err := jwt.NewFromString("test-secret", jwt.WithClock(clock))
		require.NoError(t, err)
		var claims map[string]any
		require.NoError(t, svc.Parse(res.Text, &claims))
		assert.Equal(t, "42", claims["userId"])
		assert.Equal(t, "d-1", claims["sessionId"])
	})

	t.Run("missing signer", func(t *testing.T) {
		t.Parallel()

		h, err := harness.New()
		require.NoError(t, err)
		hd := mustLoad(t, h, harness.Source{Name: "token", Text: readTestdata(t, "token.body")})

		res, err := h.Run(context.Background(), hd, unit.Params{})
		require.NoError(t, err)
		assert.Contains(t, res.Text, "capability is not configured")
	})
}

func TestSigningIsDeterministic(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	tick := fixedNow
	advancing := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(2 * time.Second)
		return tick
	}
	h, err := harness.New(
		harness.WithClock(advancing),
		harness.WithSigner(jwt.NewSigner(jwt.WithClock(advancing)).Sign),
	)
	require.NoError(t, err)

	script := mustLoad(t, h, harness.Source{Name: "token", Kind: unit.KindFormatter, Text: readTestdata(t, "token.body")})
	native := h.Native("user/generate-jwt-token", unit.KindFormatter, func(env unit.Env, p unit.Params) (unit.Result, error) {
		tok, err := formatter.Token(env.SignJWT, "test-secret", p.ExtValue(1), p.String(unit.KeyDialogID), env.Now(p))
		if err != nil {
			return unit.Result{}, err
		}
		return unit.Text(tok), nil
	})

	params := unit.Params{"extValue1": "42", unit.KeyDialogID: "d-1", unit.KeyTimestamp: "2025-06-15T10:30:00Z"}
	for _, hd := range []*harness.Handle{script, native} {
		first, err := h.Run(context.Background(), hd, params)
		require.NoError(t, err)
		second, err := h.Run(context.Background(), hd, params)
		require.NoError(t, err)
		assert.Equal(t, first.Text, second.Text, hd.Name)

		svc, err := jwt.NewFromString("test-secret", jwt.WithClock(clock))
		require.NoError(t, err)
		var claims map[string]any
		require.NoError(t, svc.Parse(first.Text, &claims))
		assert.InDelta(t, float64(fixedNow.Unix()), claims["iat"], 0, hd.Name)
		assert.InDelta(t, float64(fixedNow.Add(time.Hour).Unix()), claims["exp"], 0, hd.Name)
	}
}

func TestHostHelpers(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hd := mustLoad(t, h, harness.Source{Name: "helpers", Kind: unit.KindParser, Text: `ocp.Return(map[string]any{
	"clean":    ocp.SanitizeInput("  hi <b>there</b>   you "),
	"digits":   ocp.NormalizePhone("(555) 123-4567"),
	"phone":    ocp.FormatPhone("555.123.4567"),
	"masked":   ocp.Mask("4532015112830366"),
	"reason":   ocp.ErrorMessage(params.StatusCode()),
	"retry":    ocp.ShouldRetry(3),
	"business": ocp.IsBusinessHours(9, 17, 0),
})`})

	res, err := h.Run(context.Background(), hd, unit.Params{
		unit.KeyResponseCode: "503",
		unit.KeyErrors:       2,
		unit.KeyCurrentHour:  "10",
	})
	require.NoError(t, err)
	want := unit.Fields{
		"clean":    "hi bthere/b you",
		"digits":   "5551234567",
		"phone":    "(555) 123-4567",
		"masked":   "****0366",
		"reason":   "SERVICE_UNAVAILABLE",
		"retry":    "true",
		"business": "true",
	}
	if diff := cmp.Diff(want, res.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}

	res, err = h.Run(context.Background(), hd, unit.Params{unit.KeyErrors: "3"})
	require.NoError(t, err)
	assert.Equal(t, "false", res.Fields["retry"])
	assert.Equal(t, "false", res.Fields["business"], "no CurrentHour")
	assert.Equal(t, "UNKNOWN_ERROR", res.Fields["reason"])
}

func TestReturnCapture(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	tests := []struct {
		name string
		src  string
		want unit.Result
	}{
		{"last expression", `strings.ToUpper(params.String("extValue1"))`, unit.Text("ABC")},
		{"explicit return", `return len(params.String("extValue1")) == 3`, unit.Bool(true)},
		{"capture wins over expression", "ocp.Return(\"first\")\nocp.Return(\"second\")\n\"ignored\"", unit.Text("second")},
		{"capture without return", `ocp.Return(map[string]any{"count": 3, "ok": true, "ratio": 0.5})`,
			unit.Output(unit.Fields{"count": "3", "ok": "true", "ratio": "0.5"})},
		{"print is not the result", "fmt.Println(\"debug\")\nocp.Return(\"done\")", unit.Text("done")},
		{"trailing stdlib call without results", "xs := strings.Split(\"c,a,b\", \",\")\nocp.Return(len(xs) == 3)\nsort.Strings(xs)", unit.Bool(true)},
		{"trailing helper without results", "m := map[string]any{}\nocp.Return(m)\nfill := func() { m[\"sorted\"] = \"yes\" }\nfill()",
			unit.Output(unit.Fields{"sorted": "yes"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hd := mustLoad(t, h, harness.Source{Text: tt.src})
			res, err := h.Run(context.Background(), hd, unit.Params{"extValue1": "abc"})
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(res), "got %v", res)
		})
	}
}

func TestIsolation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hd := mustLoad(t, h, harness.Source{Name: "counter", Text: `package main

import (
	"strconv"

	"ocp"
)

var calls int

func Run(params ocp.Params) any {
	calls++
	params["mutated"] = true
	params.Map("wsResponseBody")["seen"] = true
	return strconv.Itoa(calls)
}
`})

	params := unit.Params{unit.KeyResponseBody: map[string]any{}}
	for range 3 {
		res, err := h.Run(context.Background(), hd, params)
		require.NoError(t, err)
		assert.Equal(t, "1", res.Text, "package state must not survive a run")
	}
	assert.NotContains(t, params, "mutated")
	assert.Empty(t, params.Map(unit.KeyResponseBody))
}

func TestIsolationTypedParams(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hd := mustLoad(t, h, harness.Source{Name: "tamper", Kind: unit.KindValidator, Text: `params.Slice("appts")[0].(map[string]any)["hacked"] = true
true`})

	params := unit.Params{"appts": []map[string]any{{"date": "2025-01-01"}}}
	res, err := h.Run(context.Background(), hd, params)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, []map[string]any{{"date": "2025-01-01"}}, params["appts"])
}

func TestIsolationPackageVariables(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hd := mustLoad(t, h, harness.Source{Name: "globals", Kind: unit.KindFormatter, Text: `before := strconv.ErrSyntax != nil
strconv.ErrSyntax = nil
errors.ErrUnsupported = nil
time.UTC = nil
unicode.Upper.R16[0].Lo = 0
strconv.FormatBool(before)`})

	for range 2 {
		res, err := h.Run(context.Background(), hd, nil)
		require.NoError(t, err)
		assert.Equal(t, "true", res.Text, "assignments must not survive a run")
	}

	require.NotNil(t, strconv.ErrSyntax)
	require.NotNil(t, errors.ErrUnsupported)
	require.NotNil(t, time.UTC)
	assert.True(t, unicode.IsUpper('A'))
	_, err := strconv.Atoi("x")
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	tests := []struct {
		name string
		src  string
		want error
	}{
		{"forbidden import", "package main\n\nimport (\n\t\"os\"\n\t\"ocp\"\n)\n\nfunc Run(params ocp.Params) any { return os.Getenv(\"HOME\") }\n", harness.ErrForbiddenImport},
		{"goroutine", "go func() {}()\ntrue", harness.ErrForbiddenStatement},
		{"endless loop", "n := 0\nfor {\n\tn++\n}\nn", harness.ErrForbiddenStatement},
		{"break leaves only the switch", "n := 0\nfor {\n\tswitch {\n\tcase n > 3:\n\t\tbreak\n\t}\n\tn++\n}\nn", harness.ErrForbiddenStatement},
		{"return in a closure", "for {\n\tf := func() int { return 1 }\n\t_ = f\n}\ntrue", harness.ErrForbiddenStatement},
		{"empty select", "select {}\ntrue", harness.ErrForbiddenStatement},
		{"endless loop in file form", "package main\n\nimport \"ocp\"\n\nfunc Run(params ocp.Params) any {\n\tfor {\n\t}\n}\n", harness.ErrForbiddenStatement},
		{"wall clock", "time.Now().String()", harness.ErrCompile},
		{"sleep", "time.Sleep(time.Second)\ntrue", harness.ErrCompile},
		{"os is unknown in body form", `os.Getenv("HOME")`, harness.ErrCompile},
		{"syntax", "if {", harness.ErrCompile},
		{"no entrypoint", "package main\n\nfunc Main() {}\n", harness.ErrMissingEntrypoint},
		{"wrong package", "package units\n\nfunc Run() {}\n", harness.ErrMissingEntrypoint},
		{"wrong signature", "package main\n\nfunc Run(s string) any { return s }\n", harness.ErrMissingEntrypoint},
		{"empty", "  \n", harness.ErrEmptySource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := h.Load(harness.Source{Name: tt.name, Text: tt.src})
			require.ErrorIs(t, err, tt.want)

			var le *harness.LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.name, le.Unit)
			assert.True(t, harness.IsLoadError(err))
		})
	}

	t.Run("loops with an exit load", func(t *testing.T) {
		t.Parallel()

		for _, src := range []string{
			"n := 0\nfor {\n\tif n > 3 {\n\t\tbreak\n\t}\n\tn++\n}\nn == 4",
			"n := 0\nouter:\nfor {\n\tfor i := 0; i < 2; i++ {\n\t\tif n > 3 {\n\t\t\tbreak outer\n\t\t}\n\t\tn++\n\t}\n}\nn == 4",
			"package main\n\nimport \"ocp\"\n\nfunc Run(params ocp.Params) any {\n\tn := 0\n\tfor {\n\t\tn++\n\t\tif n > 3 {\n\t\t\treturn n == 4\n\t\t}\n\t}\n}\n",
			"n := 0\nfor n < 4 {\n\tn++\n}\nn == 4",
		} {
			hd := mustLoad(t, h, harness.Source{Text: src})
			res, err := h.Run(context.Background(), hd, unit.Params{})
			require.NoError(t, err, src)
			assert.Equal(t, unit.Bool(true), res, src)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := h.Load(harness.Source{Kind: "sorter", Text: "true"})
		require.ErrorIs(t, err, unit.ErrUnknownKind)
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()

		_, err := h.Load(harness.Source{Lang: "lua", Text: "true"})
		require.ErrorIs(t, err, harness.ErrUnknownLang)
	})
}

func TestExecutionErrors(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	tests := []struct {
		name string
		kind unit.Kind
		src  string
		want error
	}{
		{"panic", unit.KindAuto, `panic("boom")`, harness.ErrPanic},
		{"nested map", unit.KindAuto, `map[string]any{"a": map[string]any{"b": 1}}`, unit.ErrInvalidResult},
		{"number", unit.KindAuto, `42`, unit.ErrInvalidResult},
		{"kind mismatch", unit.KindValidator, `"text"`, unit.ErrResultKind},
		{"no result", unit.KindAuto, `_ = params`, unit.ErrNoResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hd := mustLoad(t, h, harness.Source{Name: tt.name, Kind: tt.kind, Text: tt.src})
			_, err := h.Run(context.Background(), hd, unit.Params{})
			require.ErrorIs(t, err, tt.want)

			var ee *harness.ExecutionError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.name, ee.Unit)
			assert.True(t, harness.IsExecutionError(err))
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		hd := mustLoad(t, h, harness.Source{Text: "true"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := h.Run(ctx, hd, unit.Params{})
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil handle", func(t *testing.T) {
		t.Parallel()

		_, err := h.Run(context.Background(), nil, unit.Params{})
		require.ErrorIs(t, err, harness.ErrNilHandle)
	})
}

func TestHandleCache(t *testing.T) {
	t.Parallel()

	h := newHarness(t, harness.WithCacheSize(2))

	a1, err := h.LoadUnit("true")
	require.NoError(t, err)
	a2, err := h.LoadUnit("true")
	require.NoError(t, err)
	assert.Same(t, a1, a2)
	assert.Equal(t, harness.LangGo, a1.Lang)
	assert.Equal(t, unit.KindAuto, a1.Kind)
	assert.Len(t, a1.Digest, 64)

	_, err = h.LoadUnit("false")
	require.NoError(t, err)
	_, err = h.LoadUnit(`"x"`)
	require.NoError(t, err)

	st := h.Stats()
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, 2, st.Len)
	assert.Equal(t, uint64(1), st.Evictions)

	// Failed loads are not cached.
	_, err = h.LoadUnit("if {")
	require.Error(t, err)
	assert.Equal(t, 2, h.Stats().Len)
}

func TestAllowedPackagesOption(t *testing.T) {
	t.Parallel()

	h := newHarness(t, harness.WithAllowedPackages("strings"))

	_, err := h.Load(harness.Source{Text: "package main\n\nimport (\n\t\"strconv\"\n\t\"ocp\"\n)\n\nfunc Run(params ocp.Params) any { return strconv.Itoa(1) }\n"})
	require.ErrorIs(t, err, harness.ErrForbiddenImport)

	hd, err := h.LoadUnit(`strings.Repeat("a", 3)`)
	require.NoError(t, err)
	res, err := h.Run(context.Background(), hd, nil)
	require.NoError(t, err)
	assert.Equal(t, "aaa", res.Text)
}
