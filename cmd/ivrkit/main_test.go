package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--log-level", "error", "--now", "2025-06-15T10:30:00Z"}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "validation/credit-card")
	assert.Contains(t, out, "output/parse-soap-xml")

	out, err = execute(t, "", "list", "--kind", "user")
	require.NoError(t, err)
	assert.Contains(t, out, "user/build-prompt")
	assert.NotContains(t, out, "validation/")

	_, err = execute(t, "", "list", "--kind", "sorter")
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"validator", "", []string{"run", "validation/credit-card", "--set", "valueToValidate=4532015112830366"}, "true\n"},
		{"validator reason", "", []string{"run", "validation/credit-card", "--set", "valueToValidate=4532015112830367"}, "false (validation.credit_card)\n"},
		{"leading zero kept", "", []string{"run", "validation/mobile", "--set", "valueToValidate=0412345678"}, "true\n"},
		{"fixed clock", "", []string{"run", "validation/date", "--set", "valueToValidate=2025-08-14"}, "true\n"},
		{"formatter", "", []string{"run", "user/get-epoch-timestamp"}, "1749983400\n"},
		{"params from stdin", `{"wsResponseCode": 404}`, []string{"run", "output/parse-user-profile", "-p", "-"},
			"FailExitReason=USER_NOT_FOUND\naccountStatus=Unknown\nfirstName=Unknown\nlastName=Unknown\nmemberSince=Unknown\noutput1=failed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "", "run", "validation/email", "--set", "valueToValidate=a@b.co", "--json")
		require.NoError(t, err)
		var res map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, map[string]any{"kind": "validator", "value": true}, res)
	})

	t.Run("unknown unit", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "", "run", "validation/nope")
		require.ErrorContains(t, err, "unknown unit")
	})

	t.Run("bad set flag", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "", "run", "validation/email", "--set", "novalue")
		require.ErrorContains(t, err, "key=value")
	})
}

func TestExec(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "exec", "testdata/upper.body", "--set", "extValue1= abc ")
	require.NoError(t, err)
	assert.Equal(t, "ABC\n", out)

	out, err = execute(t, "", "exec", "testdata/tier.cel", "-p", "testdata/balance.yaml")
	require.NoError(t, err)
	assert.Equal(t, "code=200\ntier=gold\n", out)

	_, err = execute(t, "", "exec", "testdata/upper.body", "--kind", "validator", "--set", "extValue1=x")
	require.ErrorContains(t, err, "declared kind")

	_, err = execute(t, "", "exec", "testdata/missing.go")
	require.Error(t, err)
}

func TestBankCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "test", "testdata/bank.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "| mobile | au mobile | PASS |")
	assert.Contains(t, out, "| Passed | 2 |")

	out, err = execute(t, "", "test", "--format", "json", "testdata/bank.yaml", "testdata/failing.yaml")
	require.ErrorIs(t, err, errCasesFailed)
	var rep map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.EqualValues(t, 3, rep["total"])
	assert.EqualValues(t, 1, rep["failed"])
}

func TestReadParams(t *testing.T) {
	t.Parallel()

	base := unit.Params{"Locale": "en-US", "DialogId": "d-1"}
	p, err := readParams(base, "testdata/balance.yaml", nil, []string{"Locale=es-US", "extValue1=a=b"})
	require.NoError(t, err)
	assert.Equal(t, 200, p["wsResponseCode"])
	assert.Equal(t, 1500.25, p.Body()["balance"])
	assert.Equal(t, "es-US", p["Locale"])
	assert.Equal(t, "a=b", p["extValue1"])
	assert.Equal(t, "d-1", p["DialogId"])
	assert.Equal(t, "en-US", base["Locale"], "base is not modified")

	_, err = readParams(nil, "-", strings.NewReader("[1, 2"), nil)
	require.Error(t, err)
}

func TestMockInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no params uses the kind mock", []string{"exec", "testdata/upper.body", "--kind", "formatter"}, "12345\n"},
		{"set overlays the mock", []string{"exec", "testdata/upper.body", "--kind", "formatter", "--mock", "ok", "--set", "extValue1=xy"}, "XY\n"},
		{"error mock", []string{"run", "output/parse-user-profile", "--mock", "error"},
			"FailExitReason=USER_NOT_FOUND\naccountStatus=Unknown\nfirstName=Unknown\nlastName=Unknown\nmemberSince=Unknown\noutput1=failed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "", "run", "validation/email", "--mock", "maybe")
		require.ErrorIs(t, err, errMockMode)
	})

	t.Run("given params skip the mock", func(t *testing.T) {
		t.Parallel()

		p, err := mockParams("", true, unit.KindParser, time.Now())
		require.NoError(t, err)
		assert.Empty(t, p)

		p, err = mockParams("", false, unit.KindParser, time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "200", p.StatusCode())
		assert.Equal(t, "10", p.String(unit.KeyCurrentHour))
	})
}

func TestBadLogLevel(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	root.SetArgs([]string{"--log-level", "loud", "list"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	require.Error(t, root.Execute())
}
