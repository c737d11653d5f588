package bank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/bank"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	b, err := bank.LoadFile("testdata/ivr.yaml")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", b.Version)
	assert.Equal(t, "testdata/ivr.yaml", b.Path)
	require.Len(t, b.Units, 8)

	cc := b.Units[0]
	assert.Equal(t, "validation/credit-card", cc.Native)
	require.Len(t, cc.Cases, 2)
	assert.Equal(t, true, cc.Cases[0].Expect)

	lowBalance := b.Units[2].Cases[0]
	assert.Equal(t, int64(200), lowBalance.Params[unit.KeyResponseCode])
	assert.Equal(t, int64(0), lowBalance.Params.Body()["balance"])
	assert.Equal(t, []string{unit.FailExitReasonKey}, lowBalance.ExpectAbsent)

	tier := b.Units[6]
	assert.Equal(t, unit.KindParser, tier.Kind)
	assert.Equal(t, 20.5, tier.Cases[1].Params["balance"])

	src, err := b.Source(b.Units[7])
	require.NoError(t, err)
	assert.Equal(t, harness.LangGo, src.Lang)
	assert.Contains(t, src.Text, "func Run(params ocp.Params) any")
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not yaml", "version: [", bank.ErrInvalidDocument},
		{"missing units", `version: "1.0.0"`, bank.ErrInvalidDocument},
		{"unknown field", "version: \"1.0.0\"\nowner: me\nunits: [{name: a, source: 'true', cases: [{name: c, expect: true}]}]", bank.ErrInvalidDocument},
		{"source and native", "version: \"1.0.0\"\nunits: [{name: a, source: 'true', native: x, cases: [{name: c, expect: true}]}]", bank.ErrInvalidDocument},
		{"no expectation", "version: \"1.0.0\"\nunits: [{name: a, source: 'true', cases: [{name: c}]}]", bank.ErrInvalidDocument},
		{"empty expectAbsent", "version: \"1.0.0\"\nunits: [{name: a, source: 'true', cases: [{name: c, expect: true, expectAbsent: []}]}]", bank.ErrInvalidDocument},
		{"nested expect field", "version: \"1.0.0\"\nunits: [{name: a, source: 'true', cases: [{name: c, expect: {a: {b: 1}}}]}]", bank.ErrInvalidDocument},
		{"unknown kind", "version: \"1.0.0\"\nunits: [{name: a, kind: sorter, source: 'true', cases: [{name: c, expect: true}]}]", bank.ErrInvalidDocument},
		{"major version", "version: \"2.0.0\"\nunits: [{name: a, source: 'true', cases: [{name: c, expect: true}]}]", bank.ErrVersion},
		{"bad version", "version: \"one\"\nunits: [{name: a, source: 'true', cases: [{name: c, expect: true}]}]", bank.ErrVersion},
		{"duplicate unit", "version: \"1.0.0\"\nunits:\n  - {name: a, source: 'true', cases: [{name: c, expect: true}]}\n  - {name: a, source: 'false', cases: [{name: c, expect: false}]}", bank.ErrDuplicateUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := bank.Parse([]byte(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	b, err := bank.Parse([]byte(`{"version":"1.0.0","units":[{"name":"a","lang":"cel","source":"true","cases":[{"name":"c","expect":true}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "cel", b.Units[0].Lang)
}

func TestSourceMissingFile(t *testing.T) {
	t.Parallel()

	b := &bank.Bank{Path: "testdata/ivr.yaml"}
	_, err := b.Source(bank.Unit{Name: "x", File: "nope.go"})
	require.Error(t, err)

	_, err = b.Source(bank.Unit{Name: "x", Lang: "lua", Source: "true"})
	require.ErrorIs(t, err, harness.ErrUnknownLang)
}
