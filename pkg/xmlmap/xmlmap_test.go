package xmlmap_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/xmlmap"
)

const soapCustomer = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:ns="urn:customers">
  <soapenv:Header/>
  <soapenv:Body>
    <ns:CustomerResponse>
      <Customer>
        <CustomerId>12345</CustomerId>
        <Name>John Doe</Name>
        <Status>active</Status>
        <Balance currency="USD">1000.00</Balance>
      </Customer>
    </ns:CustomerResponse>
  </soapenv:Body>
</soapenv:Envelope>`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("soap envelope keeps prefixes", func(t *testing.T) {
		got, err := xmlmap.Parse(soapCustomer)
		require.NoError(t, err)

		want := map[string]any{
			"soapenv:Envelope": map[string]any{
				"soapenv:Header": "",
				"soapenv:Body": map[string]any{
					"ns:CustomerResponse": map[string]any{
						"Customer": map[string]any{
							"CustomerId": "12345",
							"Name":       "John Doe",
							"Status":     "active",
							"Balance": map[string]any{
								"@currency": "USD",
								"#text":     "1000.00",
							},
						},
					},
				},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("repeated siblings become a list", func(t *testing.T) {
		got, err := xmlmap.Parse(`<list><item>a</item><item>b</item><item>c</item><other>x</other></list>`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"list": map[string]any{
				"item":  []any{"a", "b", "c"},
				"other": "x",
			},
		}, got)
	})

	t.Run("entities and cdata are decoded", func(t *testing.T) {
		got, err := xmlmap.Parse(`<m>Tom &amp; Jerry <![CDATA[<ok>]]></m>`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"m": "Tom & Jerry <ok>"}, got)
	})

	t.Run("empty element is an empty string", func(t *testing.T) {
		got, err := xmlmap.Parse(`<Customer/>`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"Customer": ""}, got)
	})
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "empty", doc: "", want: xmlmap.ErrEmptyDocument},
		{name: "only prolog", doc: `<?xml version="1.0"?>`, want: xmlmap.ErrEmptyDocument},
		{name: "not xml", doc: "not xml at all", want: xmlmap.ErrMalformed},
		{name: "unclosed", doc: "<a><b></b>", want: xmlmap.ErrMalformed},
		{name: "mismatched", doc: "<a></b>", want: xmlmap.ErrMalformed},
		{name: "mismatched prefix", doc: "<x:a></y:a>", want: xmlmap.ErrMalformed},
		{name: "two roots", doc: "<a/><b/>", want: xmlmap.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := xmlmap.Parse(tt.doc)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
