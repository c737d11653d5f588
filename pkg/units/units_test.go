package units_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/jwt"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/units"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/xmlmap"
)

var fixedNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func testEnv() unit.Env {
	clock := func() time.Time { return fixedNow }
	return unit.Env{
		Clock:    clock,
		SignJWT:  jwt.NewSigner(jwt.WithClock(clock)).Sign,
		ParseXML: xmlmap.Parse,
	}
}

func run(t *testing.T, name string, p unit.Params) unit.Result {
	t.Helper()

	u, err := units.New(units.WithTokenSecret("test-secret")).Get(name)
	require.NoError(t, err)
	res, err := u.Func(testEnv(), p)
	require.NoError(t, err)
	return res
}

func TestValidationUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unit   string
		value  any
		valid  bool
		reason string
	}{
		{"validation/credit-card", "4532015112830366", true, ""},
		{"validation/credit-card", "4532015112830367", false, "validation.credit_card"},
		{"validation/credit-card", "", false, "validation.required"},
		{"validation/account-number", "1234-5678-90", true, ""},
		{"validation/account-number", "4234567890", false, "validation.account_number"},
		{"validation/amount", "99.99", true, ""},
		{"validation/amount", "5", false, "validation.amount_range"},
		{"validation/amount", "1e3", false, "validation.amount_format"},
		{"validation/amount", 500, true, ""},
		{"validation/custom-list", " Savings ", true, ""},
		{"validation/custom-list", "brokerage", false, "validation.in_list"},
		{"validation/email", "user@example.com", true, ""},
		{"validation/email", "user@example", false, "validation.email"},
		{"validation/landline", "+61 2 9876 5432", true, ""},
		{"validation/landline", "0412345678", false, "validation.au_landline"},
		{"validation/medicare", "2123456701", true, ""},
		{"validation/mobile", "0412 345 678", true, ""},
		{"validation/mobile", "0212345678", false, "validation.au_mobile"},
		{"validation/phone", "(555) 123-4567", true, ""},
		{"validation/phone", "555-1234", false, "validation.phone"},
		{"validation/zip-code", "12345-6789", true, ""},
		{"validation/zip-code", "1234", false, "validation.zip_code"},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			t.Parallel()

			res := run(t, tt.unit, unit.Params{unit.KeyValueToValidate: tt.value})
			assert.Equal(t, tt.valid, res.Valid, "value %v", tt.value)
			assert.Equal(t, tt.reason, res.Reason, "value %v", tt.value)
		})
	}
}

func TestDateValidationWindow(t *testing.T) {
	t.Parallel()

	// Timestamp late in the day; time of day must not matter.
	now := time.Date(2025, time.March, 1, 23, 59, 0, 0, time.UTC)
	params := func(d time.Time) unit.Params {
		return unit.Params{
			unit.KeyTimestamp:       now.Format(time.RFC3339),
			unit.KeyValueToValidate: d.Format(time.DateOnly),
		}
	}

	assert.True(t, run(t, "validation/date", params(now)).Valid, "today")
	assert.True(t, run(t, "validation/date", params(now.AddDate(0, 0, 60))).Valid, "today+60")
	assert.False(t, run(t, "validation/date", params(now.AddDate(0, 0, 61))).Valid, "today+61")
	assert.False(t, run(t, "validation/date", params(now.AddDate(0, 0, -1))).Valid, "yesterday")
	assert.False(t, run(t, "validation/date", unit.Params{unit.KeyValueToValidate: "not a date"}).Valid)
}

func TestUserUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		unit   string
		params unit.Params
		want   string
	}{
		{"branch", "user/branch-locator", unit.Params{"Dnis": "5051234567"}, "New Mexico"},
		{"branch fallback", "user/branch-locator", unit.Params{"Dnis": "9991234567"}, "main"},
		{"dynamic url", "user/build-dynamic-url", unit.Params{"extValue1": "user@example.com"}, "userId=user%40example.com&timestamp=1749983400000"},
		{"prompt", "user/build-prompt", unit.Params{"promptSequence": []any{"greeting", "authentication", "closing"}},
			"Hello and welcome. We will ask you to verify your details. Goodbye"},
		{"prompt default", "user/build-prompt", unit.Params{}, "Hello and welcome. Your current balance is available. Goodbye"},
		{"prompt unknown keys", "user/build-prompt", unit.Params{"promptSequence": []any{"greeting", "unknown", 7, "closing"}},
			"Hello and welcome. Goodbye"},
		{"days until", "user/calculate-days-until", unit.Params{"extValue1": "2025-06-22"}, "7"},
		{"days until past", "user/calculate-days-until", unit.Params{"extValue1": "2025-06-14T23:00:00Z"}, "-1"},
		{"days until invalid", "user/calculate-days-until", unit.Params{"extValue1": "soon"}, "NaN"},
		{"greeting morning", "user/dynamic-greeting", unit.Params{"CurrentHour": "6"}, "Good Morning"},
		{"greeting afternoon", "user/dynamic-greeting", unit.Params{"CurrentHour": 12}, "Good Afternoon"},
		{"greeting evening", "user/dynamic-greeting", unit.Params{"CurrentHour": "20"}, "Good Evening"},
		{"greeting missing", "user/dynamic-greeting", unit.Params{}, "Good Evening"},
		{"currency", "user/format-currency", unit.Params{"extValue1": "1234567.891"}, "$1,234,567.89"},
		{"currency invalid", "user/format-currency", unit.Params{"extValue1": "abc"}, "$NaN"},
		{"date", "user/format-date", unit.Params{"extValue1": "2025-12-25"}, "Thursday, December 25, 2025"},
		{"date epoch ms", "user/format-date", unit.Params{"extValue1": "1735084800000"}, "Wednesday, December 25, 2024"},
		{"date invalid", "user/format-date", unit.Params{"extValue1": "nope"}, "Invalid Date"},
		{"epoch", "user/get-epoch-timestamp", unit.Params{}, "1749983400"},
		{"epoch from timestamp", "user/get-epoch-timestamp", unit.Params{"Timestamp": "2025-01-01T00:00:00Z"}, "1735689600"},
		{"mask", "user/mask-sensitive-data", unit.Params{"extValue1": "1234567890"}, "****7890"},
		{"mask number", "user/mask-sensitive-data", unit.Params{"extValue1": 987654321}, "****4321"},
		{"plural one", "user/pluralize", unit.Params{"extValue1": "1"}, ""},
		{"plural many", "user/pluralize", unit.Params{"extValue1": "5"}, "s"},
		{"plural zero", "user/pluralize", unit.Params{"extValue1": 0}, "s"},
		{"plural invalid", "user/pluralize", unit.Params{"extValue1": "x"}, "s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := run(t, tt.unit, tt.params)
			assert.Equal(t, unit.KindFormatter, res.Kind)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestGreetingOffsetOption(t *testing.T) {
	t.Parallel()

	u, ok := units.New(units.WithGreetingOffset(10)).Lookup("user/dynamic-greeting")
	require.True(t, ok)

	// 6 + 10 = 16 local.
	res, err := u.Func(unit.Env{}, unit.Params{"CurrentHour": "6"})
	require.NoError(t, err)
	assert.Equal(t, "Good Afternoon", res.Text)
}

func TestGenerateTokenUnit(t *testing.T) {
	t.Parallel()

	res := run(t, "user/generate-jwt-token", unit.Params{"extValue1": "12345", "DialogID": "dialog-1"})

	svc, err := jwt.NewFromString("test-secret", jwt.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, svc.Parse(res.Text, &claims))
	assert.Equal(t, "12345", claims["userId"])
	assert.Equal(t, "dialog-1", claims["sessionId"])
	assert.InDelta(t, float64(fixedNow.UnixMilli()), claims["timestamp"], 0)
	assert.InDelta(t, float64(fixedNow.Add(time.Hour).Unix()), claims["exp"], 0)

	t.Run("without secret", func(t *testing.T) {
		t.Parallel()

		u, _ := units.New().Lookup("user/generate-jwt-token")
		_, err := u.Func(testEnv(), unit.Params{})
		require.ErrorIs(t, err, units.ErrMissingSecret)
	})

	t.Run("without signer", func(t *testing.T) {
		t.Parallel()

		u, _ := units.New(units.WithTokenSecret("s")).Lookup("user/generate-jwt-token")
		_, err := u.Func(unit.Env{}, unit.Params{})
		require.ErrorIs(t, err, unit.ErrNoCapability)
	})
}

func TestOutputUnits(t *testing.T) {
	t.Parallel()

	t.Run("low balance is not a failure", func(t *testing.T) {
		t.Parallel()

		res := run(t, "output/conditional-business-logic", unit.Params{
			"wsResponseCode": "200",
			"wsResponseBody": map[string]any{"balance": 0, "status": "active"},
		})
		assert.Equal(t, "low_balance", res.Fields["accountHealth"])
		assert.False(t, res.Fields.Failed())
	})

	t.Run("user not found", func(t *testing.T) {
		t.Parallel()

		res := run(t, "output/parse-user-profile", unit.Params{"wsResponseCode": "404"})
		assert.Equal(t, unit.Fields{
			"output1":        "failed",
			"firstName":      "Unknown",
			"lastName":       "Unknown",
			"memberSince":    "Unknown",
			"accountStatus":  "Unknown",
			"FailExitReason": "USER_NOT_FOUND",
		}, res.Fields)
	})

	t.Run("soap through the xml capability", func(t *testing.T) {
		t.Parallel()

		res := run(t, "output/parse-soap-xml", unit.Params{
			"wsResponseCode": "200",
			"wsResponseBody": `<soapenv:Envelope xmlns:soapenv="urn:e"><soapenv:Body><ns:CustomerResponse xmlns:ns="urn:c">` +
				`<Customer><CustomerId>C-9</CustomerId><Name>Ann</Name><Status>Active</Status></Customer>` +
				`</ns:CustomerResponse></soapenv:Body></soapenv:Envelope>`,
		})
		assert.Equal(t, "C-9", res.Fields["customerId"])
		assert.Equal(t, "0", res.Fields["accountBalance"])
	})

	t.Run("soap without the xml capability", func(t *testing.T) {
		t.Parallel()

		u, _ := units.Default().Lookup("output/parse-soap-xml")
		_, err := u.Func(unit.Env{}, unit.Params{"wsResponseCode": "200", "wsResponseBody": "<a/>"})
		require.ErrorIs(t, err, unit.ErrNoCapability)
	})
}
