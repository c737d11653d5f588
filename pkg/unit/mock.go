package unit

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// MockParams builds a representative Input Context for a unit of kind k at
// instant now, matching what the platform supplies in a test session.
func MockParams(k Kind, now time.Time) Params {
	now = now.UTC()
	p := Params{
		KeyLocale:        "en-US",
		KeyTestMode:      true,
		KeyStep:          1,
		KeyTimestamp:     now.Format("2006-01-02T15:04:05.000Z07:00"),
		KeyCurrentHour:   strconv.Itoa(now.Hour()),
		KeyCurrentTime:   strconv.Itoa(now.Minute()),
		KeyDialogID:      uuid.NewString(),
		KeyDialogGroupID: uuid.NewString(),
	}

	switch k {
	case KindValidator:
		p[KeyValueToValidate] = "1234567890"
	case KindFormatter:
		p[KeyAni] = "5551234567"
		p[KeyDnis] = "5059876543"
		p["extValue1"] = "12345"
		p["extValue2"] = "2025-12-25"
		p["extValue3"] = "1234.56"
	case KindParser:
		p[KeyResponseCode] = "200"
		p[KeyResponseBody] = map[string]any{
			"accountType": "checking",
			"balanceDetails": map[string]any{
				"balance":        1234.56,
				"dueDate":        "2025-12-25",
				"minimumPayment": 50.0,
			},
			"status": "active",
		}
		p[KeyResponseHeaders] = []any{
			map[string]any{"name": "Content-Type", "value": "application/json"},
			map[string]any{"name": "X-Auth-Token", "value": "abc123xyz789"},
			map[string]any{"name": "X-Session-ID", "value": "session-999"},
		}
	}
	return p
}

// MockErrorParams builds the Input Context of a failed web-service call.
func MockErrorParams() Params {
	return Params{
		KeyResponseCode: "404",
		KeyResponseBody: map[string]any{
			"error":   "Not Found",
			"message": "Account not found",
		},
		KeyResponseHeaders:      []any{},
		KeyValidationResult:     "fail",
		KeyValidationFailReason: "preBuiltFailed-CreditCard",
		KeyErrors:               2,
		KeyWrongInput:           1,
	}
}
