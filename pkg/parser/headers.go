package parser

import "github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"

// Response headers read by ResponseHeaders. Names match exactly.
const (
	HeaderAuthToken          = "X-Auth-Token"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderSessionID          = "X-Session-ID"
)

// ResponseHeadersDefaults is the failure output of ResponseHeaders.
var ResponseHeadersDefaults = unit.Fields{
	"status":             StatusFailed,
	"authToken":          "",
	"rateLimitRemaining": "0",
	"sessionId":          "",
	"bodyData":           "",
}

// ResponseHeaders extracts the auth, rate-limit and session headers plus
// wsResponseBody.message.
func ResponseHeaders(p unit.Params) unit.Fields {
	if !Succeeded(p) {
		return failure(ResponseHeadersDefaults, ReasonHeaderMissing)
	}

	header := func(name, def string) string {
		if v, ok := p.Header(name); ok && v != "" {
			return v
		}
		return def
	}

	return unit.Fields{
		"status":             StatusSuccess,
		"authToken":          header(HeaderAuthToken, ""),
		"rateLimitRemaining": header(HeaderRateLimitRemaining, "0"),
		"sessionId":          header(HeaderSessionID, ""),
		"bodyData":           p.LookupString(unit.KeyResponseBody+".message", ""),
	}
}
