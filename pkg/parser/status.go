package parser

import (
	"strconv"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// SuccessStatus is the only response code parsers treat as success.
const SuccessStatus = "200"

// Status values written to the "status" field.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Failure reasons.
const (
	ReasonBadRequest          = "BAD_REQUEST"
	ReasonUnauthorized        = "UNAUTHORIZED"
	ReasonForbidden           = "FORBIDDEN"
	ReasonNotFound            = "NOT_FOUND"
	ReasonRequestTimeout      = "REQUEST_TIMEOUT"
	ReasonTooManyRequests     = "TOO_MANY_REQUESTS"
	ReasonInternalServerError = "INTERNAL_SERVER_ERROR"
	ReasonBadGateway          = "BAD_GATEWAY"
	ReasonServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ReasonGatewayTimeout      = "GATEWAY_TIMEOUT"
	ReasonUnknownError        = "UNKNOWN_ERROR"
	ReasonServiceError        = "SERVICE_ERROR"
	ReasonHeaderMissing       = "HEADER_MISSING"
	ReasonXMLParseError       = "XML_PARSE_ERROR"
	ReasonUserNotFound        = "USER_NOT_FOUND"
)

var statusReasons = map[string]string{
	"400": ReasonBadRequest,
	"401": ReasonUnauthorized,
	"403": ReasonForbidden,
	"404": ReasonNotFound,
	"408": ReasonRequestTimeout,
	"429": ReasonTooManyRequests,
	"500": ReasonInternalServerError,
	"502": ReasonBadGateway,
	"503": ReasonServiceUnavailable,
	"504": ReasonGatewayTimeout,
}

// ReasonForStatus maps an HTTP status code to its failure reason. Unlisted
// codes map to UNKNOWN_ERROR.
func ReasonForStatus(code string) string {
	if reason, ok := statusReasons[code]; ok {
		return reason
	}
	return ReasonUnknownError
}

// Succeeded reports whether the response code is exactly "200".
func Succeeded(p unit.Params) bool {
	return p.StatusCode() == SuccessStatus
}

// failure copies defaults and adds the sentinel.
func failure(defaults unit.Fields, reason string) unit.Fields {
	out := defaults.Clone()
	out[unit.FailExitReasonKey] = reason
	return out
}

// fixed2 renders n with two decimals the way Number.prototype.toFixed does.
func fixed2(n float64) string {
	return strconv.FormatFloat(n, 'f', 2, 64)
}
