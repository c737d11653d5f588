package parser

import "github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"

// UnknownValue is the placeholder for missing profile fields.
const UnknownValue = "Unknown"

// UserProfileDefaults is the failure output of UserProfile.
var UserProfileDefaults = unit.Fields{
	"output1":       StatusFailed,
	"firstName":     UnknownValue,
	"lastName":      UnknownValue,
	"memberSince":   UnknownValue,
	"accountStatus": UnknownValue,
}

var profileReasons = map[string]string{
	"400": ReasonBadRequest,
	"401": ReasonUnauthorized,
	"404": ReasonUserNotFound,
	"500": ReasonInternalServerError,
}

// ProfileReason is the user-profile variant of ReasonForStatus: 404 means
// USER_NOT_FOUND and only 400, 401, 404 and 500 are distinguished.
func ProfileReason(code string) string {
	if reason, ok := profileReasons[code]; ok {
		return reason
	}
	return ReasonUnknownError
}

// UserProfile reads firstName, lastName, membershipDate and status.
func UserProfile(p unit.Params) unit.Fields {
	if !Succeeded(p) {
		return failure(UserProfileDefaults, ProfileReason(p.StatusCode()))
	}

	const body = unit.KeyResponseBody + "."
	return unit.Fields{
		"output1":       StatusSuccess,
		"firstName":     p.LookupString(body+"firstName", UnknownValue),
		"lastName":      p.LookupString(body+"lastName", UnknownValue),
		"memberSince":   p.LookupString(body+"membershipDate", UnknownValue),
		"accountStatus": p.LookupString(body+"status", UnknownValue),
	}
}
