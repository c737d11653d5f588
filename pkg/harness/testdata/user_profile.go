package main

import "ocp"

func reason(code string) string {
	switch code {
	case "400":
		return "BAD_REQUEST"
	case "401":
		return "UNAUTHORIZED"
	case "404":
		return "USER_NOT_FOUND"
	case "500":
		return "INTERNAL_SERVER_ERROR"
	}
	return "UNKNOWN_ERROR"
}

func Run(params ocp.Params) any {
	if params.StatusCode() != "200" {
		return map[string]string{
			"output1":        "failed",
			"firstName":      "Unknown",
			"lastName":       "Unknown",
			"memberSince":    "Unknown",
			"accountStatus":  "Unknown",
			"FailExitReason": reason(params.StatusCode()),
		}
	}

	body := "wsResponseBody."
	return map[string]any{
		"output1":       "success",
		"firstName":     params.LookupString(body+"firstName", "Unknown"),
		"lastName":      params.LookupString(body+"lastName", "Unknown"),
		"memberSince":   params.LookupString(body+"membershipDate", "Unknown"),
		"accountStatus": params.LookupString(body+"status", "Unknown"),
	}
}
