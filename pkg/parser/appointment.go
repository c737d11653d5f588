package parser

import (
	"strconv"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// AppointmentDefaults is the output when there is no appointment to report.
var AppointmentDefaults = unit.Fields{
	"hasAppointment":      "false",
	"appointmentDate":     "",
	"appointmentTime":     "",
	"appointmentType":     "",
	"appointmentLocation": "",
	"totalAppointments":   "0",
}

// AppointmentList reports the first entry of wsResponseBody.appointments.
// hasAppointment is "true", "false" (empty list) or "error" (failed call).
func AppointmentList(p unit.Params) unit.Fields {
	if !Succeeded(p) {
		out := failure(AppointmentDefaults, ReasonServiceUnavailable)
		out["hasAppointment"] = "error"
		return out
	}

	list := unit.AsSlice(p.Body()["appointments"])
	if len(list) == 0 {
		return AppointmentDefaults.Clone()
	}

	next := unit.AsMap(list[0])
	field := func(key string) string {
		s, _ := unit.Stringify(next[key])
		return s
	}

	return unit.Fields{
		"hasAppointment":      "true",
		"appointmentDate":     field("date"),
		"appointmentTime":     field("time"),
		"appointmentType":     field("type"),
		"appointmentLocation": field("location"),
		"totalAppointments":   strconv.Itoa(len(list)),
	}
}
