package units

import (
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/parser"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

func output(name, description string, parse func(unit.Params) unit.Fields) Unit {
	return Unit{
		Name:        OutputPrefix + name,
		Kind:        unit.KindParser,
		Description: description,
		Func: func(_ unit.Env, p unit.Params) (unit.Result, error) {
			return unit.Output(parse(p)), nil
		},
	}
}

func outputUnits() []Unit {
	return []Unit{
		output("conditional-business-logic", "account health and recommended action", parser.AccountHealth),
		output("parse-account-balance", "account type and balance details", parser.AccountBalance),
		output("parse-appointment-list", "next appointment and appointment count", parser.AppointmentList),
		output("parse-payment-history", "payment totals and last payment", parser.PaymentHistory),
		output("parse-response-headers", "auth, rate-limit and session headers", parser.ResponseHeaders),
		output("parse-user-profile", "name, member-since date and account status", parser.UserProfile),
		{
			Name:        OutputPrefix + "parse-soap-xml",
			Kind:        unit.KindParser,
			Description: "customer record from a SOAP envelope",
			Func: func(env unit.Env, p unit.Params) (unit.Result, error) {
				fields, err := parser.SOAPCustomer(p, env.ParseXML)
				if err != nil {
					return unit.Result{}, err
				}
				return unit.Output(fields), nil
			},
		},
	}
}
