package units

import (
	"log/slog"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/validator"
)

const valueField = unit.KeyValueToValidate

// validation wraps a rule builder into a Validator unit. Required runs first,
// so empty input always fails with validation.required.
func validation(name, description string, rules func(env unit.Env, p unit.Params, value string) []validator.Rule) Unit {
	return Unit{
		Name:        ValidationPrefix + name,
		Kind:        unit.KindValidator,
		Description: description,
		Func: func(env unit.Env, p unit.Params) (unit.Result, error) {
			value := p.String(valueField)
			all := append([]validator.Rule{validator.Required(valueField, value)}, rules(env, p, value)...)

			ok, reason := validator.First(all...)
			if !ok {
				env.Log().Debug("value rejected", slog.String("reason", reason))
			}
			return unit.Result{Kind: unit.KindValidator, Valid: ok, Reason: reason}, nil
		},
	}
}

func single(rule func(field, value string) validator.Rule) func(unit.Env, unit.Params, string) []validator.Rule {
	return func(_ unit.Env, _ unit.Params, value string) []validator.Rule {
		return []validator.Rule{rule(valueField, value)}
	}
}

func validationUnits() []Unit {
	return []Unit{
		validation("account-number", "8 to 12 digits starting with 1, 2 or 3; spaces and dashes ignored",
			single(validator.AccountNumber)),
		validation("amount", "plain amount in [10, 10000] with at most two decimals",
			func(_ unit.Env, _ unit.Params, value string) []validator.Rule {
				return validator.Amount(valueField, value)
			}),
		validation("credit-card", "Luhn checksum over 15 to 20 digits",
			single(validator.CreditCardNumber)),
		validation("custom-list", "one of checking, savings, credit, mortgage, loan",
			func(_ unit.Env, _ unit.Params, value string) []validator.Rule {
				return []validator.Rule{validator.InListCaseInsensitive(valueField, value, validator.AccountTypes)}
			}),
		validation("date", "date between today and today plus 60 days",
			func(env unit.Env, p unit.Params, value string) []validator.Rule {
				date, _ := unit.ParseTime(value)
				return []validator.Rule{validator.DateWithinDays(valueField, date, env.Now(p), validator.DefaultDateWindowDays)}
			}),
		validation("email", "address of the form local@domain.tld",
			single(validator.ValidEmail)),
		validation("landline", "Australian landline, 02/03/07/08 or +61 2/3/7/8",
			single(validator.AULandline)),
		validation("medicare", "Australian Medicare number with check digit",
			single(validator.MedicareNumber)),
		validation("mobile", "Australian mobile, 04 or +61 4",
			single(validator.AUMobile)),
		validation("phone", "US phone number with 10 digits",
			single(validator.USPhone)),
		validation("zip-code", "US ZIP or ZIP+4",
			single(validator.ZipCode)),
	}
}
