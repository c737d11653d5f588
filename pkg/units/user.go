package units

import (
	"math"
	"strconv"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/formatter"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

func user(name, description string, fn func(env unit.Env, p unit.Params) (string, error)) Unit {
	return Unit{
		Name:        UserPrefix + name,
		Kind:        unit.KindFormatter,
		Description: description,
		Func: func(env unit.Env, p unit.Params) (unit.Result, error) {
			s, err := fn(env, p)
			if err != nil {
				return unit.Result{}, err
			}
			return unit.Text(s), nil
		},
	}
}

// promptSequence reads promptSequence as a list of keys. Non-string entries
// become blanks, which Prompt drops.
func promptSequence(p unit.Params) []string {
	raw := p.Slice(unit.KeyPromptSequence)
	keys := make([]string, len(raw))
	for i, v := range raw {
		keys[i], _ = v.(string)
	}
	return keys
}

func userUnits(cfg *config) []Unit {
	return []Unit{
		user("branch-locator", "branch name from the DNIS prefix",
			func(_ unit.Env, p unit.Params) (string, error) {
				return formatter.BranchFor(p.String(unit.KeyDnis)), nil
			}),
		user("build-dynamic-url", "userId and timestamp query string",
			func(env unit.Env, p unit.Params) (string, error) {
				return formatter.DynamicURL(p.ExtValue(1), env.Now(p)), nil
			}),
		user("build-prompt", "spoken prompt stitched from promptSequence segments",
			func(_ unit.Env, p unit.Params) (string, error) {
				return formatter.Prompt(cfg.prompts, p.String(unit.KeyLocale), promptSequence(p)), nil
			}),
		user("calculate-days-until", "whole days from today to extValue1",
			func(env unit.Env, p unit.Params) (string, error) {
				target, ok := p.Time("extValue1")
				if !ok {
					return formatter.NotANumber, nil
				}
				return strconv.Itoa(formatter.DaysUntil(target, env.Now(p))), nil
			}),
		user("dynamic-greeting", "time-of-day greeting from CurrentHour",
			func(_ unit.Env, p unit.Params) (string, error) {
				hour, ok := p.Int(unit.KeyCurrentHour)
				if !ok {
					return formatter.GoodEvening, nil
				}
				return formatter.Greeting(hour, cfg.greetingOffset), nil
			}),
		user("format-currency", "extValue1 as $1,234.56",
			func(_ unit.Env, p unit.Params) (string, error) {
				amount, ok := p.Float("extValue1")
				if !ok {
					amount = math.NaN()
				}
				return formatter.Currency(amount), nil
			}),
		user("format-date", "extValue1 as Thursday, December 25, 2025",
			func(_ unit.Env, p unit.Params) (string, error) {
				t, _ := p.Time("extValue1")
				return formatter.LongDate(t), nil
			}),
		user("generate-jwt-token", "HS256 token for extValue1 and the dialog, valid for one hour",
			func(env unit.Env, p unit.Params) (string, error) {
				if cfg.tokenSecret == "" {
					return "", ErrMissingSecret
				}
				return formatter.Token(env.SignJWT, cfg.tokenSecret, p.ExtValue(1), p.String(unit.KeyDialogID), env.Now(p))
			}),
		user("get-epoch-timestamp", "current Unix time in seconds",
			func(env unit.Env, p unit.Params) (string, error) {
				return formatter.EpochSeconds(env.Now(p)), nil
			}),
		user("mask-sensitive-data", "extValue1 masked to its last four characters",
			func(_ unit.Env, p unit.Params) (string, error) {
				return formatter.Mask(p.ExtValue(1)), nil
			}),
		user("pluralize", "plural suffix for the count in extValue1",
			func(_ unit.Env, p unit.Params) (string, error) {
				count, ok := p.Int("extValue1")
				if !ok {
					return formatter.Plural(0), nil
				}
				return formatter.Plural(count), nil
			}),
	}
}
