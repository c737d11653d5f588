package parser

import (
	"strconv"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// Account health classifications and their recommended actions.
const (
	HealthOverdrawn  = "overdrawn"
	HealthLowBalance = "low_balance"
	HealthGood       = "good"
	HealthFrozen     = "frozen"
	HealthUnknown    = "unknown"

	ActionImmediatePayment = "immediate_payment"
	ActionAddFunds         = "add_funds"
	ActionNone             = "none"
	ActionContactSupport   = "contact_support"
	ActionVerifyAccount    = "verify_account"
	ActionRetry            = "retry"

	AccountActive = "active"
	AccountFrozen = "frozen"
)

// LowBalanceThreshold separates low_balance from good for active accounts.
const LowBalanceThreshold = 100

// AccountHealthDefaults is the failure output of AccountHealth.
var AccountHealthDefaults = unit.Fields{
	"status":            StatusFailed,
	"currentBalance":    "0.00",
	"accountStatus":     "unknown",
	"accountHealth":     HealthUnknown,
	"recommendedAction": ActionRetry,
	"canTransact":       "false",
}

// Classify applies the account health rules in order: negative balance,
// active below threshold, active at or above threshold, frozen, otherwise
// unknown.
func Classify(balance float64, status string) (health, action string) {
	switch {
	case balance < 0:
		return HealthOverdrawn, ActionImmediatePayment
	case balance < LowBalanceThreshold && status == AccountActive:
		return HealthLowBalance, ActionAddFunds
	case balance >= LowBalanceThreshold && status == AccountActive:
		return HealthGood, ActionNone
	case status == AccountFrozen:
		return HealthFrozen, ActionContactSupport
	default:
		return HealthUnknown, ActionVerifyAccount
	}
}

// AccountHealth classifies the account in wsResponseBody {balance, status}.
// A success response without a numeric balance is classified unknown with a
// zero balance.
func AccountHealth(p unit.Params) unit.Fields {
	if !Succeeded(p) {
		return failure(AccountHealthDefaults, ReasonServiceError)
	}

	body := p.Body()
	status := p.LookupString(unit.KeyResponseBody+".status", "unknown")
	balance, ok := unit.ToFloat(body["balance"])
	if !ok {
		return unit.Fields{
			"status":            StatusSuccess,
			"currentBalance":    "0.00",
			"accountStatus":     status,
			"accountHealth":     HealthUnknown,
			"recommendedAction": ActionVerifyAccount,
			"canTransact":       "false",
		}
	}

	health, action := Classify(balance, status)
	return unit.Fields{
		"status":            StatusSuccess,
		"currentBalance":    fixed2(balance),
		"accountStatus":     status,
		"accountHealth":     health,
		"recommendedAction": action,
		"canTransact":       strconv.FormatBool(status == AccountActive && balance >= 0),
	}
}

// AccountBalanceDefaults is the failure output of AccountBalance.
var AccountBalanceDefaults = unit.Fields{
	"status":         StatusFailed,
	"accountType":    "unknown",
	"balance":        "0.00",
	"dueDate":        "unknown",
	"minimumPayment": "0.00",
}

// AccountBalance extracts accountType and balanceDetails {balance, dueDate,
// minimumPayment}. Amounts are two-decimal strings; a missing or non-numeric
// amount reads as "0.00".
func AccountBalance(p unit.Params) unit.Fields {
	if !Succeeded(p) {
		return failure(AccountBalanceDefaults, ReasonServiceError)
	}

	const details = unit.KeyResponseBody + ".balanceDetails."
	return unit.Fields{
		"status":         StatusSuccess,
		"accountType":    p.LookupString(unit.KeyResponseBody+".accountType", "unknown"),
		"balance":        amount(p, details+"balance"),
		"dueDate":        p.LookupString(details+"dueDate", "unknown"),
		"minimumPayment": amount(p, details+"minimumPayment"),
	}
}

func amount(p unit.Params, path string) string {
	v, _ := p.Lookup(path)
	n, ok := unit.ToFloat(v)
	if !ok {
		n = 0
	}
	return fixed2(n)
}
