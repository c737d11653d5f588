package parser

import (
	"strconv"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// PaymentOnTime marks a payment that counts toward onTimePayments.
const PaymentOnTime = "onTime"

// PaymentHistoryDefaults is the failure output of PaymentHistory.
var PaymentHistoryDefaults = unit.Fields{
	"status":            StatusFailed,
	"totalPayments":     "0",
	"totalAmount":       "0.00",
	"onTimePayments":    "0",
	"lastPaymentDate":   "Unknown",
	"lastPaymentAmount": "0.00",
}

// PaymentHistory summarizes wsResponseBody.paymentHistory, newest first.
// Entries with a non-numeric amount count as payments of zero.
func PaymentHistory(p unit.Params) unit.Fields {
	if !Succeeded(p) {
		return failure(PaymentHistoryDefaults, ReasonServiceError)
	}

	payments := unit.AsSlice(p.Body()["paymentHistory"])

	var (
		total  float64
		onTime int
	)
	for _, item := range payments {
		payment := unit.AsMap(item)
		if amount, ok := unit.ToFloat(payment["amount"]); ok {
			total += amount
		}
		if status, _ := payment["status"].(string); status == PaymentOnTime {
			onTime++
		}
	}

	lastDate, lastAmount := "No payments", "0.00"
	if len(payments) > 0 {
		first := unit.AsMap(payments[0])
		if s, _ := unit.Stringify(first["date"]); s != "" {
			lastDate = s
		}
		if amount, ok := unit.ToFloat(first["amount"]); ok {
			lastAmount = fixed2(amount)
		}
	}

	return unit.Fields{
		"status":            StatusSuccess,
		"totalPayments":     strconv.Itoa(len(payments)),
		"totalAmount":       fixed2(total),
		"onTimePayments":    strconv.Itoa(onTime),
		"lastPaymentDate":   lastDate,
		"lastPaymentAmount": lastAmount,
	}
}
