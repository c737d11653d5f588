// Package validator provides the rule set behind the IVR validation units:
// checksum (Luhn, Medicare), pattern (phone, zip, email), range (amount,
// date window) and list-membership checks.
//
// Every rule constructor returns a Rule value that couples a boolean Check
// with translation-friendly error metadata. Apply aggregates all failures into
// ValidationErrors; First stops at the first failure and returns its
// translation key, which the validation units report as the failure reason.
//
// # Usage
//
//	ok, reason := validator.First(
//	    validator.Required("card", input),
//	    validator.CreditCardNumber("card", input),
//	)
//	// ok == false, reason == "validation.credit_card" for a bad checksum
//
// # Normalization
//
// Rules strip formatting before checking, following the host platform's
// scripts: card and Medicare numbers drop every non-digit, account numbers and
// zip codes drop spaces and dashes, Australian phone numbers keep digits and
// '+'. Anything left over that does not match makes the value invalid.
//
// Date rules compare at date-only granularity in UTC; see DateOnly.
package validator
