// Package units binds the validator, formatter and parser algorithms into
// named, natively compiled units with the fixed unit.Func shape.
//
// Names follow the platform's three folders:
//
//	validation/credit-card      Validator, reads valueToValidate
//	user/format-currency        Formatter, reads extValue1
//	output/parse-user-profile   Parser, reads wsResponseCode and wsResponseBody
//
// A Catalog is immutable after construction and safe for concurrent use.
// Default returns the catalog with default options; New accepts options for
// the greeting offset and the token secret.
//
//	cat := units.Default()
//	u, ok := cat.Lookup("validation/credit-card")
//	res, err := u.Func(unit.Env{}, unit.Params{"valueToValidate": "4532015112830366"})
//	// res.Valid == true
package units
