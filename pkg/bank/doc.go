// Package bank loads and runs unit test banks.
//
// A bank is a YAML document listing units and the cases each must pass:
//
//	version: "1.0.0"
//	units:
//	  - name: credit-card
//	    native: validation/credit-card
//	    cases:
//	      - name: visa
//	        params: {valueToValidate: "4532015112830366"}
//	        expect: true
//	  - name: shout
//	    kind: formatter
//	    source: strings.ToUpper(params.String("extValue1"))
//	    cases:
//	      - name: upper
//	        params: {extValue1: abc}
//	        expect: ABC
//
// Documents are checked against an embedded JSON Schema and the version must
// satisfy ^1. A unit is either a catalog unit (native) or script source
// (source, or file relative to the bank). Runner executes every case through
// a harness.Harness and collects a Report that renders as Markdown or JSON.
//
// Parser expectations are matched as a subset: every expected field must be
// present with the same value, extra fields are ignored unless the case lists
// them under expectAbsent.
package bank
