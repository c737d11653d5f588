package parser

import (
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// CustomerPath locates the customer record inside a parsed SOAP envelope.
const CustomerPath = "soapenv:Envelope.soapenv:Body.ns:CustomerResponse.Customer"

// SOAPCustomerDefaults is the failure output of SOAPCustomer.
var SOAPCustomerDefaults = unit.Fields{
	"status":         StatusFailed,
	"customerId":     "",
	"customerName":   "",
	"customerStatus": "",
	"accountBalance": "0",
}

// SOAPCustomer parses the XML body with parseXML and reads the Customer
// record. Non-200 responses, unparseable documents and envelopes without a
// Customer element all fail with XML_PARSE_ERROR. A body that is already a
// map is used as the parsed document. A nil parseXML is an error.
func SOAPCustomer(p unit.Params, parseXML unit.XMLFunc) (unit.Fields, error) {
	if !Succeeded(p) {
		return failure(SOAPCustomerDefaults, ReasonXMLParseError), nil
	}

	var doc map[string]any
	switch body := p[unit.KeyResponseBody].(type) {
	case string:
		if parseXML == nil {
			return nil, unit.ErrNoCapability
		}
		parsed, err := parseXML(body)
		if err != nil {
			return failure(SOAPCustomerDefaults, ReasonXMLParseError), nil
		}
		doc = parsed
	case map[string]any:
		doc = body
	default:
		return failure(SOAPCustomerDefaults, ReasonXMLParseError), nil
	}

	customer, ok := unit.LookupPath(doc, CustomerPath)
	if !ok {
		return failure(SOAPCustomerDefaults, ReasonXMLParseError), nil
	}

	field := func(key, def string) string {
		v, ok := unit.LookupPath(customer, key)
		if !ok {
			return def
		}
		if s, _ := unit.Stringify(v); s != "" {
			return s
		}
		return def
	}

	return unit.Fields{
		"status":         StatusSuccess,
		"customerId":     field("CustomerId", ""),
		"customerName":   field("Name", ""),
		"customerStatus": field("Status", ""),
		"accountBalance": field("Balance", "0"),
	}, nil
}
