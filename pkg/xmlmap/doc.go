// Package xmlmap implements the parseXML host capability: it turns an XML
// document (typically a SOAP envelope) into nested maps keyed by the element
// names exactly as written, prefixes included.
//
//	<soapenv:Envelope><soapenv:Body><ns:CustomerResponse>
//	  <Customer><CustomerId>12345</CustomerId></Customer>
//	</ns:CustomerResponse></soapenv:Body></soapenv:Envelope>
//
// becomes
//
//	{"soapenv:Envelope": {"soapenv:Body": {"ns:CustomerResponse":
//	    {"Customer": {"CustomerId": "12345"}}}}}
//
// Mapping rules:
//
//   - An element with neither child elements nor attributes maps to its
//     trimmed text.
//   - Otherwise it maps to a map[string]any holding its children, its
//     attributes under "@name" and any non-blank text under "#text".
//   - Repeated sibling elements collapse into a []any in document order.
//   - Namespace declarations (xmlns, xmlns:*) are dropped.
package xmlmap
