// Package extract applies ordered heuristics to recognized receipt text to
// populate a structured record of compliance-relevant fields.
//
// Every sub-extractor is independent and total: a non-match yields a null
// field, never an error. "No data found" is a routine outcome for noisy
// photographs, resolved by a human reviewer downstream.
package extract

import (
	"golang.org/x/text/unicode/norm"
)

// Fields is the structured record extracted from one receipt. Every key is
// always present in the JSON form; absent data is null (or an empty code
// list), never an omitted key.
type Fields struct {
	Total         *string  `json:"total"`
	Date          *string  `json:"date"`
	Vendor        *string  `json:"vendor"`
	GSTIN         *string  `json:"gstin"`
	InvoiceNumber *string  `json:"invoice_number"`
	HSNCodes      []string `json:"hsn_codes"`
	CGST          *string  `json:"cgst"`
	SGST          *string  `json:"sgst"`
	IGST          *string  `json:"igst"`
}

// Parse extracts all fields from recognized text. It is defined for any
// input, including the empty string, and never panics; each field is
// independently null on non-match.
func Parse(text string) Fields {
	// Fold compatibility forms (full-width digits, ligatures) the engine
	// sometimes emits before pattern matching.
	text = norm.NFKC.String(text)

	fields := Fields{
		Total:         extractTotal(text),
		Date:          extractDate(text),
		Vendor:        extractVendor(text),
		GSTIN:         extractGSTIN(text),
		InvoiceNumber: extractInvoiceNumber(text),
		HSNCodes:      extractHSNCodes(text),
	}
	taxes := extractTaxBreakdown(text)
	fields.CGST = taxes.cgst
	fields.SGST = taxes.sgst
	fields.IGST = taxes.igst
	return fields
}

func strPtr(s string) *string { return &s }
