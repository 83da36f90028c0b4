package extract

import (
	"regexp"
	"strings"
)

// invoicePattern matches a labeled invoice/bill/receipt number followed by
// an alphanumeric token.
var invoicePattern = regexp.MustCompile(`(?i)(?:Invoice\s*No|Inv\s*No|Bill\s*No|Receipt\s*#)\s*[:\-]?\s*([A-Za-z0-9/-]+)`)

// extractInvoiceNumber returns the labeled invoice token when its length is
// between 2 and 30 characters.
func extractInvoiceNumber(text string) *string {
	m := invoicePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	token := strings.TrimSpace(m[1])
	if len(token) < 2 || len(token) > 30 {
		return nil
	}
	return strPtr(token)
}

// hsnPattern matches standalone runs of exactly 4, 6 or 8 digits, the usual
// lengths of HSN/SAC classification codes.
var hsnPattern = regexp.MustCompile(`\b(\d{4}|\d{6}|\d{8})\b`)

// extractHSNCodes collects candidate HSN/SAC codes, de-duplicated and in no
// guaranteed order. Codes starting with 19 or 20 are dropped to suppress
// four-digit years; the heuristic has known false positives and negatives.
func extractHSNCodes(text string) []string {
	seen := make(map[string]struct{})
	codes := make([]string, 0, 8)
	for _, m := range hsnPattern.FindAllString(text, -1) {
		if strings.HasPrefix(m, "19") || strings.HasPrefix(m, "20") {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		codes = append(codes, m)
	}
	return codes
}
