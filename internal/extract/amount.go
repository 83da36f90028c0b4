package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// amountPattern matches decimal amounts with exactly two fraction digits,
// allowing thousands separators.
var amountPattern = regexp.MustCompile(`([0-9,]+\.\d{2})`)

// totalKeywords mark lines that carry the receipt total.
var totalKeywords = []string{"total", "grand total", "amount due", "net amount", "final amount"}

const (
	minPlausibleAmount = 1
	maxPlausibleAmount = 100000
)

// extractTotal finds the total amount with a prioritized strategy: the
// largest plausible amount on a keyword line, falling back to the largest
// plausible amount anywhere in the text.
func extractTotal(text string) *string {
	var candidates []float64
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		keyworded := false
		for _, kw := range totalKeywords {
			if strings.Contains(lower, kw) {
				keyworded = true
				break
			}
		}
		if !keyworded {
			continue
		}
		candidates = append(candidates, plausibleAmounts(line)...)
	}
	if len(candidates) == 0 {
		candidates = plausibleAmounts(text)
	}
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, a := range candidates[1:] {
		if a > best {
			best = a
		}
	}
	return strPtr(fmt.Sprintf("%.2f", best))
}

// plausibleAmounts returns all parsed amounts in s within the plausible
// receipt range, commas stripped.
func plausibleAmounts(s string) []float64 {
	var out []float64
	for _, m := range amountPattern.FindAllString(s, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			continue
		}
		if v >= minPlausibleAmount && v <= maxPlausibleAmount {
			out = append(out, v)
		}
	}
	return out
}

// taxPattern matches a tax label with an optional percentage annotation and
// a two-decimal amount, e.g. "CGST @ 9%: 1350.00".
var taxPattern = regexp.MustCompile(`(?i)(CGST|SGST|IGST)\s*(?:@\s*[\d.]+%?)?\s*[:\-]?\s*[₹$]?\s*([0-9,]+\.\d{2})`)

type taxBreakdown struct {
	cgst *string
	sgst *string
	igst *string
}

// extractTaxBreakdown finds CGST, SGST and IGST amounts, keeping only the
// first occurrence per tax type.
func extractTaxBreakdown(text string) taxBreakdown {
	var taxes taxBreakdown
	for _, m := range taxPattern.FindAllStringSubmatch(text, -1) {
		amount := strings.ReplaceAll(m[2], ",", "")
		switch strings.ToLower(m[1]) {
		case "cgst":
			if taxes.cgst == nil {
				taxes.cgst = strPtr(amount)
			}
		case "sgst":
			if taxes.sgst == nil {
				taxes.sgst = strPtr(amount)
			}
		case "igst":
			if taxes.igst == nil {
				taxes.igst = strPtr(amount)
			}
		}
	}
	return taxes
}
