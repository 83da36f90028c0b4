package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// vendorSkipKeywords disqualify a line from being the vendor name.
var vendorSkipKeywords = []string{"receipt", "bill", "invoice", "date", "time", "total", "amount"}

// businessIndicators strongly suggest a line is a business name.
var businessIndicators = []string{
	"restaurant", "cafe", "coffee", "shop", "store", "market", "mart", "ltd", "inc", "pvt",
}

var letterRunPattern = regexp.MustCompile(`[a-zA-Z]{3,}`)

// extractVendor finds the most likely vendor name: a business-looking line
// among the first five non-empty lines, falling back to the first non-empty,
// non-numeric line anywhere.
func extractVendor(text string) *string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	head := lines
	if len(head) > 5 {
		head = head[:5]
	}
	for _, line := range head {
		lower := strings.ToLower(line)
		if containsAny(lower, vendorSkipKeywords) {
			continue
		}
		if alphabeticCount(line)*2 < len(line) {
			continue
		}
		if len(line) < 3 {
			continue
		}
		if containsAny(lower, businessIndicators) {
			return strPtr(line)
		}
		if len(line) <= 50 && letterRunPattern.MatchString(line) {
			return strPtr(line)
		}
	}

	for _, line := range lines {
		if len(line) >= 3 && !isAllDigits(line) {
			return strPtr(line)
		}
	}
	return nil
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// alphabeticCount counts ASCII letters and whitespace, the characters a
// plausible business name is mostly made of.
func alphabeticCount(s string) int {
	n := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
