package extract

import (
	"regexp"
	"strings"
)

// gstinPattern is the 15-character structural form of a GSTIN: state code,
// PAN, entity number, the literal Z, and a checksum character.
var (
	gstinPattern        = regexp.MustCompile(`\b([0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z])\b`)
	labeledGSTINPattern = regexp.MustCompile(`(?i)(?:GSTIN|GST\s*No|GST\s*Number)\s*[:\-]?\s*([0-9]{2}[A-Za-z]{5}[0-9]{4}[A-Za-z][1-9A-Za-z]Z[0-9A-Za-z])\b`)
	gstinSeparators     = regexp.MustCompile(`[\s-]`)
)

// gstinAlphabet is the 36-symbol alphabet the checksum is computed over.
const gstinAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// extractGSTIN returns the first structurally-matched, checksum-valid GSTIN.
// Labeled occurrences are preferred over bare matches; checksum failures are
// rejected and scanning continues.
func extractGSTIN(text string) *string {
	for _, pattern := range []*regexp.Regexp{labeledGSTINPattern, gstinPattern} {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			candidate := strings.ToUpper(gstinSeparators.ReplaceAllString(m[1], ""))
			if ValidGSTIN(candidate) {
				return strPtr(candidate)
			}
		}
	}
	return nil
}

// ValidGSTIN validates a GSTIN's built-in checksum character. Each of the
// first 14 characters maps to its index in the 36-symbol alphabet and is
// multiplied by an alternating factor of 1 or 2; the quotient and remainder
// of each product divided by 36 are summed, and the check character is
// alphabet[(36 - sum mod 36) mod 36]. Strings of the wrong length or with
// characters outside the alphabet are invalid.
func ValidGSTIN(gstin string) bool {
	if len(gstin) != 15 {
		return false
	}
	sum := 0
	for i := range 14 {
		digit := strings.IndexByte(gstinAlphabet, gstin[i])
		if digit < 0 {
			return false
		}
		product := digit * ((i % 2) + 1)
		sum += product/36 + product%36
	}
	check := gstinAlphabet[(36-sum%36)%36]
	return gstin[14] == check
}
