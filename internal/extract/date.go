package extract

import "regexp"

// datePatterns are tried in priority order; the first syntactic match wins
// regardless of document position. No calendar validation is performed.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{4})\b`),                      // DD/MM/YYYY or DD-MM-YYYY
	regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2})\b`),                      // DD/MM/YY
	regexp.MustCompile(`\b(\d{2}\s+[A-Za-z]{3}\s+\d{4})\b`),                      // DD Mon YYYY
	regexp.MustCompile(`\b(\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`),                      // YYYY-MM-DD
	regexp.MustCompile(`(?i)(?:date|dated)[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), // labeled form
}

// extractDate returns the first captured date at least six characters long.
func extractDate(text string) *string {
	for _, pattern := range datePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m[1]) >= 6 {
			return strPtr(m[1])
		}
	}
	return nil
}
