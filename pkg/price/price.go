// Package price reduces free-form storefront price text to a canonical form.
package price

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	priceRegex      = regexp.MustCompile(`[$₹]?\d+(?:,\d{3})*(?:\.\d{2})?`)
	currencyRegex   = regexp.MustCompile(`[$₹,\s]`)
)

// Normalize reduces price text to a canonical price string: an optional
// currency symbol followed by a decimal number with no thousands separators.
// Returns "" when the text contains no price. Idempotent: canonical strings
// normalize to themselves.
func Normalize(text string) string {
	text = whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
	m := priceRegex.FindString(text)
	if m == "" {
		return ""
	}
	return strings.ReplaceAll(m, ",", "")
}

// Number coerces price text to its numeric value. ok is false when the text
// holds no parseable price; that means "no price", never a crash.
func Number(text string) (float64, bool) {
	stripped := currencyRegex.ReplaceAllString(text, "")
	if stripped == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
