package price_test

import (
	"testing"

	"github.com/araval/nidhi-watch/pkg/price"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"thousands separators removed": {"$1,234.50", "$1234.50"},
		"no price text":                {"no price here", ""},
		"empty":                        {"", ""},
		"surrounding noise":            {"Sale price:\n $19.99 USD", "$19.99"},
		"rupee symbol":                 {"₹2,500.00", "₹2500.00"},
		"bare number":                  {"1500", "1500"},
		"first occurrence wins":        {"$10.00 $20.00", "$10.00"},
		"collapsed whitespace":         {"  $5.00\r\n", "$5.00"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, price.Normalize(tc.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, s := range []string{"$1,234.50", "no price here", "", "$0.00", "₹99", "price from $12.00"} {
		once := price.Normalize(s)
		assert.Equal(t, once, price.Normalize(once), "normalize(%q)", s)
	}
}

func TestNumber(t *testing.T) {
	n, ok := price.Number("$1,234.50")
	assert.True(t, ok)
	assert.Equal(t, 1234.50, n)

	n, ok = price.Number("₹99")
	assert.True(t, ok)
	assert.Equal(t, 99.0, n)

	for _, s := range []string{"", "N/A", "sold out", "$"} {
		_, ok := price.Number(s)
		assert.False(t, ok, "Number(%q) should not parse", s)
	}
}
