// Package sitemap extracts location entries from sitemap XML documents.
package sitemap

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Locations returns the text of every <loc> element in document order.
// It works for both sitemap index documents and url-set documents.
func Locations(r io.Reader) ([]string, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("can't parse sitemap xml: %w", err)
	}

	var locs []string
	for _, n := range xmlquery.Find(doc, "//loc") {
		loc := strings.TrimSpace(n.InnerText())
		if loc != "" {
			locs = append(locs, loc)
		}
	}
	return locs, nil
}

// Dedupe removes duplicate URLs preserving the first occurrence's position.
func Dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
