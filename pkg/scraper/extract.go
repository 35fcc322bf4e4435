package scraper

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/araval/nidhi-watch/pkg/price"
)

// Ordered fallback chains. First selector that yields something wins; the
// storefront's markup is not stable, so each field degrades through
// progressively more generic heuristics instead of failing the page.
var (
	titleSelectors = []string{"h1.product-title", "h1.product__title", "h1.h2", "h1"}
	skuSelectors   = []string{"span.sku", "span.product-sku", "span.variant-sku", "div.sku", `[class*="sku"]`}

	priceContainerSelector = "div#ProductPrice, div.product__price, div.product-price"

	soldOutPhrases = []string{"sold out", "out of stock", "unavailable"}
	cartPhrases    = []string{"add to cart", "buy now", "add to bag"}
)

// Extract pulls a best-effort Product out of one product page. It never
// fails: every field falls back to its sentinel when the markup yields
// nothing usable.
func Extract(sel *goquery.Selection, pageURL string) Product {
	sale, regular := extractPrices(sel)
	return Product{
		Title:        extractTitle(sel),
		SKU:          extractSKU(sel, pageURL),
		SalePrice:    sale,
		RegularPrice: regular,
		Availability: extractAvailability(sel),
		Link:         pageURL,
	}
}

func extractTitle(sel *goquery.Selection) string {
	for _, s := range titleSelectors {
		if t := strings.TrimSpace(sel.Find(s).First().Text()); t != "" {
			return t
		}
	}
	if c, ok := sel.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := strings.TrimSpace(c); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(sel.Find("title").First().Text()); t != "" {
		return t
	}
	return NoTitle
}

func extractSKU(sel *goquery.Selection, pageURL string) string {
	for _, s := range skuSelectors {
		if t := strings.TrimSpace(sel.Find(s).First().Text()); t != "" {
			return t
		}
	}
	if sku := skuFromStructuredData(sel); sku != "" {
		return sku
	}
	return lastPathSegment(pageURL)
}

// skuFromStructuredData reads the first ld+json block and takes its sku
// field, accepting both a single object and an array of objects.
func skuFromStructuredData(sel *goquery.Selection) string {
	raw := sel.Find(`script[type="application/ld+json"]`).First().Text()
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return ""
	}

	switch data := v.(type) {
	case map[string]interface{}:
		return skuField(data)
	case []interface{}:
		for _, entry := range data {
			if m, ok := entry.(map[string]interface{}); ok {
				if sku := skuField(m); sku != "" {
					return sku
				}
			}
		}
	}
	return ""
}

func skuField(m map[string]interface{}) string {
	switch sku := m["sku"].(type) {
	case string:
		return sku
	case float64:
		return strconv.FormatFloat(sku, 'f', -1, 64)
	}
	return ""
}

func lastPathSegment(pageURL string) string {
	trimmed := strings.TrimRight(pageURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// extractPrices walks the known price containers and reduces each one to a
// (sale, regular) pair: dedupe, drop $0.00, sort numerically, take the
// extremes. The first container that yields both prices wins; this assumes a
// two-tier sale/regular display and will misread pages with more tiers.
func extractPrices(sel *goquery.Selection) (sale, regular string) {
	sel.Find(priceContainerSelector).EachWithBreak(func(_ int, container *goquery.Selection) bool {
		found := containerPrices(container)
		if len(found) == 1 {
			sale, regular = found[0], found[0]
		} else if len(found) >= 2 {
			sale, regular = found[0], found[len(found)-1]
		}
		return sale == "" || regular == ""
	})
	return sale, regular
}

func containerPrices(container *goquery.Selection) []string {
	seen := make(map[string]struct{})
	var found []string
	container.Find("span, div").Each(func(_ int, tag *goquery.Selection) {
		p := price.Normalize(tag.Text())
		if p == "" || p == "$0.00" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		found = append(found, p)
	})

	sort.Slice(found, func(i, j int) bool {
		a, _ := price.Number(found[i])
		b, _ := price.Number(found[j])
		return a < b
	})
	return found
}

// extractAvailability classifies stock state. Sold-out wording anywhere in
// the page text takes precedence over cart buttons.
func extractAvailability(sel *goquery.Selection) Availability {
	pageText := strings.ToLower(sel.Text())
	for _, phrase := range soldOutPhrases {
		if strings.Contains(pageText, phrase) {
			return SoldOut
		}
	}

	availability := Unknown
	sel.Find("button").EachWithBreak(func(_ int, btn *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(btn.Text()))
		for _, phrase := range cartPhrases {
			if !strings.Contains(text, phrase) {
				continue
			}
			if _, disabled := btn.Attr("disabled"); !disabled {
				availability = Available
				return false
			}
		}
		return true
	})
	return availability
}
