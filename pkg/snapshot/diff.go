package snapshot

import (
	"sort"
	"strings"

	"github.com/araval/nidhi-watch/pkg/price"
	"github.com/araval/nidhi-watch/pkg/scraper"
)

// PriceChange is one product whose sale or regular price moved between two
// snapshots. Derived, never persisted.
type PriceChange struct {
	Link       string
	Title      string
	OldSale    string
	NewSale    string
	OldRegular string
	NewRegular string
}

// Result of reconciling a current snapshot against a previous one.
type Result struct {
	Changes []PriceChange
	Added   []scraper.Product
	Removed []scraper.Product
}

// Diff joins current and previous by normalized link. A price change is
// reported only when both sides hold a parseable price for that field and
// the values differ; missing-vs-present is not a change. With an empty
// previous snapshot every current product is Added and Changes stays empty.
// All output sets are title-sorted for display.
func Diff(current, previous *Snapshot) Result {
	var res Result

	for _, cur := range current.Records() {
		prev, ok := previous.Lookup(cur.Link)
		if !ok {
			res.Added = append(res.Added, cur)
			continue
		}

		if priceMoved(prev.SalePrice, cur.SalePrice) || priceMoved(prev.RegularPrice, cur.RegularPrice) {
			res.Changes = append(res.Changes, PriceChange{
				Link:       cur.Link,
				Title:      cur.Title,
				OldSale:    price.Normalize(prev.SalePrice),
				NewSale:    price.Normalize(cur.SalePrice),
				OldRegular: price.Normalize(prev.RegularPrice),
				NewRegular: price.Normalize(cur.RegularPrice),
			})
		}
	}

	for _, prev := range previous.Records() {
		if _, ok := current.Lookup(prev.Link); !ok {
			res.Removed = append(res.Removed, prev)
		}
	}

	sort.SliceStable(res.Changes, func(i, j int) bool {
		return strings.ToLower(res.Changes[i].Title) < strings.ToLower(res.Changes[j].Title)
	})
	SortByTitle(res.Added)
	SortByTitle(res.Removed)
	return res
}

// priceMoved compares two price fields numerically after normalization.
func priceMoved(before, after string) bool {
	o, okOld := price.Number(price.Normalize(before))
	n, okNew := price.Number(price.Normalize(after))
	return okOld && okNew && o != n
}
