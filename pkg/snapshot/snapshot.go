// Package snapshot persists crawl results as CSV snapshots and reconciles
// two snapshots into price-change, new and removed product sets.
package snapshot

import (
	"sort"
	"strings"

	"github.com/araval/nidhi-watch/pkg/scraper"
)

// Snapshot is an ordered collection of product records from one crawl run,
// keyed by normalized link. A later record with the same key supersedes the
// earlier one in place; records never accumulate per product.
type Snapshot struct {
	records []scraper.Product
	index   map[string]int
}

func New() *Snapshot {
	return &Snapshot{index: make(map[string]int)}
}

// FromProducts builds a snapshot from crawl output in discovery order.
func FromProducts(ps []scraper.Product) *Snapshot {
	s := New()
	for _, p := range ps {
		s.Add(p)
	}
	return s
}

func (s *Snapshot) Add(p scraper.Product) {
	key := NormalizeLink(p.Link)
	if i, ok := s.index[key]; ok {
		s.records[i] = p
		return
	}
	s.index[key] = len(s.records)
	s.records = append(s.records, p)
}

// Lookup finds a record by link; the match is insensitive to letter case and
// trailing slashes.
func (s *Snapshot) Lookup(link string) (scraper.Product, bool) {
	i, ok := s.index[NormalizeLink(link)]
	if !ok {
		return scraper.Product{}, false
	}
	return s.records[i], true
}

func (s *Snapshot) Records() []scraper.Product {
	return s.records
}

func (s *Snapshot) Len() int {
	return len(s.records)
}

func (s *Snapshot) Empty() bool {
	return len(s.records) == 0
}

// NormalizeLink lower-cases a product link and strips trailing slashes so
// that key matching is case/format-insensitive across crawls.
func NormalizeLink(link string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(link)), "/")
}

// SortByTitle orders records by title, ascending, case-insensitive. Display
// convenience only; nothing in the diff depends on it.
func SortByTitle(ps []scraper.Product) {
	sort.SliceStable(ps, func(i, j int) bool {
		return strings.ToLower(ps[i].Title) < strings.ToLower(ps[j].Title)
	})
}
