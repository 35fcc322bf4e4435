package snapshot

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/araval/nidhi-watch/pkg/scraper"
)

var (
	snapshotHeader = []string{"Title", "SKU", "Sale_Price", "Regular_Price", "Availability", "Link", "Date"}
	baselineHeader = []string{"Link", "Sale_Price", "Regular_Price", "Title"}
)

// Load reads a snapshot CSV. A missing, unreadable or malformed file yields
// an empty snapshot, never an error: downstream diffing must degrade to "no
// baseline" instead of crashing. Columns are matched by header name, so the
// reduced baseline projection loads the same way as a full snapshot.
func Load(path string) *Snapshot {
	f, err := os.Open(path)
	if err != nil {
		return New()
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil || len(rows) < 2 {
		return New()
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	if _, ok := col["Link"]; !ok {
		return New()
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	s := New()
	for _, row := range rows[1:] {
		link := field(row, "Link")
		if link == "" {
			continue
		}
		s.Add(scraper.Product{
			Title:        field(row, "Title"),
			SKU:          field(row, "SKU"),
			SalePrice:    field(row, "Sale_Price"),
			RegularPrice: field(row, "Regular_Price"),
			Availability: scraper.Availability(field(row, "Availability")),
			Link:         link,
			Date:         field(row, "Date"),
		})
	}
	return s
}

// Save overwrites path with the full snapshot.
func Save(path string, s *Snapshot) error {
	rows := make([][]string, 0, s.Len()+1)
	rows = append(rows, snapshotHeader)
	for _, p := range s.Records() {
		rows = append(rows, []string{p.Title, p.SKU, p.SalePrice, p.RegularPrice, string(p.Availability), p.Link, p.Date})
	}
	return write(path, rows)
}

// SaveBaseline overwrites path with the reduced baseline projection. Callers
// invoke it only on an explicit promotion; a crawl never writes the baseline.
func SaveBaseline(path string, s *Snapshot) error {
	rows := make([][]string, 0, s.Len()+1)
	rows = append(rows, baselineHeader)
	for _, p := range s.Records() {
		rows = append(rows, []string{p.Link, p.SalePrice, p.RegularPrice, p.Title})
	}
	return write(path, rows)
}

func write(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't create snapshot file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("can't write snapshot file: %w", err)
	}
	return nil
}
