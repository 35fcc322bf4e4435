package snapshot_test

import (
	"testing"

	"github.com/araval/nidhi-watch/pkg/scraper"
	"github.com/araval/nidhi-watch/pkg/snapshot"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(link, title, sale, regular string) scraper.Product {
	return scraper.Product{Title: title, SalePrice: sale, RegularPrice: regular, Link: link}
}

func TestDiffIdenticalSnapshots(t *testing.T) {
	cur := snapshot.FromProducts(testProducts)
	prev := snapshot.FromProducts(testProducts)

	d := snapshot.Diff(cur, prev)
	assert.Empty(t, d.Changes)
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
}

func TestDiffWithoutBaselineReportsEverythingNew(t *testing.T) {
	cur := snapshot.FromProducts(testProducts)

	d := snapshot.Diff(cur, snapshot.New())
	assert.Empty(t, d.Changes)
	assert.Len(t, d.Added, len(testProducts))
	assert.Empty(t, d.Removed)
}

func TestDiffReportsSalePriceChange(t *testing.T) {
	cur := snapshot.FromProducts([]scraper.Product{record("/p1", "P1", "$10.00", "$10.00")})
	prev := snapshot.FromProducts([]scraper.Product{record("/p1", "P1", "$8.00", "$10.00")})

	d := snapshot.Diff(cur, prev)
	require.Len(t, d.Changes, 1)

	c := d.Changes[0]
	assert.Equal(t, "/p1", c.Link)
	assert.Equal(t, "$8.00", c.OldSale)
	assert.Equal(t, "$10.00", c.NewSale)
	assert.Equal(t, c.OldRegular, c.NewRegular, "regular price did not move")
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
}

func TestDiffIgnoresMissingVsPresentPrices(t *testing.T) {
	cur := snapshot.FromProducts([]scraper.Product{record("/p1", "P1", "$9.00", "$9.00")})
	prev := snapshot.FromProducts([]scraper.Product{record("/p1", "P1", "", "$9.00")})

	d := snapshot.Diff(cur, prev)
	assert.Empty(t, d.Changes, "a price absent on one side is not a change")
}

func TestDiffMatchesLinksInsensitiveToCaseAndTrailingSlash(t *testing.T) {
	cur := snapshot.FromProducts([]scraper.Product{
		record("HTTPS://Example.com/Products/P1/", "P1", "$10.00", "$10.00"),
	})
	prev := snapshot.FromProducts([]scraper.Product{
		record("https://example.com/products/p1", "P1", "$10.00", "$10.00"),
	})

	d := snapshot.Diff(cur, prev)
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
	assert.Empty(t, d.Changes)
}

func TestDiffAddedAndRemoved(t *testing.T) {
	cur := snapshot.FromProducts([]scraper.Product{
		record("/p1", "Kept", "$10.00", "$10.00"),
		record("/p3", "Zebra Cushion", "$5.00", "$5.00"),
		record("/p4", "apron", "$7.00", "$7.00"),
	})
	prev := snapshot.FromProducts([]scraper.Product{
		record("/p1", "Kept", "$10.00", "$10.00"),
		record("/p2", "Gone", "$3.00", "$3.00"),
	})

	d := snapshot.Diff(cur, prev)
	assert.Empty(t, d.Changes)

	// title-sorted, case-insensitive
	assert.Equal(t, []string{"apron", "Zebra Cushion"},
		lo.Map(d.Added, func(p scraper.Product, _ int) string { return p.Title }))
	require.Len(t, d.Removed, 1)
	assert.Equal(t, "/p2", d.Removed[0].Link)
}
