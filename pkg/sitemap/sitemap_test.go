package sitemap_test

import (
	"strings"
	"testing"

	"github.com/araval/nidhi-watch/pkg/sitemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocations(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<sitemap><loc> https://example.com/sitemap_products_1.xml </loc></sitemap>
	<sitemap><loc>https://example.com/sitemap_pages_1.xml</loc></sitemap>
	<sitemap><loc></loc></sitemap>
</sitemapindex>`

	locs, err := sitemap.Locations(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/sitemap_products_1.xml",
		"https://example.com/sitemap_pages_1.xml",
	}, locs)
}

func TestLocationsURLSet(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>https://example.com/products/a</loc></url>
	<url><loc>https://example.com/products/b</loc></url>
</urlset>`

	locs, err := sitemap.Locations(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Len(t, locs, 2)
}

func TestDedupePreservesFirstOccurrence(t *testing.T) {
	got := sitemap.Dedupe([]string{"A", "B", "A", "C"})
	assert.Equal(t, []string{"A", "B", "C"}, got)
}
