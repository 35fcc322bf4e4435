package scraper

// Availability is the stock state read off a product page.
type Availability string

const (
	Available Availability = "Available"
	SoldOut   Availability = "Sold Out"
	Unknown   Availability = "Unknown"
)

// NoTitle is the sentinel used when every title heuristic comes up empty.
const NoTitle = "No title found"

// Product is one scraped product at one point in time.
type Product struct {
	Title        string
	SKU          string
	SalePrice    string
	RegularPrice string
	Availability Availability
	Link         string
	Date         string
}

// Result is the outcome of one crawl run: the scraped products in discovery
// order plus the product URLs that could not be fetched after retries.
type Result struct {
	Products []Product
	Failed   []string
}
