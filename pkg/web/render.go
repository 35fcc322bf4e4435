package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/araval/nidhi-watch/pkg/scraper"
	"github.com/araval/nidhi-watch/pkg/snapshot"
	"github.com/samber/lo"
)

//go:embed templates
var templatesFs embed.FS

// DashboardContext is everything the dashboard page shows: the current
// catalog plus the diff against the baseline.
type DashboardContext struct {
	Title       string
	GeneratedAt string

	NoData      bool
	HasBaseline bool

	Products     []scraper.Product
	Changes      []snapshot.PriceChange
	NewProducts  []scraper.Product
	RemovedLinks []string

	// Outcome of the last "run scraper" action; empty when none ran.
	RunOutput string
	RunError  string

	// Static renders drop the action buttons.
	Static bool
}

// NewDashboardContext assembles the page context from a loaded snapshot and
// a computed diff. Products arrive in crawl order and are title-sorted here.
func NewDashboardContext(current *snapshot.Snapshot, hasBaseline bool, diff snapshot.Result) DashboardContext {
	products := make([]scraper.Product, current.Len())
	copy(products, current.Records())
	snapshot.SortByTitle(products)

	return DashboardContext{
		Title:       "Nidhiratna Product Tracker",
		NoData:      current.Empty(),
		HasBaseline: hasBaseline,
		Products:    products,
		Changes:     diff.Changes,
		NewProducts: diff.Added,
		RemovedLinks: lo.Map(diff.Removed, func(p scraper.Product, _ int) string {
			return p.Link
		}),
	}
}

func RenderDashboard(w io.Writer, c DashboardContext) error {
	t, err := template.ParseFS(templatesFs, "templates/dashboard.html.tpl")
	if err != nil {
		return err
	}
	return t.Execute(w, c)
}
