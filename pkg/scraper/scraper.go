// Package scraper crawls one storefront's sitemap hierarchy and extracts a
// product record from every product page it can reach.
package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"

	"github.com/araval/nidhi-watch/pkg/config"
	"github.com/araval/nidhi-watch/pkg/sitemap"
)

const (
	productSitemapMarker = "sitemap_products"
	productPageMarker    = "/products/"
)

// ErrSitemapUnreachable is returned by Run when the master sitemap could not
// be fetched after retries. With no sitemap there is nothing to crawl, so
// this is the only failure that aborts a run.
var ErrSitemapUnreachable = errors.New("master sitemap unreachable")

// Scraper drives a single sequential crawl: master sitemap, product
// sub-sitemaps, then every product page with a politeness delay in between.
type Scraper struct {
	colly *colly.Collector
	cfg   config.Config
	log   zerolog.Logger

	mutex       *sync.Mutex
	urlBackoffs map[string]int

	gotRoot         bool
	productSitemaps []string
	productURLs     []string
	scraped         map[string]bool
	products        []Product
	runDate         string
}

func New(cfg config.Config, logger zerolog.Logger) (*Scraper, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("can't parse base url %q: %w", cfg.BaseURL, err)
	}

	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowedDomains(base.Hostname()),
	)
	c.DisableCookies()
	c.SetRequestTimeout(cfg.HTTPTimeout)

	// Parallelism stays at 1: the crawl is deliberately sequential and the
	// delay is a rate limit for the target site, not a tuning knob.
	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       cfg.CrawlDelay,
	}); err != nil {
		return nil, fmt.Errorf("can't set limit rule: %w", err)
	}

	s := &Scraper{
		colly:       c,
		cfg:         cfg,
		log:         logger,
		mutex:       &sync.Mutex{},
		urlBackoffs: make(map[string]int),
		scraped:     make(map[string]bool),
	}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		r.Headers.Set("Referer", cfg.BaseURL)
		s.log.Info().Str("url", r.URL.String()).Msg("visiting")
	})

	c.OnError(s.handleError)
	c.OnResponse(s.handleSitemap)

	c.OnHTML("html", func(e *colly.HTMLElement) {
		pageURL := e.Request.URL.String()
		if !strings.Contains(pageURL, productPageMarker) {
			return
		}

		p := Extract(e.DOM, pageURL)
		p.Date = s.runDate
		s.products = append(s.products, p)
		s.scraped[pageURL] = true

		s.log.Info().
			Str("title", p.Title).
			Str("sku", p.SKU).
			Str("sale_price", p.SalePrice).
			Str("regular_price", p.RegularPrice).
			Str("availability", string(p.Availability)).
			Msg("scraped product")
	})

	return s, nil
}

// Run performs one complete crawl. Individual page failures are recorded and
// skipped; only an unreachable master sitemap is fatal.
func (s *Scraper) Run() (Result, error) {
	s.runDate = time.Now().Format("2006-01-02")

	s.log.Info().Str("url", s.cfg.SitemapURL).Msg("discovering product sitemaps")
	if err := s.colly.Visit(s.cfg.SitemapURL); err != nil && !s.gotRoot {
		return Result{}, fmt.Errorf("%w: %v", ErrSitemapUnreachable, err)
	}
	if !s.gotRoot {
		return Result{}, ErrSitemapUnreachable
	}
	s.log.Info().Int("count", len(s.productSitemaps)).Msg("found product sitemaps")

	for _, sm := range s.productSitemaps {
		if err := s.colly.Visit(sm); err != nil && !errors.Is(err, colly.ErrAlreadyVisited) {
			s.log.Error().Str("url", sm).Err(err).Msg("skipping sitemap")
		}
	}

	s.productURLs = sitemap.Dedupe(s.productURLs)
	s.log.Info().Int("count", len(s.productURLs)).Msg("total unique product urls")

	for _, u := range s.productURLs {
		if err := s.colly.Visit(u); err != nil && !errors.Is(err, colly.ErrAlreadyVisited) {
			s.log.Error().Str("url", u).Err(err).Msg("can't visit product page")
		}
	}
	s.colly.Wait()

	res := Result{Products: s.products}
	for _, u := range s.productURLs {
		if !s.scraped[u] {
			res.Failed = append(res.Failed, u)
		}
	}
	return res, nil
}

// handleSitemap routes sitemap responses: the master sitemap yields product
// sub-sitemap locations, sub-sitemaps yield product page URLs. Product pages
// are handled by the OnHTML callback instead.
func (s *Scraper) handleSitemap(r *colly.Response) {
	u := r.Request.URL.String()

	switch {
	case u == s.cfg.SitemapURL:
		s.gotRoot = true
		locs, err := sitemap.Locations(bytes.NewReader(r.Body))
		if err != nil {
			s.log.Error().Str("url", u).Err(err).Msg("can't parse master sitemap")
			return
		}
		for _, loc := range locs {
			if strings.Contains(loc, productSitemapMarker) {
				s.productSitemaps = append(s.productSitemaps, loc)
			}
		}

	case strings.Contains(u, productSitemapMarker):
		locs, err := sitemap.Locations(bytes.NewReader(r.Body))
		if err != nil {
			s.log.Error().Str("url", u).Err(err).Msg("can't parse sitemap")
			return
		}
		for _, loc := range locs {
			if strings.Contains(loc, productPageMarker) {
				s.productURLs = append(s.productURLs, loc)
			}
		}
	}
}

// handleError retries a failed request with a linearly increasing backoff.
// Once retries are exhausted the URL is simply given up on; Run reports
// product pages that never produced a record.
func (s *Scraper) handleError(r *colly.Response, err error) {
	u := r.Request.URL.String()

	s.mutex.Lock()
	s.urlBackoffs[u]++
	attempt := s.urlBackoffs[u]
	s.mutex.Unlock()

	if attempt < s.cfg.MaxRetries {
		backoff := time.Duration(attempt) * s.cfg.RetryBackoff
		s.log.Warn().
			Str("url", u).
			Int("attempt", attempt).
			Int("max_retries", s.cfg.MaxRetries).
			Dur("backoff", backoff).
			Err(err).
			Msg("request failed, retrying")
		time.Sleep(backoff)
		if err := r.Request.Retry(); err != nil {
			s.log.Error().Str("url", u).Err(err).Msg("retry failed")
		}
		return
	}

	s.log.Error().Str("url", u).Err(err).Msg("giving up on url")
}
