package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds everything the scraper and dashboard need. It is built once
// in main and passed into components at construction; nothing reads the
// environment after that.
type Config struct {
	BaseURL    string `env:"NIDHI_BASE_URL" envDefault:"https://nidhiratna.com"`
	SitemapURL string `env:"NIDHI_SITEMAP_URL"`
	UserAgent  string `env:"NIDHI_USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"`

	HTTPTimeout  time.Duration `env:"NIDHI_HTTP_TIMEOUT" envDefault:"10s"`
	MaxRetries   int           `env:"NIDHI_MAX_RETRIES" envDefault:"3"`
	RetryBackoff time.Duration `env:"NIDHI_RETRY_BACKOFF" envDefault:"2s"`
	CrawlDelay   time.Duration `env:"NIDHI_CRAWL_DELAY" envDefault:"500ms"`

	SnapshotPath string `env:"NIDHI_SNAPSHOT_PATH" envDefault:"nidhi_prices.csv"`
	BaselinePath string `env:"NIDHI_BASELINE_PATH" envDefault:"nidhi_prices_prev.csv"`
}

// Load reads a local .env file if present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("can't parse env variables: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.SitemapURL == "" {
		cfg.SitemapURL = cfg.BaseURL + "/sitemap.xml"
	}
	return cfg, nil
}
