package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/araval/nidhi-watch/pkg/config"
	"github.com/araval/nidhi-watch/pkg/scraper"
	"github.com/araval/nidhi-watch/pkg/snapshot"
)

func main() {
	snapshotPathArg := flag.String("snapshot", "", "override snapshot CSV path")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("can't load configuration")
	}
	if *snapshotPathArg != "" {
		cfg.SnapshotPath = *snapshotPathArg
	}

	s, err := scraper.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("can't create scraper")
	}

	res, err := s.Run()
	if err != nil {
		logger.Fatal().Err(err).Msg("crawl aborted")
	}

	current := snapshot.FromProducts(res.Products)

	// Compare against the snapshot from the last run before overwriting it.
	// The baseline file promoted from the dashboard is a separate concern.
	previous := snapshot.Load(cfg.SnapshotPath)
	if previous.Empty() {
		logger.Info().Msg("no previous data found, saving new data as baseline")
	} else {
		logger.Info().Msg("comparing with previous data")
		if err := writeReport(os.Stdout, snapshot.Diff(current, previous)); err != nil {
			logger.Error().Err(err).Msg("can't write diff report")
		}
	}

	if err := snapshot.Save(cfg.SnapshotPath, current); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.SnapshotPath).Msg("can't save snapshot")
	}
	logger.Info().Str("path", cfg.SnapshotPath).Int("products", current.Len()).Msg("snapshot saved")

	if len(res.Failed) > 0 {
		logger.Warn().Int("count", len(res.Failed)).Msg("some product pages could not be scraped")
		for _, u := range res.Failed {
			logger.Warn().Str("url", u).Msg("unscraped")
		}
	}
}
