package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/araval/nidhi-watch/pkg/config"
	"github.com/araval/nidhi-watch/pkg/snapshot"
	"github.com/araval/nidhi-watch/pkg/web"
)

func main() {
	outputDirArg := flag.String("output-dir", "docs", "directory to write the rendered HTML report to")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("can't load configuration")
	}

	if err := os.MkdirAll(*outputDirArg, os.ModeDir|0775); err != nil {
		logger.Fatal().Err(err).Msg("can't create output directory")
	}

	current := snapshot.Load(cfg.SnapshotPath)
	if current.Empty() {
		logger.Warn().Str("path", cfg.SnapshotPath).Msg("snapshot missing or empty, rendering an empty report")
	}
	previous := snapshot.Load(cfg.BaselinePath)

	c := web.NewDashboardContext(current, !previous.Empty(), snapshot.Diff(current, previous))
	c.Static = true
	c.GeneratedAt = time.Now().Format("2006-01-02T15:04:05 MST")

	outPath := filepath.Join(*outputDirArg, "index.html")
	f, err := os.Create(outPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("can't create report file")
	}
	defer f.Close()

	if err := web.RenderDashboard(f, c); err != nil {
		logger.Fatal().Err(err).Msg("can't render report")
	}
	logger.Info().Str("path", outPath).Msg("report written")
}
