package main

import (
	"bytes"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/araval/nidhi-watch/pkg/config"
	"github.com/araval/nidhi-watch/pkg/snapshot"
	"github.com/araval/nidhi-watch/pkg/web"
)

type server struct {
	cfg        config.Config
	log        zerolog.Logger
	scraperCmd []string

	// Outcome of the last run action, shown on the next page load. The
	// crawl itself runs in a separate process; this is just display state.
	mu        sync.Mutex
	runOutput string
	runError  string
}

func main() {
	addrArg := flag.String("addr", ":8080", "address to listen on")
	scraperCmdArg := flag.String("scraper-cmd", "./scraper", "command that runs a crawl")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("can't load configuration")
	}

	srv := &server{
		cfg:        cfg,
		log:        logger,
		scraperCmd: strings.Fields(*scraperCmdArg),
	}

	http.HandleFunc("/", srv.handleIndex)
	http.HandleFunc("/run", srv.handleRun)
	http.HandleFunc("/save-baseline", srv.handleSaveBaseline)

	logger.Info().Str("addr", *addrArg).Msg("dashboard listening")
	if err := http.ListenAndServe(*addrArg, nil); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func (s *server) handleIndex(rw http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(rw, r)
		return
	}

	current := snapshot.Load(s.cfg.SnapshotPath)
	previous := snapshot.Load(s.cfg.BaselinePath)
	diff := snapshot.Diff(current, previous)

	c := web.NewDashboardContext(current, !previous.Empty(), diff)
	s.mu.Lock()
	c.RunOutput = s.runOutput
	c.RunError = s.runError
	s.mu.Unlock()

	if err := web.RenderDashboard(rw, c); err != nil {
		s.log.Error().Err(err).Msg("can't render dashboard")
		rw.WriteHeader(http.StatusInternalServerError)
	}
}

// handleRun invokes the scraper as a child process and blocks until it
// finishes. A non-zero exit surfaces the captured stderr verbatim.
func (s *server) handleRun(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if len(s.scraperCmd) == 0 {
		http.Error(rw, "no scraper command configured", http.StatusInternalServerError)
		return
	}

	s.log.Info().Strs("cmd", s.scraperCmd).Msg("running scraper")
	cmd := exec.Command(s.scraperCmd[0], s.scraperCmd[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	s.mu.Lock()
	if err != nil {
		s.runOutput = ""
		s.runError = strings.TrimSpace(stderr.String())
		if s.runError == "" {
			s.runError = err.Error()
		}
		s.log.Error().Err(err).Msg("scraper failed")
	} else {
		s.runOutput = "Scraper finished successfully."
		s.runError = ""
		s.log.Info().Msg("scraper finished")
	}
	s.mu.Unlock()

	http.Redirect(rw, r, "/", http.StatusSeeOther)
}

// handleSaveBaseline promotes the current snapshot to the baseline file.
// This is the only point the baseline is ever written.
func (s *server) handleSaveBaseline(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	current := snapshot.Load(s.cfg.SnapshotPath)
	s.mu.Lock()
	if current.Empty() {
		s.runOutput = ""
		s.runError = "No current snapshot to save as baseline. Run the scraper first."
	} else if err := snapshot.SaveBaseline(s.cfg.BaselinePath, current); err != nil {
		s.log.Error().Err(err).Msg("can't save baseline")
		s.runOutput = ""
		s.runError = err.Error()
	} else {
		s.runOutput = "Saved current prices for future comparison."
		s.runError = ""
	}
	s.mu.Unlock()

	http.Redirect(rw, r, "/", http.StatusSeeOther)
}
