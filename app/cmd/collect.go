// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Semior001/aidigest/app/config"
	"github.com/Semior001/aidigest/app/feed"
	"github.com/Semior001/aidigest/app/store"
	"github.com/Semior001/aidigest/pkg/logx"
	"github.com/go-pkgz/requester"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Collect is a command to collect articles from configured feeds into the
// collected artifact.
type Collect struct {
	Hours       float64       `long:"hours" env:"HOURS" default:"24" description:"lookback window in hours"`
	Config      string        `long:"config" env:"CONFIG" default:"feeds.json" description:"path to the feed list"`
	Output      string        `long:"output" env:"OUTPUT" default:"data/collected_articles.json" description:"path to the output artifact"`
	Timeout     time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"per-request timeout"`
	Concurrency int           `long:"concurrency" env:"CONCURRENCY" default:"4" description:"feeds fetched in parallel"`
	Extract     bool          `long:"extract" env:"EXTRACT" description:"fill missing descriptions from article pages"`
}

// Execute runs the command.
func (c Collect) Execute(_ []string) error {
	if c.Hours <= 0 {
		return fmt.Errorf("hours must be positive, got %v", c.Hours)
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("load feeds config: %w", err)
	}

	lg := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	ctx = logx.ContextWithRunID(ctx, runID)

	rq := requester.New(
		http.Client{Timeout: c.Timeout},
		logx.LoggingRoundTripper(
			lg.With(slog.String("prefix", "http")),
			logx.RoundTripperOpts{Level: slog.LevelDebug},
		),
	)

	var extractor *feed.Extractor
	if c.Extract {
		extractor = feed.NewExtractor(lg.With(slog.String("prefix", "extractor")), rq.Client())
	}

	collector := feed.NewCollector(
		lg.With(slog.String("prefix", "collector")),
		rq.Client(),
		c.Concurrency,
		extractor,
	)

	result, err := collector.Collect(ctx, c.Hours, cfg.Feeds)
	if err != nil {
		return fmt.Errorf("collect articles: %w", err)
	}

	switch {
	case len(cfg.Feeds) > 0 && result.FailedFeeds == len(cfg.Feeds):
		lg.ErrorCtx(ctx, "all feeds failed, output will be empty",
			slog.Int("feeds", len(cfg.Feeds)))
	case len(result.Articles) == 0:
		lg.InfoCtx(ctx, "no articles within the window")
	}

	artifact := store.Collected{
		RunID:         runID,
		CollectedAt:   result.CollectedAt,
		CutoffTime:    result.Cutoff,
		Hours:         c.Hours,
		TotalArticles: len(result.Articles),
		Articles:      result.Articles,
	}

	if err = store.WriteCollected(c.Output, artifact); err != nil {
		return fmt.Errorf("write collected artifact: %w", err)
	}

	lg.InfoCtx(ctx, "collected articles",
		slog.Int("total", len(result.Articles)),
		slog.Int("failed_feeds", result.FailedFeeds),
		slog.String("output", c.Output),
	)

	return nil
}
