// Package feed collects articles from configured RSS and Atom feeds.
package feed

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/Semior001/aidigest/app/config"
	"github.com/Semior001/aidigest/app/store"
	"github.com/mmcdole/gofeed"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Collector fetches configured feeds and aggregates their entries into a
// single list, filtered to a lookback window.
type Collector struct {
	log       *slog.Logger
	cl        *http.Client
	extractor *Extractor
	workers   int

	now func() time.Time
}

// NewCollector creates new Collector. The extractor may be nil, then
// entries with no description are left as they are.
func NewCollector(lg *slog.Logger, cl *http.Client, workers int, extractor *Extractor) *Collector {
	if workers < 1 {
		workers = 1
	}
	return &Collector{
		log:       lg,
		cl:        cl,
		extractor: extractor,
		workers:   workers,
		now:       time.Now,
	}
}

// Result contains the aggregated articles and per-feed failure stats.
type Result struct {
	Articles    []store.Article
	CollectedAt time.Time
	Cutoff      time.Time
	FailedFeeds int
}

// Collect fetches every source and returns entries published within
// [now-hours, now], newest first. A failure of a single feed does not fail
// the run, the feed is logged and skipped.
func (c *Collector) Collect(ctx context.Context, hours float64, sources []config.Source) (Result, error) {
	now := c.now().UTC()
	cutoff := now.Add(-time.Duration(hours * float64(time.Hour)))

	c.log.InfoCtx(ctx, "collecting articles",
		slog.Time("cutoff", cutoff),
		slog.Float64("hours", hours),
		slog.Int("feeds", len(sources)),
	)

	var (
		mu       sync.Mutex
		articles []store.Article
		failed   int
	)

	ewg, gctx := errgroup.WithContext(ctx)
	ewg.SetLimit(c.workers)

	for _, src := range sources {
		src := src
		ewg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			parsed, err := c.fetch(gctx, src.URL)
			if err != nil {
				c.log.WarnCtx(gctx, "feed skipped",
					slog.String("url", src.URL),
					slog.Any("err", err),
				)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			arts := c.entries(gctx, src, parsed, cutoff, now)

			mu.Lock()
			articles = append(articles, arts...)
			mu.Unlock()

			c.log.DebugCtx(gctx, "feed collected",
				slog.String("url", src.URL),
				slog.Int("retained", len(arts)),
			)
			return nil
		})
	}

	if err := ewg.Wait(); err != nil {
		return Result{}, err
	}

	// aggregation order must not depend on fetch order
	sort.SliceStable(articles, func(i, j int) bool {
		l, r := articles[i].Published, articles[j].Published
		switch {
		case l == nil && r == nil:
			return articles[i].Link < articles[j].Link
		case l == nil:
			return false
		case r == nil:
			return true
		case !l.Equal(*r):
			return l.After(*r)
		default:
			return articles[i].Link < articles[j].Link
		}
	})

	return Result{
		Articles:    articles,
		CollectedAt: now,
		Cutoff:      cutoff,
		FailedFeeds: failed,
	}, nil
}

// fetch makes a parser per call, gofeed.Parser is not meant to be shared
// between goroutines.
func (c *Collector) fetch(ctx context.Context, u string) (*gofeed.Feed, error) {
	p := gofeed.NewParser()
	p.Client = c.cl
	return p.ParseURLWithContext(u, ctx)
}

func (c *Collector) entries(
	ctx context.Context,
	src config.Source,
	f *gofeed.Feed,
	cutoff, now time.Time,
) []store.Article {
	source := src.Name
	if source == "" {
		source = f.Title
	}
	if source == "" {
		source = src.URL
	}

	var result []store.Article
	for _, item := range f.Items {
		art := store.Article{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Source:      source,
			SourceURL:   src.URL,
			Category:    src.Category,
			Tags:        item.Categories,
		}
		if item.Author != nil {
			art.Author = item.Author.Name
		}

		ts := item.PublishedParsed
		if ts == nil {
			ts = item.UpdatedParsed
		}

		if ts == nil {
			// the window can't be verified, keep the entry flagged for
			// manual review
			c.log.WarnCtx(ctx, "entry has no publish date",
				slog.String("title", item.Title),
				slog.String("url", src.URL),
			)
		} else {
			t := ts.UTC()
			if t.Before(cutoff) || t.After(now) {
				continue
			}
			art.Published = &t
			art.DateVerified = true
		}

		if art.Description == "" && c.extractor != nil && art.Link != "" {
			desc, err := c.extractor.Excerpt(ctx, art.Link)
			if err != nil {
				c.log.WarnCtx(ctx, "failed to extract description",
					slog.String("link", art.Link),
					slog.Any("err", err),
				)
			} else {
				art.Description = desc
			}
		}

		result = append(result, art)
	}

	return result
}
