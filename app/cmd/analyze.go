package cmd

import (
	"fmt"
	"time"

	"github.com/Semior001/aidigest/app/digest"
	"github.com/Semior001/aidigest/app/store"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Analyze is a command to score collected articles and write the filtered
// artifact with the ones worth digesting.
type Analyze struct {
	Input       string `long:"input" env:"INPUT" default:"data/collected_articles.json" description:"path to the collected artifact"`
	Output      string `long:"output" env:"OUTPUT" default:"data/filtered_articles.json" description:"path to the output artifact"`
	Threshold   int    `long:"threshold" env:"THRESHOLD" default:"60" description:"minimal relevance score to keep an article"`
	MaxArticles int    `long:"max-articles" env:"MAX_ARTICLES" default:"15" description:"total cap for the selection"`
	MaxArxiv    int    `long:"max-arxiv" env:"MAX_ARXIV" default:"3" description:"cap for arXiv papers within the selection"`
}

// Execute runs the command.
func (a Analyze) Execute(_ []string) error {
	lg := slog.Default()

	collected, err := store.ReadCollected(a.Input)
	if err != nil {
		return fmt.Errorf("read collected artifact: %w", err)
	}

	lg.Info("analyzing collected articles",
		slog.Int("total", len(collected.Articles)),
		slog.Int("threshold", a.Threshold),
	)

	selected, totalScored := digest.Select(collected.Articles, digest.SelectOpts{
		Threshold:   a.Threshold,
		MaxArticles: a.MaxArticles,
		MaxArxiv:    a.MaxArxiv,
	})

	distribution := lo.CountValuesBy(selected, func(sc store.Scored) string { return sc.Category })

	artifact := store.Filtered{
		GeneratedAt:          time.Now().UTC(),
		Threshold:            a.Threshold,
		TotalCollected:       len(collected.Articles),
		TotalScored:          totalScored,
		SelectedCount:        len(selected),
		CategoryDistribution: distribution,
		Articles:             selected,
	}

	if err = store.WriteFiltered(a.Output, artifact); err != nil {
		return fmt.Errorf("write filtered artifact: %w", err)
	}

	lg.Info("filtered articles",
		slog.Int("scored", totalScored),
		slog.Int("selected", len(selected)),
		slog.Any("categories", distribution),
		slog.String("output", a.Output),
	)

	return nil
}
