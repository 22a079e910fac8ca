package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appdigest "github.com/Semior001/aidigest/app/digest"
	"github.com/Semior001/aidigest/app/store"
	"golang.org/x/exp/slog"
)

// Digest is a command to render the filtered articles into a dated
// markdown digest.
type Digest struct {
	Input string `long:"input" env:"INPUT" default:"data/filtered_articles.json" description:"path to the filtered artifact"`
	Dir   string `long:"dir" env:"DIR" default:"digests" description:"root directory for digest files"`

	OpenAI struct {
		Token     string        `long:"token" env:"TOKEN" description:"OpenAI token, summaries are left for manual review if empty"`
		MaxTokens int           `long:"max-tokens" env:"MAX_TOKENS" default:"1000" description:"max tokens for OpenAI"`
		Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"5m" description:"timeout for OpenAI calls"`
	} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`
}

// Execute runs the command.
func (d Digest) Execute(_ []string) error {
	lg := slog.Default()

	filtered, err := store.ReadFiltered(d.Input)
	if err != nil {
		return fmt.Errorf("read filtered artifact: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summaries := map[string]string{}
	if d.OpenAI.Token != "" {
		chatGPT := appdigest.NewChatGPT(
			lg.With(slog.String("prefix", "chatgpt")),
			&http.Client{Timeout: d.OpenAI.Timeout},
			d.OpenAI.Token,
			d.OpenAI.MaxTokens,
		)

		for _, sc := range filtered.Articles {
			summary, err := chatGPT.Summarize(ctx, sc)
			if err != nil {
				// non-fatal, the slot stays open for manual review
				lg.WarnCtx(ctx, "failed to summarize article",
					slog.String("link", sc.Article.Link),
					slog.Any("err", err),
				)
				continue
			}
			summaries[sc.Article.Link] = summary
		}
	}

	renderer := appdigest.NewRenderer(d.Dir)

	path, err := renderer.Write(filtered, summaries)
	if err != nil {
		return fmt.Errorf("write digest: %w", err)
	}

	lg.InfoCtx(ctx, "digest written",
		slog.Int("articles", filtered.SelectedCount),
		slog.Int("summarized", len(summaries)),
		slog.String("path", path),
	)

	return nil
}
