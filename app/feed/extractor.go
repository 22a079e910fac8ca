package feed

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	cache "github.com/go-pkgz/expirable-cache/v2"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/exp/slog"
)

// maxExcerptLen bounds descriptions built from page content, the artifact
// is meant to be skimmed by a human.
const maxExcerptLen = 280

// Extractor fills missing entry descriptions from the article pages.
type Extractor struct {
	log   *slog.Logger
	cl    *http.Client
	cache cache.Cache[string, string]
}

// NewExtractor creates new Extractor.
func NewExtractor(lg *slog.Logger, cl *http.Client) *Extractor {
	return &Extractor{
		log: lg,
		cl:  cl,
		cache: cache.NewCache[string, string]().
			WithLRU().
			WithMaxKeys(512),
	}
}

// Excerpt fetches the page at u and returns a short description of it.
// The same article is often linked from several feeds, so results are
// cached per URL.
func (e *Extractor) Excerpt(ctx context.Context, u string) (string, error) {
	if v, ok := e.cache.Get(u); ok {
		return v, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := e.cl.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			e.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return "", fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	doc, err := readability.FromReader(resp.Body, nil)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	excerpt := doc.Excerpt
	if excerpt == "" {
		excerpt = doc.TextContent
	}
	excerpt = sanitize(excerpt)

	if runes := []rune(excerpt); len(runes) > maxExcerptLen {
		excerpt = string(runes[:maxExcerptLen]) + "..."
	}

	e.cache.Set(u, excerpt, 0)
	return excerpt, nil
}

var spaceRe = regexp.MustCompile(`\s+`)

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	// nbsp
	s = strings.ReplaceAll(s, "\u00a0", " ")

	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
