package digest

import (
	"sort"
	"strings"

	"github.com/Semior001/aidigest/app/store"
)

// SelectOpts bounds the selection of scored articles.
type SelectOpts struct {
	Threshold   int // minimal score to keep an article
	MaxArticles int // total cap for the digest
	MaxArxiv    int // cap for arXiv papers within the selection
}

// Select scores the articles and picks the ones worth digesting: score at
// or above the threshold, best first, with at most MaxArxiv papers and
// MaxArticles entries overall. It returns the selection and the number of
// articles that passed the threshold before the caps were applied.
func Select(articles []store.Article, opts SelectOpts) (selected []store.Scored, totalScored int) {
	var scored []store.Scored
	for _, a := range articles {
		s := Score(a)
		if s < opts.Threshold {
			continue
		}
		scored = append(scored, store.Scored{Article: a, Score: s, Category: Categorize(a)})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	arxiv := 0
	for _, sc := range scored {
		if opts.MaxArticles > 0 && len(selected) >= opts.MaxArticles {
			break
		}

		if isArxiv(strings.ToLower(sc.Article.Link)) {
			if opts.MaxArxiv >= 0 && arxiv >= opts.MaxArxiv {
				continue
			}
			arxiv++
		}

		selected = append(selected, sc)
	}

	return selected, len(scored)
}
