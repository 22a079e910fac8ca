package digest

import (
	"fmt"
	"testing"

	"github.com/Semior001/aidigest/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productionArticle scores 75, see TestScore.
func productionArticle(link string) store.Article {
	return store.Article{
		Title:       "Running multi-agent workflows in production",
		Link:        link,
		Description: "How our engineering team deployed an LLM orchestration platform.",
	}
}

// arxivArticle scores 70, see TestScore.
func arxivArticle(link string) store.Article {
	return store.Article{
		Title:       "A novel state-of-the-art agent benchmark",
		Link:        link,
		Description: "Outperforms prior LLM planning systems.",
	}
}

func TestSelect_threshold(t *testing.T) {
	articles := []store.Article{
		productionArticle("https://example.com/1"),
		{Title: "Best hiking paths this autumn", Link: "https://example.com/2"},
	}

	selected, totalScored := Select(articles, SelectOpts{Threshold: 60, MaxArticles: 15, MaxArxiv: 3})

	require.Len(t, selected, 1)
	assert.Equal(t, 1, totalScored)
	assert.Equal(t, "https://example.com/1", selected[0].Article.Link)
	assert.Equal(t, 75, selected[0].Score)
	assert.Equal(t, CategoryProduction, selected[0].Category)
}

func TestSelect_sortedByScoreDescending(t *testing.T) {
	articles := []store.Article{
		arxivArticle("https://arxiv.org/abs/1"),       // 70
		productionArticle("https://example.com/prod"), // 75
	}

	selected, _ := Select(articles, SelectOpts{Threshold: 60, MaxArticles: 15, MaxArxiv: 3})

	require.Len(t, selected, 2)
	assert.Equal(t, "https://example.com/prod", selected[0].Article.Link)
	assert.Equal(t, "https://arxiv.org/abs/1", selected[1].Article.Link)
}

func TestSelect_arxivCap(t *testing.T) {
	var articles []store.Article
	for i := 0; i < 5; i++ {
		articles = append(articles, arxivArticle(fmt.Sprintf("https://arxiv.org/abs/%d", i)))
	}
	articles = append(articles, productionArticle("https://example.com/prod"))

	selected, totalScored := Select(articles, SelectOpts{Threshold: 60, MaxArticles: 15, MaxArxiv: 3})

	assert.Equal(t, 6, totalScored)
	require.Len(t, selected, 4)

	arxiv := 0
	for _, sc := range selected {
		if isArxiv(sc.Article.Link) {
			arxiv++
		}
	}
	assert.Equal(t, 3, arxiv)
}

func TestSelect_totalCap(t *testing.T) {
	var articles []store.Article
	for i := 0; i < 20; i++ {
		articles = append(articles, productionArticle(fmt.Sprintf("https://example.com/%d", i)))
	}

	selected, totalScored := Select(articles, SelectOpts{Threshold: 60, MaxArticles: 15, MaxArxiv: 3})

	assert.Equal(t, 20, totalScored)
	assert.Len(t, selected, 15)
}

func TestSelect_empty(t *testing.T) {
	selected, totalScored := Select(nil, SelectOpts{Threshold: 60, MaxArticles: 15, MaxArxiv: 3})
	assert.Empty(t, selected)
	assert.Zero(t, totalScored)
}
