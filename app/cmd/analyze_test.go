package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Semior001/aidigest/app/digest"
	"github.com/Semior001/aidigest/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Execute(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "collected_articles.json")
	output := filepath.Join(dir, "filtered_articles.json")

	require.NoError(t, store.WriteCollected(input, store.Collected{
		RunID: "run-1",
		Hours: 24,
		Articles: []store.Article{
			{
				Title:       "Running multi-agent workflows in production",
				Link:        "https://example.com/prod",
				Description: "How our engineering team deployed an LLM orchestration platform.",
			},
			{
				Title: "Best hiking paths this autumn",
				Link:  "https://example.com/hiking",
			},
		},
	}))

	cmd := Analyze{Input: input, Output: output, Threshold: 60, MaxArticles: 15, MaxArxiv: 3}
	require.NoError(t, cmd.Execute(nil))

	artifact, err := store.ReadFiltered(output)
	require.NoError(t, err)

	assert.Equal(t, 60, artifact.Threshold)
	assert.Equal(t, 2, artifact.TotalCollected)
	assert.Equal(t, 1, artifact.TotalScored)
	assert.Equal(t, 1, artifact.SelectedCount)
	require.Len(t, artifact.Articles, 1)
	assert.Equal(t, "https://example.com/prod", artifact.Articles[0].Article.Link)
	assert.Equal(t, map[string]int{digest.CategoryProduction: 1}, artifact.CategoryDistribution)
	assert.WithinDuration(t, time.Now(), artifact.GeneratedAt, time.Minute)
}

func TestAnalyze_Execute_missingInput(t *testing.T) {
	cmd := Analyze{Input: filepath.Join(t.TempDir(), "nope.json")}
	assert.ErrorContains(t, cmd.Execute(nil), "read collected artifact")
}

func TestAnalyze_Execute_emptyCollectedSet(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "collected_articles.json")
	output := filepath.Join(dir, "filtered_articles.json")

	require.NoError(t, store.WriteCollected(input, store.Collected{RunID: "run-1"}))

	cmd := Analyze{Input: input, Output: output, Threshold: 60, MaxArticles: 15, MaxArxiv: 3}
	require.NoError(t, cmd.Execute(nil))

	artifact, err := store.ReadFiltered(output)
	require.NoError(t, err)
	assert.NotNil(t, artifact.Articles)
	assert.Empty(t, artifact.Articles)
}
