package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadCollected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "collected_articles.json")

	published := time.Date(2023, 4, 10, 11, 0, 0, 0, time.UTC)
	artifact := Collected{
		RunID:         "run-1",
		CollectedAt:   time.Date(2023, 4, 10, 12, 0, 0, 0, time.UTC),
		CutoffTime:    time.Date(2023, 4, 9, 12, 0, 0, 0, time.UTC),
		Hours:         24,
		TotalArticles: 1,
		Articles: []Article{{
			Title:        "fresh post",
			Link:         "https://example.com/fresh",
			Published:    &published,
			DateVerified: true,
			Description:  "something happened",
			Source:       "tech blog",
			SourceURL:    "https://example.com/rss.xml",
			Category:     "news",
			Tags:         []string{"ai", "agents"},
		}},
	}

	require.NoError(t, WriteCollected(path, artifact))

	got, err := ReadCollected(path)
	require.NoError(t, err)
	assert.Equal(t, artifact, got)
}

func TestWriteCollected_emptyRunProducesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collected_articles.json")

	require.NoError(t, WriteCollected(path, Collected{RunID: "run-2", Hours: 24}))

	bts, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(bts, &raw))
	assert.JSONEq(t, `[]`, string(raw["articles"]))
}

func TestWriteCollected_overwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collected_articles.json")

	require.NoError(t, WriteCollected(path, Collected{
		RunID:    "run-1",
		Articles: []Article{{Title: "old"}},
	}))
	require.NoError(t, WriteCollected(path, Collected{RunID: "run-2"}))

	got, err := ReadCollected(path)
	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)
	assert.Empty(t, got.Articles)
}

func TestWriteReadFiltered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtered_articles.json")

	artifact := Filtered{
		GeneratedAt:          time.Date(2023, 4, 10, 13, 0, 0, 0, time.UTC),
		Threshold:            60,
		TotalCollected:       10,
		TotalScored:          4,
		SelectedCount:        2,
		CategoryDistribution: map[string]int{"Frameworks & Tools": 2},
		Articles: []Scored{
			{Article: Article{Title: "a"}, Score: 80, Category: "Frameworks & Tools"},
			{Article: Article{Title: "b"}, Score: 65, Category: "Frameworks & Tools"},
		},
	}

	require.NoError(t, WriteFiltered(path, artifact))

	got, err := ReadFiltered(path)
	require.NoError(t, err)
	assert.Equal(t, artifact, got)
}

func TestReadCollected_malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collected_articles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"articles": [`), 0o644))

	_, err := ReadCollected(path)
	assert.ErrorContains(t, err, "unmarshal")
}

func TestWriteCollected_leavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collected_articles.json")

	require.NoError(t, WriteCollected(path, Collected{RunID: "run-1"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "collected_articles.json", entries[0].Name())
}
