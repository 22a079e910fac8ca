// Package store contains artifact models and the JSON file store for them.
package store

import "time"

// Article is a single collected feed entry.
type Article struct {
	Title        string     `json:"title"`
	Link         string     `json:"link"`
	Published    *time.Time `json:"published,omitempty"`
	DateVerified bool       `json:"date_verified"`
	Description  string     `json:"description,omitempty"`
	Source       string     `json:"source"`
	SourceURL    string     `json:"source_url"`
	Category     string     `json:"category,omitempty"`
	Author       string     `json:"author,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
}

// Collected is the artifact produced by a collect run. Articles is never
// nil in a serialized artifact, an empty run still produces an array.
type Collected struct {
	RunID         string    `json:"run_id"`
	CollectedAt   time.Time `json:"collected_at"`
	CutoffTime    time.Time `json:"cutoff_time"`
	Hours         float64   `json:"hours"`
	TotalArticles int       `json:"total_articles"`
	Articles      []Article `json:"articles"`
}

// Scored is an article with its relevance score and digest category.
type Scored struct {
	Article  Article `json:"article"`
	Score    int     `json:"score"`
	Category string  `json:"category"`
}

// Filtered is the artifact produced by an analyze run.
type Filtered struct {
	GeneratedAt          time.Time      `json:"generated_at"`
	Threshold            int            `json:"threshold"`
	TotalCollected       int            `json:"total_collected"`
	TotalScored          int            `json:"total_scored"`
	SelectedCount        int            `json:"selected_count"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	Articles             []Scored       `json:"articles"`
}
