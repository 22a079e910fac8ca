// Package digest scores collected articles, selects the relevant ones and
// renders them into a dated markdown digest.
package digest

import (
	"strings"

	"github.com/Semior001/aidigest/app/store"
	"github.com/samber/lo"
)

// Digest categories, in rendering priority order.
const (
	CategoryProduction = "Production Use Cases"
	CategoryFrameworks = "Frameworks & Tools"
	CategoryResources  = "Developer Resources"
	CategoryTrends     = "Trends & Analysis"
	CategoryResearch   = "Research & Breakthroughs"
)

// CategoryOrder is the order in which categories appear in the digest.
var CategoryOrder = []string{
	CategoryProduction,
	CategoryFrameworks,
	CategoryResources,
	CategoryTrends,
	CategoryResearch,
}

var (
	agenticKeywords = []string{
		"agent", "agentic", "autonomous", "multi-agent", "tool use",
		"function calling", "mcp", "model context protocol",
		"reasoning", "planning", "workflow", "orchestration",
	}

	productionKeywords = []string{
		"production", "deployment", "real-world", "implementation",
		"case study", "benchmark", "framework", "sdk", "api",
		"tool", "application", "system", "platform",
	}

	aiKeywords = []string{
		"llm", "large language model", "gpt", "claude", "gemini",
		"ai", "artificial intelligence", "neural", "transformer",
	}

	devKeywords = []string{
		"developer", "coding", "programming", "software",
		"engineering", "code", "github",
	}

	theoryKeywords = []string{
		"theoretical", "mathematical proof", "convergence analysis",
		"formal verification", "complexity bounds",
	}

	breakthroughKeywords = []string{
		"breakthrough", "novel", "first", "new benchmark",
		"state-of-the-art", "sota", "outperforms",
	}
)

// Score rates the article's relevance to AI agents and agentic systems on
// a 0-100 scale, preferring practical industry material over pure theory.
func Score(a store.Article) int {
	text := strings.ToLower(a.Title + " " + a.Description)
	link := strings.ToLower(a.Link)

	score := 0
	if containsAny(text, agenticKeywords) {
		score += 20
	}
	if containsAny(text, productionKeywords) {
		score += 15
	}
	if containsAny(text, aiKeywords) {
		score += 20
	}
	if containsAny(text, devKeywords) {
		score += 10
	}

	if !isArxiv(link) {
		score += 10
	} else {
		if containsAny(text, theoryKeywords) {
			score -= 20
		}
		if containsAny(text, breakthroughKeywords) {
			score += 15
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

var (
	productionIndicators = []string{"production", "deployment", "real-world", "case study", "implementation"}
	frameworkIndicators  = []string{"framework", "sdk", "tool", "library", "api", "platform"}
	resourceIndicators   = []string{"tutorial", "guide", "how to", "documentation", "example"}
	analysisIndicators   = []string{"trend", "analysis", "survey", "benchmark", "evaluation"}
)

// Categorize assigns the article to one of the digest categories. The
// checks run in priority order, research is the fallback.
func Categorize(a store.Article) string {
	text := strings.ToLower(a.Title + " " + a.Description)

	switch {
	case containsAny(text, productionIndicators):
		return CategoryProduction
	case containsAny(text, frameworkIndicators):
		return CategoryFrameworks
	case containsAny(text, resourceIndicators):
		return CategoryResources
	case containsAny(text, analysisIndicators):
		return CategoryTrends
	default:
		return CategoryResearch
	}
}

func containsAny(text string, keywords []string) bool {
	return lo.SomeBy(keywords, func(kw string) bool {
		return strings.Contains(text, kw)
	})
}

func isArxiv(link string) bool {
	return strings.Contains(link, "arxiv.org")
}
