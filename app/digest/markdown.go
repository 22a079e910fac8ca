package digest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Semior001/aidigest/app/store"
	"github.com/samber/lo"
)

//go:embed data/digest.tmpl
var digestTmpl string

var mdTmpl = template.Must(template.New("digest").Parse(digestTmpl))

// pendingSummary fills the summary slot of articles that were not
// summarized, the reviewer replaces it by hand.
const pendingSummary = "_Summary pending manual review._"

// Renderer renders filtered articles into a dated markdown digest under a
// year/month directory tree.
type Renderer struct {
	dir string
	now func() time.Time
}

// NewRenderer creates new Renderer writing digests under dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir, now: time.Now}
}

// Path returns the digest location for the given date,
// dir/YYYY/MM/digest-YYYY-MM-DD.md.
func (r *Renderer) Path(t time.Time) string {
	t = t.UTC()
	return filepath.Join(r.dir,
		t.Format("2006"),
		t.Format("01"),
		"digest-"+t.Format("2006-01-02")+".md",
	)
}

// Render builds the markdown document for the filtered artifact. Summaries
// maps article links to prose summaries, articles without one get the
// pending-review placeholder.
func (r *Renderer) Render(f store.Filtered, summaries map[string]string) ([]byte, error) {
	return r.render(f, summaries, r.now())
}

func (r *Renderer) render(f store.Filtered, summaries map[string]string, now time.Time) ([]byte, error) {
	type articleView struct {
		Title     string
		Link      string
		Source    string
		Published string
		Score     int
		Summary   string
	}
	type sectionView struct {
		Name     string
		Articles []articleView
	}

	byCategory := lo.GroupBy(f.Articles, func(sc store.Scored) string { return sc.Category })

	var sections []sectionView
	for _, name := range CategoryOrder {
		scs, ok := byCategory[name]
		if !ok {
			continue
		}

		section := sectionView{Name: name}
		for _, sc := range scs {
			published := "unknown, needs manual verification"
			if sc.Article.Published != nil {
				published = sc.Article.Published.Format("2006-01-02 15:04 MST")
			}

			summary := summaries[sc.Article.Link]
			if summary == "" {
				summary = pendingSummary
			}

			section.Articles = append(section.Articles, articleView{
				Title:     sc.Article.Title,
				Link:      sc.Article.Link,
				Source:    sc.Article.Source,
				Published: published,
				Score:     sc.Score,
				Summary:   summary,
			})
		}
		sections = append(sections, section)
	}

	data := struct {
		Date           string
		SelectedCount  int
		TotalCollected int
		Threshold      int
		Sections       []sectionView
	}{
		Date:           now.UTC().Format("2006-01-02"),
		SelectedCount:  f.SelectedCount,
		TotalCollected: f.TotalCollected,
		Threshold:      f.Threshold,
		Sections:       sections,
	}

	buf := &strings.Builder{}
	if err := mdTmpl.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	return []byte(buf.String()), nil
}

// Write renders the digest and writes it to the dated path, overwriting a
// previous digest for the same day. The run date is taken once, so the
// header and the file name agree even when the run straddles midnight.
func (r *Renderer) Write(f store.Filtered, summaries map[string]string) (string, error) {
	now := r.now()

	bts, err := r.render(f, summaries, now)
	if err != nil {
		return "", err
	}

	path := r.Path(now)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("make digest dir: %w", err)
	}

	if err := os.WriteFile(path, bts, 0o644); err != nil {
		return "", fmt.Errorf("write digest: %w", err)
	}

	return path, nil
}
