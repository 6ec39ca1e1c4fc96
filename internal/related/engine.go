package related

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/Hemanthkumar04/newslens/internal/debuglog"
	"github.com/Hemanthkumar04/newslens/internal/newsapi"
)

// DefaultLimit is how many related articles a lookup returns.
const DefaultLimit = 5

// maxQueryTerms bounds the disjunction built from long descriptions.
const maxQueryTerms = 32

// Match pairs a related article with its similarity score. Scores are
// normalized against the best possible hit and rounded to three decimals,
// so a near-duplicate scores close to 1.0.
type Match struct {
	Article newsapi.Article
	Score   float64
}

// Engine finds articles similar to a given one within the current fetch.
// The index is memory-only and replaced wholesale on every fetch; nothing
// touches disk.
type Engine struct {
	mu  sync.RWMutex
	idx bleve.Index
}

func NewEngine() (*Engine, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating related index: %w", err)
	}
	return &Engine{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true

	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = standard.Name
	desc.Store = true

	source := bleve.NewTextFieldMapping()
	source.Analyzer = standard.Name
	source.Store = true

	// Carried along for reconstructing results, never searched
	stored := bleve.NewTextFieldMapping()
	stored.Index = false
	stored.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("description", desc)
	dm.AddFieldMappingsAt("source", source)
	dm.AddFieldMappingsAt("url", stored)
	dm.AddFieldMappingsAt("urlToImage", stored)
	dm.AddFieldMappingsAt("publishedAt", stored)

	im.DefaultMapping = dm
	return im
}

// Index replaces the corpus with the given articles. Entries with neither
// title nor description carry nothing to match on and are skipped.
func (e *Engine) Index(articles []newsapi.Article) error {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("creating related index: %w", err)
	}

	batch := idx.NewBatch()
	indexed := 0
	for _, a := range articles {
		if strings.TrimSpace(a.Title+a.Description) == "" {
			continue
		}
		_ = batch.Index(docID(a), map[string]any{
			"title":       a.Title,
			"description": a.Description,
			"source":      a.Source.Name,
			"url":         a.URL,
			"urlToImage":  a.URLToImage,
			"publishedAt": a.PublishedAt,
		})
		indexed++
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return fmt.Errorf("indexing articles: %w", err)
	}

	e.mu.Lock()
	old := e.idx
	e.idx = idx
	e.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}

	debuglog.Debugf("related: indexed %d of %d articles", indexed, len(articles))
	return nil
}

// Related returns up to limit articles similar to the given one, best
// match first. The article itself is excluded by URL. limit <= 0 uses
// DefaultLimit.
func (e *Engine) Related(article newsapi.Article, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	terms := tokenize(article.Title + " " + article.Description)
	if len(terms) == 0 {
		return []Match{}, nil
	}
	if len(terms) > maxQueryTerms {
		terms = terms[:maxQueryTerms]
	}

	var qs []bleveQuery.Query
	for _, term := range terms {
		// title^2
		qt := bleve.NewMatchQuery(term)
		qt.SetField("title")
		qt.SetBoost(2.0)
		qs = append(qs, qt)
		// description^1
		qd := bleve.NewMatchQuery(term)
		qd.SetField("description")
		qd.SetBoost(1.0)
		qs = append(qs, qd)
	}

	q := bleve.NewDisjunctionQuery(qs...)
	// One extra hit so dropping the article itself still fills the limit
	req := bleve.NewSearchRequestOptions(q, limit+1, 0, false)
	req.Fields = []string{"title", "description", "source", "url", "urlToImage", "publishedAt"}

	e.mu.RLock()
	res, err := e.idx.Search(req)
	e.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("related search: %w", err)
	}

	if len(res.Hits) == 0 {
		return []Match{}, nil
	}

	// The top hit is almost always the article itself; scoring relative
	// to it makes 1.0 mean "as similar as an exact copy".
	top := res.Hits[0].Score

	self := docID(article)
	matches := make([]Match, 0, limit)
	for _, h := range res.Hits {
		if h.ID == self {
			continue
		}
		score := 0.0
		if top > 0 {
			score = math.Round(h.Score/top*1000) / 1000
		}
		matches = append(matches, Match{Article: hitArticle(h.Fields), Score: score})
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// DocCount reports how many articles are currently indexed.
func (e *Engine) DocCount() (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.idx.DocCount()
}

// Close releases the in-memory index. The engine is unusable afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.idx.Close()
}

// docID keys an article by URL, falling back to the title for entries
// that somehow arrive without one.
func docID(a newsapi.Article) string {
	if a.URL != "" {
		return a.URL
	}
	return a.Title
}

func hitArticle(fields map[string]any) newsapi.Article {
	var a newsapi.Article
	if t, ok := fields["title"].(string); ok {
		a.Title = t
	}
	if d, ok := fields["description"].(string); ok {
		a.Description = d
	}
	if s, ok := fields["source"].(string); ok {
		a.Source = newsapi.Source{Name: s}
	}
	if u, ok := fields["url"].(string); ok {
		a.URL = u
	}
	if img, ok := fields["urlToImage"].(string); ok {
		a.URLToImage = img
	}
	if p, ok := fields["publishedAt"].(string); ok {
		a.PublishedAt = p
	}
	return a
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-character fragments.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}
