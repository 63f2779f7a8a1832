package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/feedquiz/internal/storage"
)

// DefaultLimit caps search results when the caller passes zero.
const DefaultLimit = 10

var _ Index = (*QuestionIndex)(nil)

type QuestionIndex struct {
	idx bleve.Index
}

// OpenIndex opens the index at path, creating it when it does not exist.
func OpenIndex(path string) (*QuestionIndex, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	idx, err := bleve.Open(path)
	if err != nil {
		idx, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("opening index %s: %w", path, err)
		}
	}
	return &QuestionIndex{idx: idx}, nil
}

// NewMemIndex returns an index that lives only in memory.
func NewMemIndex() (*QuestionIndex, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &QuestionIndex{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	stored := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = standard.Name
		f.Store = true
		return f
	}
	unstored := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = standard.Name
		f.Store = false
		return f
	}

	dm.AddFieldMappingsAt("question_text", stored())
	dm.AddFieldMappingsAt("options", unstored())
	dm.AddFieldMappingsAt("explanation", unstored())
	dm.AddFieldMappingsAt("article_url", stored())

	im.DefaultMapping = dm
	return im
}

func (x *QuestionIndex) Add(q *storage.QuizQuestion) error {
	if q == nil {
		return storage.ErrNilQuestion
	}
	return x.idx.Index(q.ID, map[string]any{
		"question_text": q.QuestionText,
		"options":       strings.Join(q.Options, "\n"),
		"explanation":   q.ExplanationCorrect + "\n" + q.ExplanationOthers,
		"article_url":   q.ArticleURL,
	})
}

// field boosts: question text weighs most, the source URL least.
var boosts = []struct {
	field  string
	match  float64
	prefix float64
}{
	{"question_text", 4.0, 3.5},
	{"options", 2.0, 1.8},
	{"explanation", 1.0, 0.8},
	{"article_url", 0.5, 0.3},
}

// Search ranks questions against a free text query. Queries shorter than
// two characters return nothing.
func (x *QuestionIndex) Search(query string, limit int) ([]Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []Result{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var qs []bleveQuery.Query
	for _, tok := range tokenize(query) {
		for _, b := range boosts {
			m := bleve.NewMatchQuery(tok)
			m.SetField(b.field)
			m.SetBoost(b.match)
			qs = append(qs, m)

			p := bleve.NewPrefixQuery(tok)
			p.SetField(b.field)
			p.SetBoost(b.prefix)
			qs = append(qs, p)
		}
	}
	if len(qs) == 0 {
		return []Result{}, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	req.Fields = []string{"question_text", "article_url"}
	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching questions: %w", err)
	}

	out := make([]Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		r := Result{ID: h.ID, Score: h.Score}
		if t, ok := h.Fields["question_text"].(string); ok {
			r.QuestionText = t
		}
		if u, ok := h.Fields["article_url"].(string); ok {
			r.ArticleURL = u
		}
		out = append(out, r)
	}
	return out, nil
}

// DocCount reports total documents in the index.
func (x *QuestionIndex) DocCount() (int, error) {
	n, err := x.idx.DocCount()
	return int(n), err
}

func (x *QuestionIndex) Close() error {
	return x.idx.Close()
}
