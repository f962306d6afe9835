package bleve

import (
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	foodfellas "github.com/eliasantony/food-fellas"
)

// RecipeIndex mirrors recipe projections into a bleve index and serves the
// recipe search surface.
type RecipeIndex struct {
	index bleve.Index
}

func NewRecipeIndex(path string) (*RecipeIndex, error) {
	index, err := open(path, RecipeMapping())
	if err != nil {
		return nil, err
	}
	return &RecipeIndex{index: index}, nil
}

// RecipeMapping analyzes the free-text fields in English and leaves the rest
// to the default mapping.
func RecipeMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = en.AnalyzerName

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("title", text)
	doc.AddFieldMappingsAt("description", text)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

func (s *RecipeIndex) Close() error {
	if s.index == nil {
		return nil
	}
	return s.index.Close()
}

func (s *RecipeIndex) Upsert(id string, fields map[string]interface{}) error {
	return upsert(s.index, id, fields)
}

func (s *RecipeIndex) Delete(id string) error {
	return remove(s.index, id)
}

func (s *RecipeIndex) Bulk(docs []foodfellas.Document) ([]foodfellas.BulkResult, error) {
	return bulk(s.index, docs)
}

func (s *RecipeIndex) Count() (uint64, error) {
	return s.index.DocCount()
}

func (s *RecipeIndex) Search(search foodfellas.RecipeSearch) (foodfellas.RecipeSearchResults, error) {
	q := andQ(
		query.NewMatchAllQuery(),
		s.textQuery(search.Q),
		s.tagsQuery(search.Tags),
	)

	request := bleve.NewSearchRequest(q)
	request.SortBy([]string{"-_score", "_id"})
	if search.Limit > 0 {
		request.Size = search.Limit
	}
	request.From = search.Offset

	results, err := s.index.Search(request)
	if err != nil {
		return foodfellas.RecipeSearchResults{}, err
	}

	ids := make([]string, len(results.Hits))
	for i, hit := range results.Hits {
		ids[i] = hit.ID
	}

	return foodfellas.RecipeSearchResults{
		IDs:   ids,
		Total: results.Total,
	}, nil
}

func (s *RecipeIndex) textQuery(queryString string) query.Query {
	words := strings.Fields(queryString)
	if len(words) == 0 {
		return nil
	}

	qs := make([]query.Query, 0, 4*len(words))
	for _, word := range words {
		for _, field := range []string{"title", "description", "ingredientNames", "tagNames"} {
			q := query.NewMatchQuery(word)
			q.SetField(field)
			qs = append(qs, q)
		}
	}
	return orQ(qs...)
}

func (s *RecipeIndex) tagsQuery(tags []string) query.Query {
	if len(tags) == 0 {
		return nil
	}

	qs := make([]query.Query, len(tags))
	for i, tag := range tags {
		q := query.NewMatchQuery(tag)
		q.SetField("tagNames")
		qs[i] = q
	}
	return andQ(qs...)
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}
