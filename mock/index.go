package mock

import (
	"sort"
	"strings"

	foodfellas "github.com/eliasantony/food-fellas"
)

// RecipeIndex matches with naive substring search, enough for handler tests.
type RecipeIndex struct {
	docs map[string]map[string]interface{}

	UpsertErr error
}

func (i *RecipeIndex) init() {
	if i.docs == nil {
		i.docs = make(map[string]map[string]interface{})
	}
}

func (i *RecipeIndex) Upsert(id string, fields map[string]interface{}) error {
	i.init()
	if i.UpsertErr != nil {
		return i.UpsertErr
	}
	i.docs[id] = fields
	return nil
}

// Doc returns the indexed projection for id, nil when nothing is indexed.
func (i *RecipeIndex) Doc(id string) map[string]interface{} {
	i.init()
	return i.docs[id]
}

func (i *RecipeIndex) Delete(id string) error {
	i.init()
	delete(i.docs, id)
	return nil
}

func (i *RecipeIndex) Bulk(docs []foodfellas.Document) ([]foodfellas.BulkResult, error) {
	i.init()
	results := make([]foodfellas.BulkResult, len(docs))
	for n, doc := range docs {
		results[n] = foodfellas.BulkResult{ID: doc.ID, Err: i.Upsert(doc.ID, doc.Fields)}
	}
	return results, nil
}

func (i *RecipeIndex) Search(search foodfellas.RecipeSearch) (foodfellas.RecipeSearchResults, error) {
	i.init()

	ids := make([]string, 0, len(i.docs))
	for id, fields := range i.docs {
		if search.Q != "" && !containsText(fields, search.Q) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return foodfellas.RecipeSearchResults{IDs: ids, Total: uint64(len(ids))}, nil
}

func containsText(fields map[string]interface{}, q string) bool {
	q = strings.ToLower(q)
	for _, v := range fields {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
