package foodfellas

// Document is a sanitized projection ready to be written to a search index,
// keyed by the source document's own ID.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// BulkResult reports the outcome of one document in a bulk import.
type BulkResult struct {
	ID  string
	Err error
}

// SearchIndex mirrors documents into an external search engine. Upsert has
// replace semantics: the indexed entry is always the full projection, never a
// partial patch. Deleting an ID that is not indexed is a success.
type SearchIndex interface {
	Upsert(id string, fields map[string]interface{}) error
	Delete(id string) error
	// Bulk imports all documents and returns a per-document report. A
	// failure on one document does not prevent the others from being
	// imported.
	Bulk(docs []Document) ([]BulkResult, error)
}

type RecipeSearch struct {
	Q      string   `json:"q"`
	Tags   []string `json:"tags"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

type RecipeSearchResults struct {
	IDs   []string `json:"ids"`
	Total uint64   `json:"total"`
}

type RecipeIndex interface {
	SearchIndex
	Search(RecipeSearch) (RecipeSearchResults, error)
}
