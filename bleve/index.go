package bleve

import (
	"os"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/mapping"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
)

// open opens the index at path, creating it with the given mapping when it
// does not exist yet.
func open(path string, m mapping.IndexMapping) (bleve.Index, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return bleve.New(path, m)
	}
	return bleve.Open(path)
}

// upsert indexes the full projection under id. Bleve replaces the whole
// document for an existing ID, which gives the replace-not-patch semantics
// the projections rely on.
func upsert(index bleve.Index, id string, fields map[string]interface{}) error {
	if err := index.Index(id, fields); err != nil {
		return errors.New("error indexing "+id, errors.WithCause(err))
	}
	return nil
}

// remove deletes id from the index. Bleve treats deleting an ID that is not
// indexed as a success, which is the behavior the propagator needs.
func remove(index bleve.Index, id string) error {
	if err := index.Delete(id); err != nil {
		return errors.New("error deleting "+id, errors.WithCause(err))
	}
	return nil
}

// bulk imports all documents in one batch and reports per document. A
// document that cannot be enqueued is reported failed and does not prevent
// the rest of the batch from being committed.
func bulk(index bleve.Index, docs []foodfellas.Document) ([]foodfellas.BulkResult, error) {
	results := make([]foodfellas.BulkResult, len(docs))
	batch := index.NewBatch()

	enqueued := 0
	for i, doc := range docs {
		results[i] = foodfellas.BulkResult{ID: doc.ID}
		if err := batch.Index(doc.ID, doc.Fields); err != nil {
			results[i].Err = err
			continue
		}
		enqueued++
	}

	if enqueued > 0 {
		if err := index.Batch(batch); err != nil {
			return results, errors.New("error committing batch", errors.WithCause(err))
		}
	}
	return results, nil
}
