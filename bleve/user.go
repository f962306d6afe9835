package bleve

import (
	"github.com/blevesearch/bleve"

	foodfellas "github.com/eliasantony/food-fellas"
)

// UserIndex mirrors user projections into a bleve index.
type UserIndex struct {
	index bleve.Index
}

func NewUserIndex(path string) (*UserIndex, error) {
	index, err := open(path, bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	return &UserIndex{index: index}, nil
}

func (s *UserIndex) Close() error {
	if s.index == nil {
		return nil
	}
	return s.index.Close()
}

func (s *UserIndex) Upsert(id string, fields map[string]interface{}) error {
	return upsert(s.index, id, fields)
}

func (s *UserIndex) Delete(id string) error {
	return remove(s.index, id)
}

func (s *UserIndex) Bulk(docs []foodfellas.Document) ([]foodfellas.BulkResult, error) {
	return bulk(s.index, docs)
}

func (s *UserIndex) Count() (uint64, error) {
	return s.index.DocCount()
}
