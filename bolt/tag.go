package bolt

import (
	"encoding/json"

	"github.com/boltdb/bolt"

	foodfellas "github.com/eliasantony/food-fellas"
)

// TagStore stores the tag catalogue as JSON values keyed by tag name.
type TagStore struct {
	Driver *Driver
}

func (s *TagStore) Upsert(tag foodfellas.TagRef) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(tag)
		if err != nil {
			return err
		}
		return tx.Bucket(tagBucket).Put([]byte(tag.Name), data)
	})
}

func (s *TagStore) List() ([]foodfellas.TagRef, error) {
	tags := make([]foodfellas.TagRef, 0)
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		return tx.Bucket(tagBucket).ForEach(func(k, v []byte) error {
			var tag foodfellas.TagRef
			if err := json.Unmarshal(v, &tag); err != nil {
				return err
			}
			tags = append(tags, tag)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}
