package bolt

import (
	"encoding/json"

	"github.com/boltdb/bolt"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
)

// CommentStore stores comments as a nested bucket per recipe.
type CommentStore struct {
	Driver *Driver
}

func (s *CommentStore) Get(recipeID, commentID string) (*foodfellas.Comment, error) {
	var comment *foodfellas.Comment
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(commentBucket).Bucket([]byte(recipeID))
		if b == nil {
			return nil
		}

		data := b.Get([]byte(commentID))
		if data == nil {
			return nil
		}

		comment = &foodfellas.Comment{}
		return json.Unmarshal(data, comment)
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *CommentStore) Put(comment *foodfellas.Comment) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(commentBucket).CreateBucketIfNotExists([]byte(comment.RecipeID))
		if err != nil {
			return err
		}

		if comment.CreatedAt == 0 {
			comment.CreatedAt = foodfellas.NowMillis()
		}

		data, err := json.Marshal(comment)
		if err != nil {
			return err
		}
		return b.Put([]byte(comment.ID), data)
	})
}

func (s *CommentStore) Update(recipeID, commentID string, fn func(*foodfellas.Comment)) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(commentBucket).Bucket([]byte(recipeID))
		if b == nil {
			return errors.NotFound("no comments for recipe " + recipeID)
		}

		data := b.Get([]byte(commentID))
		if data == nil {
			return errors.NotFound("no comment for id " + commentID)
		}

		var comment foodfellas.Comment
		if err := json.Unmarshal(data, &comment); err != nil {
			return err
		}

		fn(&comment)

		data, err := json.Marshal(&comment)
		if err != nil {
			return err
		}
		return b.Put([]byte(commentID), data)
	})
}

func (s *CommentStore) ByRecipe(recipeID string) ([]*foodfellas.Comment, error) {
	comments := []*foodfellas.Comment{}
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(commentBucket).Bucket([]byte(recipeID))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, data := c.First(); k != nil; k, data = c.Next() {
			var comment foodfellas.Comment
			if err := json.Unmarshal(data, &comment); err != nil {
				return err
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}
