package bolt

import (
	"encoding/json"

	"github.com/boltdb/bolt"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
)

// RecipeStore stores recipes as JSON values keyed by ID, with a secondary
// index bucket ordered by creation time for cursor pagination.
type RecipeStore struct {
	Driver *Driver
}

func (s *RecipeStore) Get(id string) (*foodfellas.Recipe, error) {
	var recipe *foodfellas.Recipe
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(recipeBucket).Get([]byte(id))
		if data == nil {
			return nil
		}

		recipe = &foodfellas.Recipe{}
		return json.Unmarshal(data, recipe)
	})
	if err != nil {
		return nil, err
	}

	return recipe, nil
}

func (s *RecipeStore) Upsert(recipe *foodfellas.Recipe) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(recipeBucket)

		// Creation time is immutable once set: it keys the pagination index.
		if data := bucket.Get([]byte(recipe.ID)); data != nil {
			var existing foodfellas.Recipe
			if err := json.Unmarshal(data, &existing); err != nil {
				return err
			}
			recipe.CreatedAt = existing.CreatedAt
		} else if recipe.CreatedAt == 0 {
			recipe.CreatedAt = foodfellas.NowMillis()
		}
		recipe.UpdatedAt = foodfellas.NowMillis()

		data, err := json.Marshal(recipe)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(recipe.ID), data); err != nil {
			return err
		}

		return tx.Bucket(recipeCreatedBucket).Put(createdKey(recipe.CreatedAt, recipe.ID), []byte(recipe.ID))
	})
}

// Update applies fn to the stored recipe in a single transaction. It returns
// a not-found error when the recipe does not exist.
func (s *RecipeStore) Update(id string, fn func(*foodfellas.Recipe)) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(recipeBucket)

		data := bucket.Get([]byte(id))
		if data == nil {
			return errors.NotFound("no recipe for id " + id)
		}

		var recipe foodfellas.Recipe
		if err := json.Unmarshal(data, &recipe); err != nil {
			return err
		}

		fn(&recipe)
		recipe.UpdatedAt = foodfellas.NowMillis()

		data, err := json.Marshal(&recipe)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(id), data)
	})
}

// Delete removes the recipe, its pagination index entry and its ratings and
// comments sub-collections in one transaction.
func (s *RecipeStore) Delete(id string) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(recipeBucket)

		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}

		var recipe foodfellas.Recipe
		if err := json.Unmarshal(data, &recipe); err != nil {
			return err
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return err
		}
		if err := tx.Bucket(recipeCreatedBucket).Delete(createdKey(recipe.CreatedAt, id)); err != nil {
			return err
		}

		for _, sub := range [][]byte{ratingBucket, commentBucket} {
			b := tx.Bucket(sub)
			if b.Bucket([]byte(id)) == nil {
				continue
			}
			if err := b.DeleteBucket([]byte(id)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *RecipeStore) ByAuthor(authorID string) ([]*foodfellas.Recipe, error) {
	var recipes []*foodfellas.Recipe
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(recipeBucket).Cursor()
		for k, data := c.First(); k != nil; k, data = c.Next() {
			var recipe foodfellas.Recipe
			if err := json.Unmarshal(data, &recipe); err != nil {
				return err
			}
			if recipe.AuthorID == authorID {
				recipes = append(recipes, &recipe)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recipes, nil
}

// List walks the creation-time index strictly after the cursor and returns
// up to limit recipes plus the cursor for the next page. An empty page means
// the collection is exhausted.
func (s *RecipeStore) List(after foodfellas.Cursor, limit int) ([]*foodfellas.Recipe, foodfellas.Cursor, error) {
	recipes := make([]*foodfellas.Recipe, 0, limit)
	next := after

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(recipeBucket)
		c := tx.Bucket(recipeCreatedBucket).Cursor()

		k, id := seekAfter(c, createdKey(after.CreatedAt, after.ID))
		for ; k != nil && len(recipes) < limit; k, id = c.Next() {
			data := bucket.Get(id)
			if data == nil {
				// Stale index entry, skip.
				continue
			}

			var recipe foodfellas.Recipe
			if err := json.Unmarshal(data, &recipe); err != nil {
				return err
			}
			recipes = append(recipes, &recipe)
			next = foodfellas.Cursor{CreatedAt: recipe.CreatedAt, ID: recipe.ID}
		}
		return nil
	})
	if err != nil {
		return nil, after, err
	}

	return recipes, next, nil
}
