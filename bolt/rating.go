package bolt

import (
	"encoding/json"

	"github.com/boltdb/bolt"

	foodfellas "github.com/eliasantony/food-fellas"
)

// RatingStore stores ratings as a nested bucket per recipe, keyed by the
// rater's user ID: one rating per user per recipe.
type RatingStore struct {
	Driver *Driver
}

func (s *RatingStore) Get(recipeID, userID string) (*foodfellas.Rating, error) {
	var rating *foodfellas.Rating
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(ratingBucket).Bucket([]byte(recipeID))
		if b == nil {
			return nil
		}

		data := b.Get([]byte(userID))
		if data == nil {
			return nil
		}

		rating = &foodfellas.Rating{}
		return json.Unmarshal(data, rating)
	})
	if err != nil {
		return nil, err
	}

	return rating, nil
}

func (s *RatingStore) Put(rating *foodfellas.Rating) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(ratingBucket).CreateBucketIfNotExists([]byte(rating.RecipeID))
		if err != nil {
			return err
		}

		data, err := json.Marshal(rating)
		if err != nil {
			return err
		}
		return b.Put([]byte(rating.UserID), data)
	})
}

func (s *RatingStore) Delete(recipeID, userID string) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(ratingBucket).Bucket([]byte(recipeID))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(userID))
	})
}

func (s *RatingStore) ByRecipe(recipeID string) ([]*foodfellas.Rating, error) {
	ratings := []*foodfellas.Rating{}
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(ratingBucket).Bucket([]byte(recipeID))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, data := c.First(); k != nil; k, data = c.Next() {
			var rating foodfellas.Rating
			if err := json.Unmarshal(data, &rating); err != nil {
				return err
			}
			ratings = append(ratings, &rating)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ratings, nil
}
