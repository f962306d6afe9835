package bolt

import (
	"encoding/json"

	"github.com/boltdb/bolt"

	foodfellas "github.com/eliasantony/food-fellas"
)

// UserStore stores users as JSON values keyed by ID, with nested buckets for
// the followers, following, interactions, collections and recommendations
// sub-collections.
type UserStore struct {
	Driver *Driver
}

func (s *UserStore) Get(id string) (*foodfellas.User, error) {
	var user *foodfellas.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(userBucket).Get([]byte(id))
		if data == nil {
			return nil
		}

		user = &foodfellas.User{}
		return json.Unmarshal(data, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserStore) Upsert(user *foodfellas.User) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		if data := bucket.Get([]byte(user.ID)); data != nil {
			var existing foodfellas.User
			if err := json.Unmarshal(data, &existing); err != nil {
				return err
			}
			user.CreatedTime = existing.CreatedTime
		} else if user.CreatedTime == 0 {
			user.CreatedTime = foodfellas.NowMillis()
		}

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(user.ID), data); err != nil {
			return err
		}

		return tx.Bucket(userCreatedBucket).Put(createdKey(user.CreatedTime, user.ID), []byte(user.ID))
	})
}

// Merge applies fn to the stored user, creating the document first when it
// does not exist yet.
func (s *UserStore) Merge(id string, fn func(*foodfellas.User)) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		user := foodfellas.User{ID: id}
		created := false
		if data := bucket.Get([]byte(id)); data != nil {
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
		} else {
			user.CreatedTime = foodfellas.NowMillis()
			created = true
		}

		fn(&user)
		user.ID = id

		data, err := json.Marshal(&user)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(id), data); err != nil {
			return err
		}

		if created {
			return tx.Bucket(userCreatedBucket).Put(createdKey(user.CreatedTime, id), []byte(id))
		}
		return nil
	})
}

func (s *UserStore) Delete(id string) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}

		var user foodfellas.User
		if err := json.Unmarshal(data, &user); err != nil {
			return err
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return err
		}
		if err := tx.Bucket(userCreatedBucket).Delete(createdKey(user.CreatedTime, id)); err != nil {
			return err
		}

		subs := [][]byte{followerBucket, followingBucket, interactionBucket, collectionBucket, recommendationBucket}
		for _, sub := range subs {
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

func (s *UserStore) List(after foodfellas.Cursor, limit int) ([]*foodfellas.User, foodfellas.Cursor, error) {
	users := make([]*foodfellas.User, 0, limit)
	next := after

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)
		c := tx.Bucket(userCreatedBucket).Cursor()

		k, id := seekAfter(c, createdKey(after.CreatedAt, after.ID))
		for ; k != nil && len(users) < limit; k, id = c.Next() {
			data := bucket.Get(id)
			if data == nil {
				continue
			}

			var user foodfellas.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			users = append(users, &user)
			next = foodfellas.Cursor{CreatedAt: user.CreatedTime, ID: user.ID}
		}
		return nil
	})
	if err != nil {
		return nil, after, err
	}

	return users, next, nil
}

// ------------------------------------------------------------------------------------------------
// Sub-collections
// ------------------------------------------------------------------------------------------------

func (s *UserStore) Follow(userID, followerID string) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		followers, err := tx.Bucket(followerBucket).CreateBucketIfNotExists([]byte(userID))
		if err != nil {
			return err
		}
		if err := followers.Put([]byte(followerID), []byte{1}); err != nil {
			return err
		}

		following, err := tx.Bucket(followingBucket).CreateBucketIfNotExists([]byte(followerID))
		if err != nil {
			return err
		}
		return following.Put([]byte(userID), []byte{1})
	})
}

func (s *UserStore) Followers(userID string) ([]string, error) {
	return s.subKeys(followerBucket, userID)
}

func (s *UserStore) Following(userID string) ([]string, error) {
	return s.subKeys(followingBucket, userID)
}

func (s *UserStore) AddInteraction(userID, recipeID string) error {
	return s.putSubKey(interactionBucket, userID, recipeID)
}

func (s *UserStore) Interactions(userID string) ([]string, error) {
	return s.subKeys(interactionBucket, userID)
}

func (s *UserStore) SaveToCollection(userID, recipeID string) error {
	return s.putSubKey(collectionBucket, userID, recipeID)
}

func (s *UserStore) CollectionRecipes(userID string) ([]string, error) {
	return s.subKeys(collectionBucket, userID)
}

// ReplaceRecommendations drops the user's recommendations sub-collection and
// writes recs in the same transaction.
func (s *UserStore) ReplaceRecommendations(userID string, recs []*foodfellas.Recommendation) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		parent := tx.Bucket(recommendationBucket)
		if parent.Bucket([]byte(userID)) != nil {
			if err := parent.DeleteBucket([]byte(userID)); err != nil {
				return err
			}
		}

		b, err := parent.CreateBucket([]byte(userID))
		if err != nil {
			return err
		}

		for _, rec := range recs {
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(rec.RecipeID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *UserStore) Recommendations(userID string) ([]*foodfellas.Recommendation, error) {
	recs := []*foodfellas.Recommendation{}
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(recommendationBucket).Bucket([]byte(userID))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, data := c.First(); k != nil; k, data = c.Next() {
			var rec foodfellas.Recommendation
			if err := json.Unmarshal(data, &rec); err != nil {
				return err
			}
			recs = append(recs, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recs, nil
}

func (s *UserStore) putSubKey(bucket []byte, userID, key string) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(bucket).CreateBucketIfNotExists([]byte(userID))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte{1})
	})
}

func (s *UserStore) subKeys(bucket []byte, userID string) ([]string, error) {
	keys := []string{}
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket).Bucket([]byte(userID))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}
