package bolt

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/boltdb/bolt"
)

var (
	recipeBucket         = []byte("recipes")
	recipeCreatedBucket  = []byte("recipesByCreated")
	userBucket           = []byte("users")
	userCreatedBucket    = []byte("usersByCreated")
	ratingBucket         = []byte("ratings")
	commentBucket        = []byte("comments")
	followerBucket       = []byte("followers")
	followingBucket      = []byte("following")
	interactionBucket    = []byte("interactions")
	collectionBucket     = []byte("collections")
	recommendationBucket = []byte("recommendations")
	tagBucket            = []byte("tags")
)

var buckets = [][]byte{
	recipeBucket,
	recipeCreatedBucket,
	userBucket,
	userCreatedBucket,
	ratingBucket,
	commentBucket,
	followerBucket,
	followingBucket,
	interactionBucket,
	collectionBucket,
	recommendationBucket,
	tagBucket,
}

// Driver owns the bolt database handle shared by all stores.
type Driver struct {
	store *bolt.DB
}

func (d *Driver) Open(path string) error {
	store, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return err
	}

	err = store.Update(func(tx *bolt.Tx) error {
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		store.Close()
		return err
	}

	d.store = store
	return nil
}

func (d *Driver) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}

// ------------------------------------------------------------------------------------------------
// Helpers
// ------------------------------------------------------------------------------------------------

// createdKey builds the key of the creation-time index: 8-byte big endian
// millis followed by the document ID, so iteration order is creation time
// with the ID as tiebreak.
func createdKey(millis int64, id string) []byte {
	b := make([]byte, 8, 8+len(id))
	binary.BigEndian.PutUint64(b, uint64(millis))
	return append(b, id...)
}

// seekAfter positions c strictly after the given key and returns the first
// following entry.
func seekAfter(c *bolt.Cursor, key []byte) ([]byte, []byte) {
	k, v := c.Seek(key)
	if k != nil && bytes.Equal(k, key) {
		k, v = c.Next()
	}
	return k, v
}
