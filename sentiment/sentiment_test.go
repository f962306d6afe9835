package sentiment

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/bolt"
)

func TestScore(t *testing.T) {
	tts := map[string]struct {
		text     string
		expected int
	}{
		"positive":        {"This was absolutely delicious, my new favorite!", 5},
		"negative":        {"Bland and soggy, what a waste.", -5},
		"mixed":           {"Great idea but the result was dry.", 2},
		"neutral":         {"I substituted butter with oil.", 0},
		"empty":           {"", 0},
		"case and punct.": {"DELICIOUS!!! loved it", 6},
	}

	for name, tt := range tts {
		assert.Equal(t, tt.expected, Score(tt.text), name)
	}
}

func TestHandleCommentCreate(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "")
	require.NoError(t, err)
	filename := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(filename)

	driver := &bolt.Driver{}
	require.NoError(t, driver.Open(filename))
	defer driver.Close()

	comments := &bolt.CommentStore{Driver: driver}
	service := NewService(comments)

	comment := foodfellas.Comment{ID: "c1", RecipeID: "r1", Comment: "delicious, will make again"}
	require.NoError(t, comments.Put(&comment))

	change := foodfellas.DocumentChange{
		Path:   "recipes/r1/comments/c1",
		Params: map[string]string{"recipeId": "r1", "commentId": "c1"},
		After:  foodfellas.SnapshotOf(comment),
	}
	require.NoError(t, service.HandleCommentCreate(context.Background(), change))

	scored, err := comments.Get("r1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, scored.SentimentScore)

	// An update event (before exists) does not rescore.
	require.NoError(t, comments.Update("r1", "c1", func(c *foodfellas.Comment) { c.SentimentScore = 99 }))
	change.Before = foodfellas.SnapshotOf(comment)
	require.NoError(t, service.HandleCommentCreate(context.Background(), change))

	scored, err = comments.Get("r1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 99, scored.SentimentScore)
}
