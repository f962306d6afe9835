package bolt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foodfellas "github.com/eliasantony/food-fellas"
)

func TestUserStore_MergeCreatesWhenAbsent(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &UserStore{Driver: driver}

	err := store.Merge("u1", func(u *foodfellas.User) {
		u.RecipeCount = 3
		u.AverageRating = 4.2
	})
	require.NoError(t, err)

	user, err := store.Get("u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 3, user.RecipeCount)
	assert.Equal(t, 4.2, user.AverageRating)
	assert.NotZero(t, user.CreatedTime)
}

func TestUserStore_MergeKeepsOtherFields(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &UserStore{Driver: driver}

	require.NoError(t, store.Upsert(&foodfellas.User{ID: "u1", DisplayName: "Elias", Subscribed: true}))

	err := store.Merge("u1", func(u *foodfellas.User) {
		u.TotalReviews = 7
	})
	require.NoError(t, err)

	user, err := store.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, "Elias", user.DisplayName)
	assert.True(t, user.Subscribed)
	assert.Equal(t, 7, user.TotalReviews)
}

func TestUserStore_Follow(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &UserStore{Driver: driver}

	require.NoError(t, store.Follow("u1", "u2"))
	require.NoError(t, store.Follow("u1", "u3"))

	followers, err := store.Followers("u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u2", "u3"}, followers)

	following, err := store.Following("u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, following)

	// No follows recorded -> empty, not an error.
	followers, err = store.Followers("nobody")
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestUserStore_ReplaceRecommendations(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &UserStore{Driver: driver}

	old := []*foodfellas.Recommendation{
		{RecipeID: "r1", Score: 10},
		{RecipeID: "r2", Score: 8},
	}
	require.NoError(t, store.ReplaceRecommendations("u1", old))

	fresh := []*foodfellas.Recommendation{
		{RecipeID: "r3", Score: 12},
	}
	require.NoError(t, store.ReplaceRecommendations("u1", fresh))

	recs, err := store.Recommendations("u1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "r3", recs[0].RecipeID)
}

func TestUserStore_ListPagination(t *testing.T) {
	driver, f := createDriver(t)
	defer f()
	store := &UserStore{Driver: driver}

	for i := 0; i < 7; i++ {
		user := foodfellas.User{ID: fmt.Sprintf("u%d", i), CreatedTime: int64(100 + i)}
		require.NoError(t, store.Upsert(&user))
	}

	seen := 0
	var cursor foodfellas.Cursor
	for {
		page, next, err := store.List(cursor, 3)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		seen += len(page)
		cursor = next
	}
	assert.Equal(t, 7, seen)
}
