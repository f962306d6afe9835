package stats

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/bolt"
	"github.com/eliasantony/food-fellas/log"
)

func createService(t *testing.T) (*Service, *bolt.RecipeStore, *bolt.RatingStore, *bolt.UserStore, func()) {
	tmpFile, err := os.CreateTemp("", "")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}
	filename := tmpFile.Name()
	tmpFile.Close()

	driver := &bolt.Driver{}
	if err := driver.Open(filename); err != nil {
		os.Remove(filename)
		t.Fatal("could not open bolt:", err)
	}

	recipes := &bolt.RecipeStore{Driver: driver}
	ratings := &bolt.RatingStore{Driver: driver}
	users := &bolt.UserStore{Driver: driver}
	service := NewService(recipes, ratings, users, log.Discard())

	return service, recipes, ratings, users, func() {
		driver.Close()
		os.Remove(filename)
	}
}

func TestRecomputeRecipe(t *testing.T) {
	service, recipes, ratings, _, f := createService(t)
	defer f()
	ctx := context.Background()

	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "r1", AuthorID: "u1"}))
	for user, value := range map[string]int{"a": 5, "b": 3, "c": 4} {
		require.NoError(t, ratings.Put(&foodfellas.Rating{RecipeID: "r1", UserID: user, Rating: value}))
	}

	require.NoError(t, service.RecomputeRecipe(ctx, "r1"))

	recipe, err := recipes.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, recipe.AverageRating)
	assert.Equal(t, 3, recipe.RatingsCount)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 1}, recipe.RatingCounts)

	// The histogram partitions the count exactly.
	total := 0
	for _, n := range recipe.RatingCounts {
		total += n
	}
	assert.Equal(t, recipe.RatingsCount, total)

	// Deleting the 3-star rating lifts the average to 4.5.
	require.NoError(t, ratings.Delete("r1", "b"))
	require.NoError(t, service.RecomputeRecipe(ctx, "r1"))

	recipe, err = recipes.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, recipe.AverageRating)
	assert.Equal(t, 2, recipe.RatingsCount)
}

func TestRecomputeRecipe_Idempotent(t *testing.T) {
	service, recipes, ratings, _, f := createService(t)
	defer f()
	ctx := context.Background()

	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "r1", AuthorID: "u1"}))
	require.NoError(t, ratings.Put(&foodfellas.Rating{RecipeID: "r1", UserID: "a", Rating: 2}))
	require.NoError(t, ratings.Put(&foodfellas.Rating{RecipeID: "r1", UserID: "b", Rating: 4}))

	require.NoError(t, service.RecomputeRecipe(ctx, "r1"))
	first, err := recipes.Get("r1")
	require.NoError(t, err)

	require.NoError(t, service.RecomputeRecipe(ctx, "r1"))
	second, err := recipes.Get("r1")
	require.NoError(t, err)

	assert.Equal(t, first.AverageRating, second.AverageRating)
	assert.Equal(t, first.RatingsCount, second.RatingsCount)
	assert.Equal(t, first.RatingCounts, second.RatingCounts)
}

func TestRecomputeRecipe_ZeroRatings(t *testing.T) {
	service, recipes, _, _, f := createService(t)
	defer f()

	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "r1", AuthorID: "u1", AverageRating: 4.2, RatingsCount: 7}))
	require.NoError(t, service.RecomputeRecipe(context.Background(), "r1"))

	recipe, err := recipes.Get("r1")
	require.NoError(t, err)
	// Exactly zero, never NaN.
	assert.Equal(t, 0.0, recipe.AverageRating)
	assert.Equal(t, 0, recipe.RatingsCount)
}

func TestRecomputeRecipe_CascadesToAuthor(t *testing.T) {
	service, recipes, ratings, users, f := createService(t)
	defer f()
	ctx := context.Background()

	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "r1", AuthorID: "u1"}))
	require.NoError(t, ratings.Put(&foodfellas.Rating{RecipeID: "r1", UserID: "a", Rating: 5}))

	require.NoError(t, service.RecomputeRecipe(ctx, "r1"))

	user, err := users.Get("u1")
	require.NoError(t, err)
	require.NotNil(t, user, "user aggregate should be created by merge")
	assert.Equal(t, 1, user.RecipeCount)
	assert.Equal(t, 1, user.TotalReviews)
	assert.Equal(t, 5.0, user.AverageRating)
}

func TestRecomputeRecipe_NoAuthorSkipsCascade(t *testing.T) {
	service, recipes, ratings, users, f := createService(t)
	defer f()

	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "r1"}))
	require.NoError(t, ratings.Put(&foodfellas.Rating{RecipeID: "r1", UserID: "a", Rating: 4}))

	require.NoError(t, service.RecomputeRecipe(context.Background(), "r1"))

	// No ghost user document was created.
	user, err := users.Get("")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRecomputeUser(t *testing.T) {
	service, recipes, _, users, f := createService(t)
	defer f()

	// (averageRating, ratingsCount) pairs (4.0, 3) and (0, 0): the unrated
	// recipe contributes weight zero, not a skipped entry.
	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "r1", AuthorID: "u1", AverageRating: 4.0, RatingsCount: 3}))
	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "r2", AuthorID: "u1"}))

	require.NoError(t, service.RecomputeUser(context.Background(), "u1"))

	user, err := users.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, 2, user.RecipeCount)
	assert.Equal(t, 3, user.TotalReviews)
	assert.Equal(t, 4.0, user.AverageRating)
}

func TestRecomputeUser_NoReviews(t *testing.T) {
	service, recipes, _, users, f := createService(t)
	defer f()

	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "r1", AuthorID: "u1"}))
	require.NoError(t, service.RecomputeUser(context.Background(), "u1"))

	user, err := users.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, user.RecipeCount)
	assert.Equal(t, 0, user.TotalReviews)
	assert.Equal(t, 0.0, user.AverageRating)
}

func TestDeriveRecipeFields(t *testing.T) {
	service, recipes, _, _, f := createService(t)
	defer f()

	recipe := foodfellas.Recipe{
		ID:       "r1",
		AuthorID: "u1",
		Ingredients: []foodfellas.IngredientEntry{
			{Ingredient: foodfellas.Ingredient{IngredientName: "Tomato"}},
			{Ingredient: foodfellas.Ingredient{IngredientName: "  "}},
			{Ingredient: foodfellas.Ingredient{IngredientName: "Basil"}},
		},
		Tags: []foodfellas.TagRef{
			{Name: "Italian"},
			{Name: ""},
		},
	}
	require.NoError(t, recipes.Upsert(&recipe))

	require.NoError(t, service.DeriveRecipeFields(context.Background(), "r1"))

	derived, err := recipes.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato", "Basil"}, derived.IngredientNames)
	assert.Equal(t, []string{"Italian"}, derived.TagNames)
	assert.Equal(t, 0.0, derived.AverageRating)
}
