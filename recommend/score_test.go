package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	foodfellas "github.com/eliasantony/food-fellas"
)

func TestScore(t *testing.T) {
	user := &foodfellas.User{
		ID:                 "alice",
		DietaryPreferences: []string{"Vegetarian"},
		FavoriteCuisines:   []string{"Italian"},
	}

	tts := map[string]struct {
		recipe   foodfellas.Recipe
		activity Activity
		expected int
	}{
		"no match": {
			recipe:   foodfellas.Recipe{ID: "r1", AuthorID: "bob", TagNames: []string{"Mexican"}},
			expected: 0,
		},
		"dietary preference": {
			recipe:   foodfellas.Recipe{ID: "r1", AuthorID: "bob", TagNames: []string{"Vegetarian"}},
			expected: 5,
		},
		"favorite cuisine": {
			recipe:   foodfellas.Recipe{ID: "r1", AuthorID: "bob", TagNames: []string{"Italian"}},
			expected: 5,
		},
		"recently viewed": {
			recipe:   foodfellas.Recipe{ID: "r1", AuthorID: "bob"},
			activity: Activity{RecentlyViewed: []string{"r1"}},
			expected: 2,
		},
		"saved in collection": {
			recipe:   foodfellas.Recipe{ID: "r1", AuthorID: "bob"},
			activity: Activity{SavedRecipes: []string{"r1"}},
			expected: 3,
		},
		"followed author": {
			recipe:   foodfellas.Recipe{ID: "r1", AuthorID: "bob"},
			activity: Activity{Following: []string{"bob"}},
			expected: 3,
		},
		"popular": {
			recipe:   foodfellas.Recipe{ID: "r1", AuthorID: "bob", AverageRating: 4.2, RatingsCount: 11},
			expected: 5,
		},
		"highly rated but too few ratings": {
			recipe:   foodfellas.Recipe{ID: "r1", AuthorID: "bob", AverageRating: 4.8, RatingsCount: 10},
			expected: 0,
		},
		"everything at once": {
			recipe: foodfellas.Recipe{
				ID:            "r1",
				AuthorID:      "bob",
				TagNames:      []string{"Vegetarian", "Italian"},
				AverageRating: 4.5,
				RatingsCount:  42,
			},
			activity: Activity{
				RecentlyViewed: []string{"r1"},
				SavedRecipes:   []string{"r1"},
				Following:      []string{"bob"},
			},
			expected: 23,
		},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(user, tt.activity, &tt.recipe))
		})
	}
}
