package recommend

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/bolt"
	"github.com/eliasantony/food-fellas/log"
)

type fakeNotifier struct {
	notified []string
}

func (n *fakeNotifier) WeeklyRecommendations(ctx context.Context, userID string) {
	n.notified = append(n.notified, userID)
}

func createDriver(t *testing.T) (*bolt.Driver, func()) {
	tmp, err := ioutil.TempFile("", "recommend_test")
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	driver := &bolt.Driver{}
	require.NoError(t, driver.Open(tmp.Name()))

	return driver, func() {
		driver.Close()
		os.Remove(tmp.Name())
	}
}

func TestService_Run(t *testing.T) {
	driver, clean := createDriver(t)
	defer clean()

	users := &bolt.UserStore{Driver: driver}
	recipes := &bolt.RecipeStore{Driver: driver}

	alice := &foodfellas.User{ID: "alice", DietaryPreferences: []string{"Vegan"}}
	require.NoError(t, users.Upsert(alice))

	// More recipes than the list keeps, with increasing match quality.
	for i := 0; i < 15; i++ {
		recipe := &foodfellas.Recipe{
			ID:       fmt.Sprintf("recipe-%02d", i),
			AuthorID: "bob",
			Title:    fmt.Sprintf("Recipe %d", i),
		}
		if i >= 12 {
			recipe.TagNames = []string{"Vegan"}
		}
		require.NoError(t, recipes.Upsert(recipe))
	}
	// Alice's own recipe must never be recommended to her.
	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "mine", AuthorID: "alice", TagNames: []string{"Vegan"}}))

	notifier := &fakeNotifier{}
	service := NewService(users, recipes, notifier, log.Discard())
	require.NoError(t, service.Run(context.Background()))

	recs, err := users.Recommendations("alice")
	require.NoError(t, err)
	require.Len(t, recs, topN)

	// Matching recipes come first, sorted by score.
	matched := map[string]bool{"recipe-12": true, "recipe-13": true, "recipe-14": true}
	for i, rec := range recs {
		assert.NotEqual(t, "mine", rec.RecipeID)
		if i < 3 {
			assert.True(t, matched[rec.RecipeID], "expected a matching recipe at rank %d, got %s", i, rec.RecipeID)
			assert.Equal(t, 5, rec.Score)
		} else {
			assert.Equal(t, 0, rec.Score)
		}
	}

	assert.Equal(t, []string{"alice"}, notifier.notified)
}

func TestService_Run_replacesPreviousList(t *testing.T) {
	driver, clean := createDriver(t)
	defer clean()

	users := &bolt.UserStore{Driver: driver}
	recipes := &bolt.RecipeStore{Driver: driver}

	require.NoError(t, users.Upsert(&foodfellas.User{ID: "alice"}))
	require.NoError(t, users.ReplaceRecommendations("alice", []*foodfellas.Recommendation{
		{RecipeID: "stale", Score: 99},
	}))
	require.NoError(t, recipes.Upsert(&foodfellas.Recipe{ID: "fresh", AuthorID: "bob"}))

	service := NewService(users, recipes, &fakeNotifier{}, log.Discard())
	require.NoError(t, service.Run(context.Background()))

	recs, err := users.Recommendations("alice")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "fresh", recs[0].RecipeID)
}
