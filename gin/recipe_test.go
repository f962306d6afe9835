package gin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/index"
	"github.com/eliasantony/food-fellas/log"
	"github.com/eliasantony/food-fellas/mock"
	"github.com/eliasantony/food-fellas/notify"
	"github.com/eliasantony/food-fellas/sentiment"
	"github.com/eliasantony/food-fellas/stats"
	"github.com/eliasantony/food-fellas/trigger"
)

type fakeNotifier struct {
	sent []foodfellas.Message
}

func (n *fakeNotifier) Send(ctx context.Context, msg foodfellas.Message) error {
	n.sent = append(n.sent, msg)
	return nil
}

type testEnv struct {
	recipes   *mock.RecipeStore
	ratings   *mock.RatingStore
	comments  *mock.CommentStore
	users     *mock.UserStore
	index     *mock.RecipeIndex
	userIndex *mock.RecipeIndex
	notifier  *fakeNotifier
}

// createRouter wires the handlers against in-memory stores with the full
// trigger chain registered, so every write flows through stats, sentiment and
// the index propagator like in production.
func createRouter(t *testing.T) (*gin.Engine, *testEnv) {
	env := &testEnv{
		recipes:   &mock.RecipeStore{},
		ratings:   &mock.RatingStore{},
		comments:  &mock.CommentStore{},
		users:     &mock.UserStore{},
		index:     &mock.RecipeIndex{},
		userIndex: &mock.RecipeIndex{},
		notifier:  &fakeNotifier{},
	}

	logger := log.Discard()
	dispatcher := trigger.NewDispatcher(logger)
	stats.NewService(env.recipes, env.ratings, env.users, logger).Register(dispatcher)
	sentiment.NewService(env.comments).Register(dispatcher)
	index.NewPropagator(env.recipes, env.users, env.index, env.userIndex, logger).Register(dispatcher)

	notifySvc := notify.NewService(env.notifier, env.users, logger)

	handler := RecipeHandler{
		Recipes:    env.recipes,
		Ratings:    env.ratings,
		Comments:   env.comments,
		Index:      env.index,
		Dispatcher: dispatcher,
		Notifier:   notifySvc,
	}
	userHandler := UserHandler{
		Users:      env.users,
		Dispatcher: dispatcher,
		Notifier:   notifySvc,
	}

	gin.SetMode(gin.ReleaseMode) // avoid unnecessary log
	router := gin.New()
	handler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)

	return router, env
}

func createReader(t *testing.T, i interface{}) io.Reader {
	data, err := json.Marshal(i)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestRecipeGet(t *testing.T) {
	router, env := createRouter(t)

	require.NoError(t, env.recipes.Upsert(&foodfellas.Recipe{ID: "r1", Title: "Shakshuka"}))

	var tts = []struct {
		query string
		code  int
	}{
		{"/foodfellas/recipes/r1", 200},
		{"/foodfellas/recipes/nope", 404},
	}

	for _, tt := range tts {
		req := httptest.NewRequest("GET", tt.query, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		assert.Equal(t, tt.code, resp.Code, tt.query)
	}
}

func TestRecipeInsert(t *testing.T) {
	router, env := createRouter(t)

	recipe := foodfellas.Recipe{
		Title:    "Pizza Yolo",
		AuthorID: "alice",
		Ingredients: []foodfellas.IngredientEntry{
			{Ingredient: foodfellas.Ingredient{IngredientName: "Mozzarella"}},
		},
		Tags: []foodfellas.TagRef{{Name: "Italian"}},
	}

	req := httptest.NewRequest("POST", "/foodfellas/recipes", createReader(t, recipe))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, 200, resp.Code, resp.Body.String())

	var body struct {
		Data foodfellas.Recipe `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.ID)

	// The write trigger flattened the derived fields in the store.
	stored, err := env.recipes.Get(body.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mozzarella"}, stored.IngredientNames)
	assert.Equal(t, []string{"Italian"}, stored.TagNames)

	// And the propagator mirrored the document into the index, including
	// the fields derived during the same dispatch.
	results, err := env.index.Search(foodfellas.RecipeSearch{Q: "pizza"})
	require.NoError(t, err)
	assert.Equal(t, []string{body.Data.ID}, results.IDs)

	doc := env.index.Doc(body.Data.ID)
	require.NotNil(t, doc)
	assert.Equal(t, []string{"Mozzarella"}, doc["ingredientNames"])
	assert.Equal(t, []string{"Italian"}, doc["tagNames"])

	// A client-chosen ID is rejected.
	req = httptest.NewRequest("POST", "/foodfellas/recipes", createReader(t, foodfellas.Recipe{ID: "custom"}))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, 400, resp.Code)
}

func TestRecipeDelete(t *testing.T) {
	router, env := createRouter(t)

	require.NoError(t, env.users.Upsert(&foodfellas.User{ID: "alice", RecipeCount: 1}))
	require.NoError(t, env.recipes.Upsert(&foodfellas.Recipe{ID: "r1", Title: "Ramen", AuthorID: "alice"}))
	require.NoError(t, env.index.Upsert("r1", map[string]interface{}{"title": "Ramen"}))

	req := httptest.NewRequest("DELETE", "/foodfellas/recipes/r1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, 200, resp.Code)

	stored, err := env.recipes.Get("r1")
	require.NoError(t, err)
	assert.Nil(t, stored)

	// The index entry went away with the document.
	results, err := env.index.Search(foodfellas.RecipeSearch{Q: "ramen"})
	require.NoError(t, err)
	assert.Empty(t, results.IDs)

	// The author's counters no longer include the deleted recipe, in the
	// store and in the user index.
	author, err := env.users.Get("alice")
	require.NoError(t, err)
	require.NotNil(t, author)
	assert.Equal(t, 0, author.RecipeCount)

	authorDoc := env.userIndex.Doc("alice")
	require.NotNil(t, authorDoc)
	assert.Equal(t, int64(0), authorDoc["recipeCount"])

	req = httptest.NewRequest("DELETE", "/foodfellas/recipes/r1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, 404, resp.Code)
}

func TestPutRating(t *testing.T) {
	router, env := createRouter(t)

	require.NoError(t, env.recipes.Upsert(&foodfellas.Recipe{ID: "r1", AuthorID: "alice"}))

	var tts = []struct {
		url    string
		rating int
		code   int
	}{
		{"/foodfellas/recipes/r1/ratings/bob", 4, 200},
		{"/foodfellas/recipes/r1/ratings/carol", 0, 400},
		{"/foodfellas/recipes/r1/ratings/carol", 6, 400},
		{"/foodfellas/recipes/nope/ratings/bob", 4, 404},
	}

	for _, tt := range tts {
		req := httptest.NewRequest("PUT", tt.url, createReader(t, map[string]int{"rating": tt.rating}))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		assert.Equal(t, tt.code, resp.Code, tt.url)
	}

	// The rating trigger recomputed the recipe aggregate.
	recipe, err := env.recipes.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, recipe.AverageRating)
	assert.Equal(t, 1, recipe.RatingsCount)

	// And cascaded into the author's aggregate.
	author, err := env.users.Get("alice")
	require.NoError(t, err)
	require.NotNil(t, author)
	assert.Equal(t, 1, author.TotalReviews)

	// The propagator mirrored the recomputed aggregates into both indexes.
	doc := env.index.Doc("r1")
	require.NotNil(t, doc)
	assert.Equal(t, 4.0, doc["averageRating"])
	assert.Equal(t, int64(1), doc["ratingsCount"])

	authorDoc := env.userIndex.Doc("alice")
	require.NotNil(t, authorDoc)
	assert.Equal(t, int64(1), authorDoc["totalReviews"])
}

func TestRecipeUpdateKeepsRatingAggregate(t *testing.T) {
	router, env := createRouter(t)

	require.NoError(t, env.recipes.Upsert(&foodfellas.Recipe{ID: "r1", Title: "Bibimbap", AuthorID: "alice"}))

	req := httptest.NewRequest("PUT", "/foodfellas/recipes/r1/ratings/bob", createReader(t, map[string]int{"rating": 4}))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, 200, resp.Code)

	update := foodfellas.Recipe{Title: "Bibimbap v2", AuthorID: "alice"}
	req = httptest.NewRequest("PUT", "/foodfellas/recipes/r1", createReader(t, update))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, 200, resp.Code, resp.Body.String())

	// The replace did not wipe the aggregate: the rating document it is
	// computed from still exists.
	stored, err := env.recipes.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, "Bibimbap v2", stored.Title)
	assert.Equal(t, 4.0, stored.AverageRating)
	assert.Equal(t, 1, stored.RatingsCount)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 1, 5: 0}, stored.RatingCounts)

	doc := env.index.Doc("r1")
	require.NotNil(t, doc)
	assert.Equal(t, 4.0, doc["averageRating"])
}

func TestDeleteRating(t *testing.T) {
	router, env := createRouter(t)

	require.NoError(t, env.recipes.Upsert(&foodfellas.Recipe{ID: "r1", AuthorID: "alice"}))
	require.NoError(t, env.ratings.Put(&foodfellas.Rating{RecipeID: "r1", UserID: "bob", Rating: 5}))

	req := httptest.NewRequest("DELETE", "/foodfellas/recipes/r1/ratings/bob", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, 200, resp.Code)

	recipe, err := env.recipes.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, recipe.AverageRating)
	assert.Equal(t, 0, recipe.RatingsCount)

	req = httptest.NewRequest("DELETE", "/foodfellas/recipes/r1/ratings/bob", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, 404, resp.Code)
}

func TestInsertComment(t *testing.T) {
	router, env := createRouter(t)

	require.NoError(t, env.recipes.Upsert(&foodfellas.Recipe{ID: "r1", AuthorID: "alice"}))
	require.NoError(t, env.users.Upsert(&foodfellas.User{
		ID:                   "alice",
		FCMToken:             "token-alice",
		NotificationsEnabled: true,
		Notifications:        foodfellas.NotificationSettings{NewComment: true},
	}))

	comment := foodfellas.Comment{AuthorID: "bob", AuthorName: "Bob", Comment: "Absolutely delicious!"}
	req := httptest.NewRequest("POST", "/foodfellas/recipes/r1/comments", createReader(t, comment))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, 200, resp.Code, resp.Body.String())

	var body struct {
		Data foodfellas.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.ID)

	// The create trigger scored the comment.
	stored, err := env.comments.Get("r1", body.Data.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.SentimentScore > 0)

	// The recipe author got a push message.
	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "token-alice", env.notifier.sent[0].Token)
	assert.Equal(t, "new_comment", env.notifier.sent[0].Data["type"])

	// An empty comment is rejected.
	req = httptest.NewRequest("POST", "/foodfellas/recipes/r1/comments", createReader(t, foodfellas.Comment{Comment: "   "}))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, 400, resp.Code)
}

func TestSearch(t *testing.T) {
	router, env := createRouter(t)

	require.NoError(t, env.recipes.Upsert(&foodfellas.Recipe{ID: "r1", Title: "Pad Thai"}))
	require.NoError(t, env.index.Upsert("r1", map[string]interface{}{"title": "Pad Thai"}))
	// An index entry whose document is gone is skipped, not an error.
	require.NoError(t, env.index.Upsert("ghost", map[string]interface{}{"title": "Pad See Ew"}))

	req := httptest.NewRequest("GET", "/foodfellas/recipes?q=pad", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, 200, resp.Code)

	var body struct {
		Data  []foodfellas.Recipe `json:"data"`
		Total uint64              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "r1", body.Data[0].ID)
	assert.Equal(t, uint64(2), body.Total)

	req = httptest.NewRequest("GET", "/foodfellas/recipes?q=pad&limit=nope", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, 400, resp.Code)
}
