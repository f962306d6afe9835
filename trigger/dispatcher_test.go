package trigger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
	"github.com/eliasantony/food-fellas/log"
)

func TestDispatcher_Routing(t *testing.T) {
	d := NewDispatcher(log.Discard())

	var ratingParams, recipeParams map[string]string
	d.Handle("rating", "recipes/{recipeId}/ratings/{userId}", func(ctx context.Context, c foodfellas.DocumentChange) error {
		ratingParams = c.Params
		return nil
	})
	d.Handle("recipe", "recipes/{recipeId}", func(ctx context.Context, c foodfellas.DocumentChange) error {
		recipeParams = c.Params
		return nil
	})

	d.Dispatch(context.Background(), "recipes/r1/ratings/u1", foodfellas.Deleted, foodfellas.SnapshotOf(map[string]int{"rating": 5}))

	assert.Equal(t, map[string]string{"recipeId": "r1", "userId": "u1"}, ratingParams)
	assert.Nil(t, recipeParams, "recipe handler should not fire for a rating path")

	d.Dispatch(context.Background(), "recipes/r2", foodfellas.Deleted, foodfellas.SnapshotOf(map[string]string{"title": "x"}))
	assert.Equal(t, map[string]string{"recipeId": "r2"}, recipeParams)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewDispatcher(log.Discard())

	called := false
	d.Handle("failing", "users/{userId}", func(ctx context.Context, c foodfellas.DocumentChange) error {
		return errors.New("boom")
	})
	d.Handle("ok", "users/{userId}", func(ctx context.Context, c foodfellas.DocumentChange) error {
		called = true
		return nil
	})

	d.Dispatch(context.Background(), "users/u1", foodfellas.Deleted, foodfellas.SnapshotOf(map[string]string{}))
	assert.True(t, called)
}

func TestDispatcher_DeletionSnapshot(t *testing.T) {
	d := NewDispatcher(log.Discard())

	var got foodfellas.DocumentChange
	d.Handle("recipe", "recipes/{recipeId}", func(ctx context.Context, c foodfellas.DocumentChange) error {
		got = c
		return nil
	})

	before := foodfellas.SnapshotOf(map[string]string{"title": "gone"})
	d.Dispatch(context.Background(), "recipes/r1", before, foodfellas.Deleted)

	assert.True(t, got.Before.Exists)
	assert.False(t, got.After.Exists)
	assert.Nil(t, got.After.Data())
}
