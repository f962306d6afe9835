package stats

import (
	"context"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/trigger"
)

// Register wires the aggregate handlers onto the dispatcher.
func (s *Service) Register(d *trigger.Dispatcher) {
	d.Handle("stats.rating", "recipes/{recipeId}/ratings/{userId}", s.HandleRatingChange)
	d.Handle("stats.recipe", "recipes/{recipeId}", s.HandleRecipeWrite)
}

// HandleRatingChange recomputes the recipe aggregate on any rating create,
// update or delete.
func (s *Service) HandleRatingChange(ctx context.Context, change foodfellas.DocumentChange) error {
	return s.RecomputeRecipe(ctx, change.Params["recipeId"])
}

// HandleRecipeWrite re-derives the flattened fields on recipe creates and
// updates. On a deletion the recipe document is gone but the author's
// counters still include it, so the author aggregate is recomputed instead.
func (s *Service) HandleRecipeWrite(ctx context.Context, change foodfellas.DocumentChange) error {
	if !change.After.Exists {
		if authorID, ok := change.Before.Data()["authorId"].(string); ok && authorID != "" {
			return s.RecomputeUser(ctx, authorID)
		}
		return nil
	}
	return s.DeriveRecipeFields(ctx, change.Params["recipeId"])
}
