package stats

import (
	"context"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
)

const pageSize = 100

// BackfillAggregates replays the derivation and recomputation logic over the
// entire store, for bootstrap or drift repair. A document that fails is
// logged and does not block the rest of the pass.
func (s *Service) BackfillAggregates(ctx context.Context) error {
	err := s.eachRecipe(ctx, func(recipe *foodfellas.Recipe) {
		if err := s.DeriveRecipeFields(ctx, recipe.ID); err != nil {
			s.logger.Errorf("error deriving fields of %s: %v", recipe.ID, err)
		}
		if err := s.RecomputeRecipe(ctx, recipe.ID); err != nil {
			s.logger.Errorf("error recomputing recipe %s: %v", recipe.ID, err)
		}
	})
	if err != nil {
		return err
	}

	// Second pass over users covers authors without a single recipe left.
	return s.eachUser(ctx, func(user *foodfellas.User) {
		if err := s.RecomputeUser(ctx, user.ID); err != nil {
			s.logger.Errorf("error recomputing user %s: %v", user.ID, err)
		}
	})
}

// BackfillUnits repairs ingredient entries missing a unit or a serving count:
// the unit defaults to grams and the servings to the recipe's initial
// servings.
func (s *Service) BackfillUnits(ctx context.Context) error {
	return s.eachRecipe(ctx, func(recipe *foodfellas.Recipe) {
		err := s.recipes.Update(recipe.ID, func(r *foodfellas.Recipe) {
			for i, entry := range r.Ingredients {
				if entry.Unit == "" {
					entry.Unit = "g"
				}
				if entry.Servings == 0 {
					entry.Servings = r.InitialServings
					if entry.Servings == 0 {
						entry.Servings = 1
					}
				}
				r.Ingredients[i] = entry
			}
		})
		if err != nil {
			s.logger.Errorf("error backfilling units of %s: %v", recipe.ID, err)
		}
	})
}

// BackfillNotifications opts every user into all notification types.
func (s *Service) BackfillNotifications(ctx context.Context) error {
	return s.eachUser(ctx, func(user *foodfellas.User) {
		err := s.users.Merge(user.ID, func(u *foodfellas.User) {
			u.NotificationsEnabled = true
			u.Notifications = foodfellas.NotificationSettings{
				NewFollower:            true,
				NewRecipeFromFollowing: true,
				NewComment:             true,
				WeeklyRecommendations:  true,
			}
		})
		if err != nil {
			s.logger.Errorf("error backfilling notifications of %s: %v", user.ID, err)
		}
	})
}

func (s *Service) eachRecipe(ctx context.Context, fn func(*foodfellas.Recipe)) error {
	var after foodfellas.Cursor
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, next, err := s.recipes.List(after, pageSize)
		if err != nil {
			return errors.New("error listing recipes", errors.WithCause(err))
		}
		if len(page) == 0 {
			return nil
		}

		for _, recipe := range page {
			fn(recipe)
		}
		after = next
	}
}

func (s *Service) eachUser(ctx context.Context, fn func(*foodfellas.User)) error {
	var after foodfellas.Cursor
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, next, err := s.users.List(after, pageSize)
		if err != nil {
			return errors.New("error listing users", errors.WithCause(err))
		}
		if len(page) == 0 {
			return nil
		}

		for _, user := range page {
			fn(user)
		}
		after = next
	}
}
