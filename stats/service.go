package stats

import (
	"context"
	"strings"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
	"github.com/eliasantony/food-fellas/log"
)

// Service keeps the derived rating fields on recipes and users consistent
// with the underlying rating and recipe documents.
//
// Every recompute reads the full current source state rather than applying
// the event's delta. That costs an O(n) re-scan per update but makes the
// operation idempotent and self-healing: the event source gives no ordering
// or exactly-once guarantee, and a recompute from source converges to the
// correct value no matter how events were delivered.
type Service struct {
	recipes foodfellas.RecipeStore
	ratings foodfellas.RatingStore
	users   foodfellas.UserStore

	logger log.Logger
}

func NewService(
	recipes foodfellas.RecipeStore,
	ratings foodfellas.RatingStore,
	users foodfellas.UserStore,
	logger log.Logger,
) *Service {
	return &Service{
		recipes: recipes,
		ratings: ratings,
		users:   users,
		logger:  logger,
	}
}

// RecomputeRecipe re-derives averageRating, ratingsCount and ratingCounts
// from all rating documents of the recipe, then cascades to the author's
// aggregate.
func (s *Service) RecomputeRecipe(ctx context.Context, recipeID string) error {
	ratings, err := s.ratings.ByRecipe(recipeID)
	if err != nil {
		return errors.New("error reading ratings of "+recipeID, errors.WithCause(err))
	}

	count := len(ratings)
	total := 0
	counts := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range ratings {
		total += r.Rating
		counts[r.Rating]++
	}

	average := 0.0
	if count > 0 {
		average = float64(total) / float64(count)
	}

	err = s.recipes.Update(recipeID, func(r *foodfellas.Recipe) {
		r.AverageRating = average
		r.RatingsCount = count
		r.RatingCounts = counts
	})
	if errors.IsNotFound(err) {
		// The recipe was deleted between the event and the recompute.
		s.logger.Printf("recipe %s is gone, skipping aggregate", recipeID)
		return nil
	}
	if err != nil {
		return errors.New("error updating recipe "+recipeID, errors.WithCause(err))
	}

	recipe, err := s.recipes.Get(recipeID)
	if err != nil {
		return errors.New("error reading recipe "+recipeID, errors.WithCause(err))
	}
	if recipe == nil {
		return nil
	}
	if recipe.AuthorID == "" {
		s.logger.Printf("recipe %s has no author, skipping user aggregate", recipeID)
		return nil
	}

	return s.RecomputeUser(ctx, recipe.AuthorID)
}

// RecomputeUser re-derives recipeCount, totalReviews and the rating-weighted
// averageRating from all recipes authored by the user. Recipes without
// ratings contribute weight zero. The write is a merge: the user document is
// created when absent.
func (s *Service) RecomputeUser(ctx context.Context, userID string) error {
	recipes, err := s.recipes.ByAuthor(userID)
	if err != nil {
		return errors.New("error reading recipes of "+userID, errors.WithCause(err))
	}

	totalRating := 0.0
	totalReviews := 0
	for _, r := range recipes {
		totalRating += r.AverageRating * float64(r.RatingsCount)
		totalReviews += r.RatingsCount
	}

	average := 0.0
	if totalReviews > 0 {
		average = totalRating / float64(totalReviews)
	}
	recipeCount := len(recipes)

	err = s.users.Merge(userID, func(u *foodfellas.User) {
		u.RecipeCount = recipeCount
		u.AverageRating = average
		u.TotalReviews = totalReviews
	})
	if err != nil {
		return errors.New("error updating user "+userID, errors.WithCause(err))
	}
	return nil
}

// DeriveRecipeFields re-derives the flattened ingredientNames and tagNames
// on a recipe and defaults averageRating, then cascades to the author's
// aggregate.
func (s *Service) DeriveRecipeFields(ctx context.Context, recipeID string) error {
	var authorID string
	err := s.recipes.Update(recipeID, func(r *foodfellas.Recipe) {
		r.IngredientNames = ingredientNames(r.Ingredients)
		r.TagNames = tagNames(r.Tags)
		if r.RatingsCount == 0 {
			r.AverageRating = 0
		}
		authorID = r.AuthorID
	})
	if errors.IsNotFound(err) {
		s.logger.Printf("recipe %s is gone, skipping derivation", recipeID)
		return nil
	}
	if err != nil {
		return errors.New("error deriving fields of "+recipeID, errors.WithCause(err))
	}

	if authorID == "" {
		s.logger.Printf("recipe %s has no author, skipping user aggregate", recipeID)
		return nil
	}
	return s.RecomputeUser(ctx, authorID)
}

func ingredientNames(entries []foodfellas.IngredientEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Ingredient.IngredientName)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func tagNames(tags []foodfellas.TagRef) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		name := strings.TrimSpace(tag.Name)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
