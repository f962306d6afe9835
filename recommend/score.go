package recommend

import foodfellas "github.com/eliasantony/food-fellas"

// Activity is the slice of a user's sub-collections the scoring reads:
// recipes they recently viewed, recipes they saved, authors they follow.
type Activity struct {
	RecentlyViewed []string
	SavedRecipes   []string
	Following      []string
}

// Score rates how well a recipe fits a user. Weighted sum over a handful of
// boolean features; higher is better.
func Score(user *foodfellas.User, activity Activity, recipe *foodfellas.Recipe) int {
	score := 0
	tags := toSet(recipe.TagNames)

	for _, pref := range user.DietaryPreferences {
		if tags[pref] {
			score += 5
		}
	}

	for _, cuisine := range user.FavoriteCuisines {
		if tags[cuisine] {
			score += 5
		}
	}

	if contains(activity.RecentlyViewed, recipe.ID) {
		score += 2
	}

	if contains(activity.SavedRecipes, recipe.ID) {
		score += 3
	}

	if contains(activity.Following, recipe.AuthorID) {
		score += 3
	}

	if recipe.AverageRating >= 4 && recipe.RatingsCount > 10 {
		score += 5
	}

	return score
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
