package index

// Projections are the sanitized views written to the search indexes. The
// index schema is strict: every field is always present with its declared
// type, substituting a typed default when the source field is absent, null
// or of the wrong type.

// RecipeProjection flattens a recipe document for indexing.
func RecipeProjection(id string, data map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":              id,
		"title":           str(data["title"]),
		"description":     str(data["description"]),
		"cookingSteps":    strSlice(data["cookingSteps"]),
		"ingredientNames": strSlice(data["ingredientNames"]),
		"tagNames":        strSlice(data["tagNames"]),
		"authorId":        str(data["authorId"]),
		"createdAt":       num(data["createdAt"]),
		"updatedAt":       num(data["updatedAt"]),
		"averageRating":   flt(data["averageRating"]),
		"cookTime":        num(data["cookTime"]),
		"prepTime":        num(data["prepTime"]),
		"totalTime":       num(data["totalTime"]),
		"createdByAI":     boolean(data["createdByAI"]),
		"viewsCount":      num(data["viewsCount"]),
		"ratingsCount":    num(data["ratingsCount"]),
		"calories":        num(data["calories"]),
	}
}

// UserProjection flattens a user document for indexing. The millisecond
// timestamps of the source are converted to seconds, rounding toward zero.
func UserProjection(id string, data map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":                 id,
		"display_name":       str(data["display_name"]),
		"shortDescription":   str(data["shortDescription"]),
		"email":              str(data["email"]),
		"photo_url":          str(data["photo_url"]),
		"dietaryPreferences": strSlice(data["dietaryPreferences"]),
		"favoriteCuisines":   strSlice(data["favoriteCuisines"]),
		"cookingSkillLevel":  str(data["cookingSkillLevel"]),
		"role":               str(data["role"]),
		"recipeCount":        num(data["recipeCount"]),
		"totalReviews":       num(data["totalReviews"]),
		"averageRating":      flt(data["averageRating"]),
		"created_time":       num(data["created_time"]) / 1000,
		"last_active_time":   num(data["last_active_time"]) / 1000,
	}
}

// ------------------------------------------------------------------------------------------------
// Coercion helpers
// ------------------------------------------------------------------------------------------------

func str(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// num coerces to int64, defaulting to 0. Source documents come through
// encoding/json, so numbers are float64.
func num(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	}
	return 0
}

func flt(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func boolean(v interface{}) bool {
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}

// strSlice coerces to a string slice, never nil. Non-string elements are
// dropped.
func strSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss
		}
		return []string{}
	}

	ss := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			ss = append(ss, s)
		}
	}
	return ss
}
