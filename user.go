package foodfellas

// NotificationSettings mirrors the per-type opt-in flags on the user document.
type NotificationSettings struct {
	NewFollower            bool `json:"newFollower"`
	NewRecipeFromFollowing bool `json:"newRecipeFromFollowing"`
	NewComment             bool `json:"newComment"`
	WeeklyRecommendations  bool `json:"weeklyRecommendations"`
}

type User struct {
	ID                 string   `json:"id"`
	DisplayName        string   `json:"display_name"`
	ShortDescription   string   `json:"shortDescription"`
	Email              string   `json:"email"`
	PhotoURL           string   `json:"photo_url"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	FavoriteCuisines   []string `json:"favoriteCuisines"`
	CookingSkillLevel  string   `json:"cookingSkillLevel"`
	Role               string   `json:"role"`

	// Derived fields, maintained by the stats service from the user's
	// recipes.
	RecipeCount   int     `json:"recipeCount"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`

	Subscribed   bool   `json:"subscribed"`
	ReceiptToken string `json:"receiptToken,omitempty"`

	FCMToken             string               `json:"fcmToken,omitempty"`
	NotificationsEnabled bool                 `json:"notificationsEnabled"`
	Notifications        NotificationSettings `json:"notifications"`

	// Unix milliseconds.
	CreatedTime    int64 `json:"created_time"`
	LastActiveTime int64 `json:"last_active_time"`
}

// Recommendation is a child document of a user, keyed by recipe ID.
type Recommendation struct {
	RecipeID  string `json:"recipeId"`
	Score     int    `json:"score"`
	CreatedAt int64  `json:"createdAt"`
}

type UserStore interface {
	// Get returns nil when no user exists for id.
	Get(id string) (*User, error)
	Upsert(*User) error
	// Merge applies fn to the stored user, creating the document first when
	// it does not exist yet.
	Merge(id string, fn func(*User)) error
	Delete(id string) error
	List(after Cursor, limit int) ([]*User, Cursor, error)

	// Follow records followerID as a follower of userID, and userID in
	// followerID's following list, atomically.
	Follow(userID, followerID string) error
	Followers(userID string) ([]string, error)
	Following(userID string) ([]string, error)

	// Interaction history: recipes the user recently viewed.
	AddInteraction(userID, recipeID string) error
	Interactions(userID string) ([]string, error)

	// Collections: recipes the user saved.
	SaveToCollection(userID, recipeID string) error
	CollectionRecipes(userID string) ([]string, error)

	// ReplaceRecommendations clears the user's recommendations
	// sub-collection and writes recs in one atomic batch, so stale and fresh
	// entries never coexist.
	ReplaceRecommendations(userID string, recs []*Recommendation) error
	Recommendations(userID string) ([]*Recommendation, error)
}
