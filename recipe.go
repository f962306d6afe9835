package foodfellas

// Ingredient is the catalogue entry an IngredientEntry points at.
type Ingredient struct {
	IngredientName string `json:"ingredientName"`
	Category       string `json:"category"`
}

// IngredientEntry is one line of a recipe's ingredient list.
type IngredientEntry struct {
	Ingredient Ingredient `json:"ingredient"`
	Amount     float64    `json:"amount"`
	Unit       string     `json:"unit"`
	Servings   int        `json:"servings"`
}

// TagRef is a denormalized reference to a tag document.
type TagRef struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

type Recipe struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	AuthorID     string            `json:"authorId"`
	CookingSteps []string          `json:"cookingSteps"`
	Ingredients  []IngredientEntry `json:"ingredients"`
	Tags         []TagRef          `json:"tags"`

	// Derived fields, maintained by the stats service. IngredientNames and
	// TagNames are flattened copies kept for search; the rating fields are
	// recomputed from the ratings sub-collection on every rating write.
	IngredientNames []string    `json:"ingredientNames"`
	TagNames        []string    `json:"tagNames"`
	AverageRating   float64     `json:"averageRating"`
	RatingsCount    int         `json:"ratingsCount"`
	RatingCounts    map[int]int `json:"ratingCounts"`

	Calories        int  `json:"calories"`
	PrepTime        int  `json:"prepTime"`
	CookTime        int  `json:"cookTime"`
	TotalTime       int  `json:"totalTime"`
	ViewsCount      int  `json:"viewsCount"`
	InitialServings int  `json:"initialServings"`
	CreatedByAI     bool `json:"createdByAI"`

	// Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// Rating is a child document of a recipe, keyed by the rater's user ID:
// a user has at most one rating per recipe.
type Rating struct {
	RecipeID string `json:"recipeId"`
	UserID   string `json:"userId"`
	Rating   int    `json:"rating"`
}

// Cursor is an exclusive pagination cursor over a collection ordered by
// creation time, with the document ID as tiebreak for equal timestamps.
// The zero value starts from the beginning.
type Cursor struct {
	CreatedAt int64  `json:"createdAt"`
	ID        string `json:"id"`
}

// TagStore holds the tag catalogue recipes pick their tags from, keyed by
// name.
type TagStore interface {
	Upsert(TagRef) error
	List() ([]TagRef, error)
}

type RecipeStore interface {
	// Get returns nil when no recipe exists for id.
	Get(id string) (*Recipe, error)
	Upsert(*Recipe) error
	// Update applies fn to the stored recipe inside a single transaction.
	Update(id string, fn func(*Recipe)) error
	// Delete removes the recipe and its ratings and comments sub-collections
	// in one atomic batch.
	Delete(id string) error
	ByAuthor(authorID string) ([]*Recipe, error)
	// List returns at most limit recipes strictly after the cursor, ordered
	// by creation time then ID, and the cursor for the next page. An empty
	// page means the collection is exhausted.
	List(after Cursor, limit int) ([]*Recipe, Cursor, error)
}

type RatingStore interface {
	// Get returns nil when the user has not rated the recipe.
	Get(recipeID, userID string) (*Rating, error)
	Put(*Rating) error
	Delete(recipeID, userID string) error
	ByRecipe(recipeID string) ([]*Rating, error)
}
