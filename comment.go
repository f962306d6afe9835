package foodfellas

// Comment is a child document of a recipe. SentimentScore is derived by the
// sentiment service when the comment is created.
type Comment struct {
	ID             string `json:"id"`
	RecipeID       string `json:"recipeId"`
	AuthorID       string `json:"authorId"`
	AuthorName     string `json:"authorName"`
	Comment        string `json:"comment"`
	SentimentScore int    `json:"sentimentScore"`
	CreatedAt      int64  `json:"createdAt"`
}

type CommentStore interface {
	// Get returns nil when no comment exists for the ids.
	Get(recipeID, commentID string) (*Comment, error)
	Put(*Comment) error
	// Update applies fn to the stored comment inside a single transaction.
	Update(recipeID, commentID string, fn func(*Comment)) error
	ByRecipe(recipeID string) ([]*Comment, error)
}
