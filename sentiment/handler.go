package sentiment

import (
	"context"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
	"github.com/eliasantony/food-fellas/trigger"
)

// Service scores comments when they are created and merges the score back
// onto the comment document.
type Service struct {
	comments foodfellas.CommentStore
}

func NewService(comments foodfellas.CommentStore) *Service {
	return &Service{comments: comments}
}

func (s *Service) Register(d *trigger.Dispatcher) {
	d.Handle("sentiment.comment", "recipes/{recipeId}/comments/{commentId}", s.HandleCommentCreate)
}

// HandleCommentCreate scores a freshly created comment. Updates and
// deletions are ignored: the score is computed once, at creation.
func (s *Service) HandleCommentCreate(ctx context.Context, change foodfellas.DocumentChange) error {
	if change.Before.Exists || !change.After.Exists {
		return nil
	}

	text, _ := change.After.Data()["comment"].(string)
	if text == "" {
		return nil
	}
	score := Score(text)

	recipeID := change.Params["recipeId"]
	commentID := change.Params["commentId"]
	err := s.comments.Update(recipeID, commentID, func(c *foodfellas.Comment) {
		c.SentimentScore = score
	})
	if err != nil {
		return errors.New("error scoring comment "+commentID, errors.WithCause(err))
	}
	return nil
}
