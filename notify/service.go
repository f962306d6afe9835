package notify

import (
	"context"
	"fmt"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/log"
)

const (
	appTitle    = "FoodFellas'"
	clickAction = "FLUTTER_NOTIFICATION_CLICK"
)

// Service builds and dispatches the app's push messages. Per-recipient
// failures are logged and never abort a batch.
type Service struct {
	notifier foodfellas.Notifier
	users    foodfellas.UserStore

	logger log.Logger
}

func NewService(notifier foodfellas.Notifier, users foodfellas.UserStore, logger log.Logger) *Service {
	return &Service{
		notifier: notifier,
		users:    users,
		logger:   logger,
	}
}

// NewComment notifies the recipe author that someone commented.
func (s *Service) NewComment(ctx context.Context, authorID, commenterName, recipeID, commentID string) {
	s.sendToUser(ctx, authorID, func(u *foodfellas.User) bool { return u.Notifications.NewComment },
		foodfellas.Notification{
			Title: appTitle,
			Body:  fmt.Sprintf("%s just left a comment on one of your recipes.", commenterName),
		},
		map[string]string{
			"type":         "new_comment",
			"recipeId":     recipeID,
			"commentId":    commentID,
			"click_action": clickAction,
		})
}

// NewFollower notifies a user about a new follower.
func (s *Service) NewFollower(ctx context.Context, userID, followerName, followerID string) {
	s.sendToUser(ctx, userID, func(u *foodfellas.User) bool { return u.Notifications.NewFollower },
		foodfellas.Notification{
			Title: appTitle,
			Body:  fmt.Sprintf("You got a new Fella! %s just started following you. 🎉", followerName),
		},
		map[string]string{
			"type":         "new_follower",
			"followerUid":  followerID,
			"click_action": clickAction,
		})
}

// NewRecipe notifies every follower of the author about a freshly posted
// recipe.
func (s *Service) NewRecipe(ctx context.Context, authorID, recipeID string) {
	followers, err := s.users.Followers(authorID)
	if err != nil {
		s.logger.Errorf("error loading followers of %s: %v", authorID, err)
		return
	}

	for _, followerID := range followers {
		s.sendToUser(ctx, followerID, func(u *foodfellas.User) bool { return u.Notifications.NewRecipeFromFollowing },
			foodfellas.Notification{
				Title: appTitle,
				Body:  "A new recipe has just been posted! Check it out! 🍽️",
			},
			map[string]string{
				"type":         "new_recipe",
				"recipeId":     recipeID,
				"click_action": clickAction,
			})
	}
}

// WeeklyRecommendations tells a user their recommendations were refreshed.
func (s *Service) WeeklyRecommendations(ctx context.Context, userID string) {
	s.sendToUser(ctx, userID, func(u *foodfellas.User) bool { return u.Notifications.WeeklyRecommendations },
		foodfellas.Notification{
			Title: appTitle,
			Body:  "Check out your new weekly recipe recommendations. 📆",
		},
		map[string]string{
			"type":         "weekly_recommendations",
			"click_action": clickAction,
		})
}

// PDFProcessingDone tells a user their uploaded PDF was converted into
// recipes. There is no per-type opt-in for this one, only the global switch.
func (s *Service) PDFProcessingDone(ctx context.Context, userID, fileName string) {
	s.sendToUser(ctx, userID, func(*foodfellas.User) bool { return true },
		foodfellas.Notification{
			Title: appTitle,
			Body:  fmt.Sprintf("Your PDF %s has been converted to recipes!", fileName),
		},
		map[string]string{
			"type":         "pdf_processing_done",
			"fileName":     fileName,
			"click_action": clickAction,
		})
}

func (s *Service) sendToUser(ctx context.Context, userID string, enabled func(*foodfellas.User) bool, n foodfellas.Notification, data map[string]string) {
	user, err := s.users.Get(userID)
	if err != nil {
		s.logger.Errorf("error loading user %s: %v", userID, err)
		return
	}
	if user == nil || user.FCMToken == "" {
		return
	}
	if !user.NotificationsEnabled || !enabled(user) {
		return
	}

	msg := foodfellas.Message{
		Token:        user.FCMToken,
		Notification: n,
		Data:         data,
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Errorf("error sending %s notification to %s: %v", data["type"], userID, err)
	}
}
