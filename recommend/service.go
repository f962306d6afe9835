package recommend

import (
	"context"
	"sort"

	"gopkg.in/robfig/cron.v2"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/log"
)

const (
	spec = "0 0 8 * * 1" // Mondays at 8am
	// spec = "0 */2 * * * *" // Every 2 minutes. For dev

	pageSize = 100
	topN     = 10
)

// Notifier tells a user their recommendations were refreshed.
type Notifier interface {
	WeeklyRecommendations(ctx context.Context, userID string)
}

// Service recomputes the per-user recommendation lists. Each run scores every
// recipe for every user and keeps the best matches.
type Service struct {
	users   foodfellas.UserStore
	recipes foodfellas.RecipeStore

	notifier Notifier

	logger log.Logger
}

func NewService(users foodfellas.UserStore, recipes foodfellas.RecipeStore, notifier Notifier, logger log.Logger) *Service {
	return &Service{
		users:    users,
		recipes:  recipes,
		notifier: notifier,

		logger: logger,
	}
}

func (s *Service) StartCron(ctx context.Context) {
	c := cron.New()
	c.AddFunc(spec, func() {
		if err := s.Run(ctx); err != nil {
			s.logger.Errorf("could not refresh recommendations: %v", err)
		} else {
			s.logger.Print("successfully refreshed recommendations")
		}
	})
	c.Start()
}

// Run refreshes the recommendations of every user. A failure on one user is
// logged and does not stop the others.
func (s *Service) Run(ctx context.Context) error {
	recipes, err := s.allRecipes()
	if err != nil {
		return err
	}

	var after foodfellas.Cursor
	for {
		users, next, err := s.users.List(after, pageSize)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}

		for _, user := range users {
			if err := s.refreshUser(ctx, user, recipes); err != nil {
				s.logger.Errorf("could not refresh recommendations of %s: %v", user.ID, err)
			}
		}
		after = next
	}
}

func (s *Service) refreshUser(ctx context.Context, user *foodfellas.User, recipes []*foodfellas.Recipe) error {
	activity, err := s.activityOf(user.ID)
	if err != nil {
		return err
	}

	now := foodfellas.NowMillis()
	recs := make([]*foodfellas.Recommendation, 0, len(recipes))
	for _, recipe := range recipes {
		if recipe.AuthorID == user.ID {
			continue
		}

		recs = append(recs, &foodfellas.Recommendation{
			RecipeID:  recipe.ID,
			Score:     Score(user, activity, recipe),
			CreatedAt: now,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > topN {
		recs = recs[:topN]
	}

	if err := s.users.ReplaceRecommendations(user.ID, recs); err != nil {
		return err
	}

	s.notifier.WeeklyRecommendations(ctx, user.ID)
	return nil
}

func (s *Service) activityOf(userID string) (Activity, error) {
	viewed, err := s.users.Interactions(userID)
	if err != nil {
		return Activity{}, err
	}
	saved, err := s.users.CollectionRecipes(userID)
	if err != nil {
		return Activity{}, err
	}
	following, err := s.users.Following(userID)
	if err != nil {
		return Activity{}, err
	}

	return Activity{
		RecentlyViewed: viewed,
		SavedRecipes:   saved,
		Following:      following,
	}, nil
}

func (s *Service) allRecipes() ([]*foodfellas.Recipe, error) {
	var all []*foodfellas.Recipe
	var after foodfellas.Cursor
	for {
		page, next, err := s.recipes.List(after, pageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return all, nil
		}
		all = append(all, page...)
		after = next
	}
}
