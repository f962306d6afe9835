package subscription

import (
	"context"

	"gopkg.in/robfig/cron.v2"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
	"github.com/eliasantony/food-fellas/log"
)

const (
	spec = "0 0 0 * * *" // Daily at midnight
	// spec = "0 */2 * * * *" // Every 2 minutes. For dev

	pageSize = 100
)

// AppleEvent is an App Store server notification. The app account token is
// the user ID the mobile app attached to the purchase.
type AppleEvent struct {
	NotificationType string
	AppAccountToken  string
}

// Verifier reports whether a Google Play subscription is currently active,
// given its purchase token.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// Service maintains the subscribed flag on user documents, from Apple's push
// notifications and from a daily poll of the Google Play Developer API.
type Service struct {
	users    foodfellas.UserStore
	verifier Verifier

	logger log.Logger
}

func NewService(users foodfellas.UserStore, verifier Verifier, logger log.Logger) *Service {
	return &Service{
		users:    users,
		verifier: verifier,

		logger: logger,
	}
}

// ApplyAppleEvent updates the user's subscribed flag from an App Store
// notification. The flag is overwritten unconditionally: when two
// notifications race, the last write wins regardless of event order.
func (s *Service) ApplyAppleEvent(ctx context.Context, event AppleEvent) error {
	if event.AppAccountToken == "" {
		return errors.BadRequest("invalid user data")
	}

	subscribed := event.NotificationType == "SUBSCRIBED" || event.NotificationType == "DID_RENEW"

	user, err := s.users.Get(event.AppAccountToken)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.NotFound("no user for app account token")
	}

	return s.users.Merge(user.ID, func(u *foodfellas.User) {
		u.Subscribed = subscribed
	})
}

func (s *Service) StartCron(ctx context.Context) {
	c := cron.New()
	c.AddFunc(spec, func() {
		if err := s.CheckGoogleSubscriptions(ctx); err != nil {
			s.logger.Errorf("could not check google subscriptions: %v", err)
		} else {
			s.logger.Print("successfully checked google subscriptions")
		}
	})
	c.Start()
}

// CheckGoogleSubscriptions walks every user holding a Play purchase token and
// refreshes their subscribed flag. A verification failure on one user is
// logged and does not stop the others.
func (s *Service) CheckGoogleSubscriptions(ctx context.Context) error {
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
			if user.ReceiptToken == "" {
				continue
			}

			active, err := s.verifier.Verify(ctx, user.ReceiptToken)
			if err != nil {
				s.logger.Errorf("could not verify subscription of %s: %v", user.ID, err)
				continue
			}

			err = s.users.Merge(user.ID, func(u *foodfellas.User) {
				u.Subscribed = active
			})
			if err != nil {
				s.logger.Errorf("could not update subscription of %s: %v", user.ID, err)
			}
		}
		after = next
	}
}
