package subscription

import (
	"context"

	"github.com/eliasantony/food-fellas/errors"
)

var errInvalidRequest = errors.BadRequest("invalid request")

type Endpoint struct {
	service *Service
}

func NewEndpoint(s *Service) Endpoint {
	return Endpoint{
		service: s,
	}
}

func (ep Endpoint) AppleWebhook(ctx context.Context, r interface{}) (interface{}, error) {
	event, ok := r.(AppleEvent)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.ApplyAppleEvent(ctx, event); err != nil {
		return nil, err
	}
	return "OK", nil
}
