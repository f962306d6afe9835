package subscription

import (
	"context"
	"encoding/json"
	"net/http"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/eliasantony/food-fellas/errors"
)

type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

func RegisterHTTPRoutes(srv Server, service *Service) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
	}

	ep := NewEndpoint(service)

	appleHandler := kithttp.NewServer(
		ep.AppleWebhook,
		decodeAppleEvent,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/webhooks/apple", "POST", appleHandler)
}

func decodeAppleEvent(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var body struct {
		NotificationType string `json:"notificationType"`
		Data             *struct {
			SignedTransactionInfo struct {
				AppAccountToken string `json:"appAccountToken"`
			} `json:"signedTransactionInfo"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, errors.BadRequest("invalid data")
	}
	if body.Data == nil {
		return nil, errors.BadRequest("invalid data")
	}

	event := AppleEvent{
		NotificationType: body.NotificationType,
		AppAccountToken:  body.Data.SignedTransactionInfo.AppAccountToken,
	}
	return event, nil
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(errors.Code(err))

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
