package subscription

import (
	"context"
	"io/ioutil"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/option"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
)

// PlayVerifier checks purchase tokens against the Google Play Developer API.
type PlayVerifier struct {
	service *androidpublisher.Service

	packageName    string
	subscriptionID string
}

func NewPlayVerifier(ctx context.Context, credentialsFile, packageName, subscriptionID string) (*PlayVerifier, error) {
	data, err := ioutil.ReadFile(credentialsFile)
	if err != nil {
		return nil, errors.New("could not read google credentials", errors.WithCause(err))
	}

	creds, err := google.CredentialsFromJSON(ctx, data, androidpublisher.AndroidpublisherScope)
	if err != nil {
		return nil, errors.New("could not load google credentials", errors.WithCause(err))
	}

	service, err := androidpublisher.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, errors.New("could not create android publisher client", errors.WithCause(err))
	}

	return &PlayVerifier{
		service:        service,
		packageName:    packageName,
		subscriptionID: subscriptionID,
	}, nil
}

// Verify implements Verifier. A subscription counts as active when it is
// auto-renewing or not yet expired, and its payment went through.
func (v *PlayVerifier) Verify(ctx context.Context, token string) (bool, error) {
	sub, err := v.service.Purchases.Subscriptions.Get(v.packageName, v.subscriptionID, token).Context(ctx).Do()
	if err != nil {
		return false, err
	}

	paid := sub.PaymentState != nil && *sub.PaymentState == 1
	active := sub.AutoRenewing || sub.ExpiryTimeMillis > foodfellas.NowMillis()
	return active && paid, nil
}
