package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/errors"
)

const defaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// FCMClient sends push messages over the FCM HTTP API, one request per
// recipient token.
type FCMClient struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

func NewFCMClient(endpoint, serverKey string) (*FCMClient, error) {
	if serverKey == "" {
		return nil, errors.New("fcm server key is not configured")
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &FCMClient{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *FCMClient) Send(ctx context.Context, msg foodfellas.Message) error {
	payload := struct {
		To           string                  `json:"to"`
		Notification foodfellas.Notification `json:"notification"`
		Data         map[string]string       `json:"data,omitempty"`
	}{
		To:           msg.Token,
		Notification: msg.Notification,
		Data:         msg.Data,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.New("error sending push message", errors.WithCause(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New(fmt.Sprintf("push service returned %d: %s", resp.StatusCode, detail))
	}
	return nil
}
