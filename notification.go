package foodfellas

import (
	"context"
	"time"
)

// Notification is the visible part of a push message.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Message is one push message for one recipient token.
type Message struct {
	Token        string            `json:"token"`
	Notification Notification      `json:"notification"`
	Data         map[string]string `json:"data"`
}

// Notifier delivers push messages, one call per recipient.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// NowMillis is the document timestamp resolution used across collections.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
