package entity

import (
	"time"

	"vidtube/pkg/owner"
)

type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber_id"`
	ChannelID    string    `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Member is one side of a subscription: a subscriber of a channel, or a
// channel a user subscribes to.
type Member struct {
	UserID       string         `json:"-"`
	User         *owner.Profile `json:"user"`
	SubscribedAt time.Time      `json:"subscribed_at"`
}
