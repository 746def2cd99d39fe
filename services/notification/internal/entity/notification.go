package entity

import "time"

const (
	TypeLike         = "like"
	TypeSubscription = "subscription"
)

// Notification is one entry of a user's inbox.
type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Type      string            `json:"type"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
