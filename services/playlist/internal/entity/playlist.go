package entity

import (
	"time"

	"vidtube/pkg/owner"
)

// Playlist keeps its videos as an ordered set of ids.
type Playlist struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	OwnerID     string           `json:"-"`
	Owner       *owner.Profile   `json:"owner"`
	Videos      []string         `json:"videos"`
	Items       []*PlaylistVideo `json:"items,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type PlaylistVideo struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
	Views        int64   `json:"views"`
	IsPublished  bool    `json:"is_published"`
	OwnerID      string  `json:"owner_id"`
}
