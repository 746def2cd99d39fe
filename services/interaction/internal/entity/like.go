package entity

import (
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/owner"
)

type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

func ParseTargetKind(s string) (TargetKind, error) {
	switch k := TargetKind(s); k {
	case TargetVideo, TargetComment, TargetTweet:
		return k, nil
	}
	return "", apperror.InvalidArgument("unsupported like target %q", s)
}

// LikeTarget identifies the liked record: exactly one kind and one id.
type LikeTarget struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

type Like struct {
	ID        string     `json:"id"`
	LikedBy   string     `json:"liked_by"`
	Target    LikeTarget `json:"target"`
	CreatedAt time.Time  `json:"created_at"`
}

type LikedVideo struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	VideoURL     string         `json:"video_url"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Duration     float64        `json:"duration"`
	Views        int64          `json:"views"`
	OwnerID      string         `json:"-"`
	Owner        *owner.Profile `json:"owner"`
	CreatedAt    time.Time      `json:"created_at"`
	LikedAt      time.Time      `json:"liked_at"`
}
