package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LikeKindVideo   = "video"
	LikeKindComment = "comment"
	LikeKindTweet   = "tweet"
)

// Like points at exactly one of a video, a comment or a tweet. The store
// enforces that with a CHECK and one partial unique index per kind.
type Like struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	LikedBy   string    `gorm:"type:uuid;not null;index" json:"liked_by"`
	VideoID   *string   `gorm:"type:uuid" json:"video_id,omitempty"`
	CommentID *string   `gorm:"type:uuid" json:"comment_id,omitempty"`
	TweetID   *string   `gorm:"type:uuid" json:"tweet_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// LikeColumn maps a target kind to its column.
func LikeColumn(kind string) (string, bool) {
	switch kind {
	case LikeKindVideo:
		return "video_id", true
	case LikeKindComment:
		return "comment_id", true
	case LikeKindTweet:
		return "tweet_id", true
	}
	return "", false
}

// SetTarget clears all target columns and sets the one for kind.
func (l *Like) SetTarget(kind, id string) {
	l.VideoID, l.CommentID, l.TweetID = nil, nil, nil
	switch kind {
	case LikeKindVideo:
		l.VideoID = &id
	case LikeKindComment:
		l.CommentID = &id
	case LikeKindTweet:
		l.TweetID = &id
	}
}

// Target returns the kind and id of the liked record.
func (l *Like) Target() (kind, id string) {
	switch {
	case l.VideoID != nil:
		return LikeKindVideo, *l.VideoID
	case l.CommentID != nil:
		return LikeKindComment, *l.CommentID
	case l.TweetID != nil:
		return LikeKindTweet, *l.TweetID
	}
	return "", ""
}
