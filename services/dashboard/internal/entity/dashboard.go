package entity

import "time"

type ChannelStats struct {
	ChannelID        string `json:"channel_id"`
	TotalVideos      int64  `json:"total_videos"`
	TotalViews       int64  `json:"total_views"`
	TotalSubscribers int64  `json:"total_subscribers"`
	TotalLikes       int64  `json:"total_likes"`
}

type ChannelVideo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"is_published"`
	LikesCount   int64     `json:"likes_count"`
	CreatedAt    time.Time `json:"created_at"`
}
