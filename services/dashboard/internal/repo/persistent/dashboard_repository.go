package persistent

import (
	"context"

	"vidtube/pkg/database"
	"vidtube/pkg/models"
	"vidtube/services/dashboard/internal/entity"

	"gorm.io/gorm"
)

// DashboardRepository aggregates over everything a channel owns. Each method
// is a single query so callers can run them concurrently.
type DashboardRepository interface {
	ChannelExists(ctx context.Context, channelID string) (bool, error)
	CountVideos(ctx context.Context, channelID string) (int64, error)
	SumViews(ctx context.Context, channelID string) (int64, error)
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
	CountVideoLikes(ctx context.Context, channelID string) (int64, error)
	ListChannelVideos(ctx context.Context, channelID string, includeUnpublished bool) ([]*entity.ChannelVideo, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) ChannelExists(ctx context.Context, channelID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", channelID).Count(&count).Error; err != nil {
		return false, database.MapError(err, "")
	}
	return count > 0, nil
}

func (r *dashboardRepository) CountVideos(ctx context.Context, channelID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Where("owner_id = ?", channelID).Count(&count).Error; err != nil {
		return 0, database.MapError(err, "")
	}
	return count, nil
}

func (r *dashboardRepository) SumViews(ctx context.Context, channelID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("owner_id = ?", channelID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, database.MapError(err, "")
	}
	return total, nil
}

func (r *dashboardRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error; err != nil {
		return 0, database.MapError(err, "")
	}
	return count, nil
}

func (r *dashboardRepository) CountVideoLikes(ctx context.Context, channelID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", channelID).
		Count(&count).Error
	if err != nil {
		return 0, database.MapError(err, "")
	}
	return count, nil
}

type channelVideoRow struct {
	models.Video `gorm:"embedded"`
	LikesCount   int64
}

func (r *dashboardRepository) ListChannelVideos(ctx context.Context, channelID string, includeUnpublished bool) ([]*entity.ChannelVideo, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select("videos.*, (SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id) AS likes_count").
		Where("videos.owner_id = ?", channelID)
	if !includeUnpublished {
		query = query.Where("videos.is_published = ?", true)
	}

	var rows []channelVideoRow
	if err := query.Order("videos.created_at DESC").Order("videos.id DESC").Scan(&rows).Error; err != nil {
		return nil, database.MapError(err, "")
	}

	videos := make([]*entity.ChannelVideo, 0, len(rows))
	for i := range rows {
		v := rows[i].Video
		videos = append(videos, &entity.ChannelVideo{
			ID:           v.ID,
			Title:        v.Title,
			Description:  v.Description,
			VideoURL:     v.VideoURL,
			ThumbnailURL: v.ThumbnailURL,
			Duration:     v.Duration,
			Views:        v.Views,
			IsPublished:  v.IsPublished,
			LikesCount:   rows[i].LikesCount,
			CreatedAt:    v.CreatedAt,
		})
	}
	return videos, nil
}
