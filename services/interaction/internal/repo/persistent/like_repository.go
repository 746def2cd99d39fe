package persistent

import (
	"context"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/database"
	"vidtube/pkg/models"
	"vidtube/services/interaction/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// Delete removes the like of userID on target and returns it, or nil when
	// there was none.
	Delete(ctx context.Context, userID string, target entity.LikeTarget) (*entity.Like, error)
	// Create inserts a like. A duplicate is reported as a Conflict.
	Create(ctx context.Context, userID string, target entity.LikeTarget) (*entity.Like, error)
	Get(ctx context.Context, userID string, target entity.LikeTarget) (*entity.Like, error)
	Exists(ctx context.Context, userID string, target entity.LikeTarget) (bool, error)
	Count(ctx context.Context, target entity.LikeTarget) (int64, error)
	ListLikedVideos(ctx context.Context, userID string) ([]*entity.LikedVideo, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func targetScope(target entity.LikeTarget) (func(*gorm.DB) *gorm.DB, error) {
	column, ok := models.LikeColumn(string(target.Kind))
	if !ok {
		return nil, apperror.InvalidArgument("unsupported like target %q", target.Kind)
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: target.ID})
	}, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID string, target entity.LikeTarget) (*entity.Like, error) {
	scope, err := targetScope(target)
	if err != nil {
		return nil, err
	}

	var removed []models.Like
	err = r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Scopes(scope).
		Where("liked_by = ?", userID).
		Delete(&removed).Error
	if err != nil {
		return nil, database.MapError(err, "")
	}
	if len(removed) == 0 {
		return nil, nil
	}
	return ToLikeEntity(&removed[0]), nil
}

func (r *likeRepository) Create(ctx context.Context, userID string, target entity.LikeTarget) (*entity.Like, error) {
	like := ToLikeModel(&entity.Like{LikedBy: userID, Target: target})
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return nil, database.MapError(err, "")
	}
	return ToLikeEntity(like), nil
}

func (r *likeRepository) Get(ctx context.Context, userID string, target entity.LikeTarget) (*entity.Like, error) {
	scope, err := targetScope(target)
	if err != nil {
		return nil, err
	}

	var like models.Like
	err = r.db.WithContext(ctx).Scopes(scope).Where("liked_by = ?", userID).First(&like).Error
	if err != nil {
		return nil, database.MapError(err, "like not found")
	}
	return ToLikeEntity(&like), nil
}

func (r *likeRepository) Exists(ctx context.Context, userID string, target entity.LikeTarget) (bool, error) {
	scope, err := targetScope(target)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&models.Like{}).Scopes(scope).Where("liked_by = ?", userID).Count(&count).Error
	if err != nil {
		return false, database.MapError(err, "")
	}
	return count > 0, nil
}

func (r *likeRepository) Count(ctx context.Context, target entity.LikeTarget) (int64, error) {
	scope, err := targetScope(target)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Scopes(scope).Count(&count).Error; err != nil {
		return 0, database.MapError(err, "")
	}
	return count, nil
}

type likedVideoRow struct {
	models.Video `gorm:"embedded"`
	LikedAt      time.Time
}

func (r *likeRepository) ListLikedVideos(ctx context.Context, userID string) ([]*entity.LikedVideo, error) {
	var rows []likedVideoRow
	err := r.db.WithContext(ctx).
		Table("likes").
		Select("videos.*, likes.created_at AS liked_at").
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("likes.liked_by = ?", userID).
		Where("(videos.is_published = ? OR videos.owner_id = ?)", true, userID).
		Order("likes.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, database.MapError(err, "")
	}

	videos := make([]*entity.LikedVideo, 0, len(rows))
	for i := range rows {
		v := rows[i].Video
		videos = append(videos, &entity.LikedVideo{
			ID:           v.ID,
			Title:        v.Title,
			Description:  v.Description,
			VideoURL:     v.VideoURL,
			ThumbnailURL: v.ThumbnailURL,
			Duration:     v.Duration,
			Views:        v.Views,
			OwnerID:      v.OwnerID,
			CreatedAt:    v.CreatedAt,
			LikedAt:      rows[i].LikedAt,
		})
	}
	return videos, nil
}
