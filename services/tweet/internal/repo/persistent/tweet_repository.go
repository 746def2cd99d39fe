package persistent

import (
	"context"

	"vidtube/pkg/apperror"
	"vidtube/pkg/database"
	"vidtube/pkg/models"
	"vidtube/services/tweet/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TweetRepository interface {
	Create(ctx context.Context, ownerID, content string) (*entity.Tweet, error)
	GetByID(ctx context.Context, id string) (*entity.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Tweet, error)
	UpdateContent(ctx context.Context, id, ownerID, content string) (*entity.Tweet, error)
	Delete(ctx context.Context, id, ownerID string) error
	UserExists(ctx context.Context, userID string) (bool, error)
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, ownerID, content string) (*entity.Tweet, error) {
	m := &models.Tweet{OwnerID: ownerID, Content: content}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, database.MapError(err, "")
	}
	return ToTweetEntity(m), nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id string) (*entity.Tweet, error) {
	var m models.Tweet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, database.MapError(err, "tweet not found")
	}
	return ToTweetEntity(&m), nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Tweet, error) {
	var rows []models.Tweet
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, database.MapError(err, "")
	}

	tweets := make([]*entity.Tweet, 0, len(rows))
	for i := range rows {
		tweets = append(tweets, ToTweetEntity(&rows[i]))
	}
	return tweets, nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, id, ownerID, content string) (*entity.Tweet, error) {
	var updated []models.Tweet
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("content", content)
	if result.Error != nil {
		return nil, database.MapError(result.Error, "")
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, apperror.NotFound("tweet not found")
	}
	return ToTweetEntity(&updated[0]), nil
}

func (r *tweetRepository) Delete(ctx context.Context, id, ownerID string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Tweet{})
	if result.Error != nil {
		return database.MapError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("tweet not found")
	}
	return nil
}

func (r *tweetRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, database.MapError(err, "")
	}
	return count > 0, nil
}
