package persistent

import (
	"context"

	"vidtube/pkg/apperror"
	"vidtube/pkg/database"
	"vidtube/pkg/models"
	"vidtube/services/comment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	VideoExists(ctx context.Context, videoID string) (bool, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	// ListByVideo returns comments newest first.
	ListByVideo(ctx context.Context, videoID string, offset, limit int) ([]*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// UpdateContent and Delete only touch a comment owned by ownerID; no match
	// is reported as NotFound.
	UpdateContent(ctx context.Context, id, ownerID, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) VideoExists(ctx context.Context, videoID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
		return false, database.MapError(err, "")
	}
	return count > 0, nil
}

func (r *commentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID).Count(&count).Error; err != nil {
		return 0, database.MapError(err, "")
	}
	return count, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID string, offset, limit int) ([]*entity.Comment, error) {
	var rows []models.Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, database.MapError(err, "")
	}

	comments := make([]*entity.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, ToCommentEntity(&rows[i]))
	}
	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	m := ToCommentModel(comment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return database.MapError(err, "")
	}
	*comment = *ToCommentEntity(m)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var m models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, database.MapError(err, "comment not found")
	}
	return ToCommentEntity(&m), nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, ownerID, content string) (*entity.Comment, error) {
	var updated []models.Comment
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("content", content)
	if result.Error != nil {
		return nil, database.MapError(result.Error, "")
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, apperror.NotFound("comment not found")
	}
	return ToCommentEntity(&updated[0]), nil
}

func (r *commentRepository) Delete(ctx context.Context, id, ownerID string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Comment{})
	if result.Error != nil {
		return database.MapError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("comment not found")
	}
	return nil
}
