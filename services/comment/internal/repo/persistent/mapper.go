package persistent

import (
	"vidtube/pkg/models"
	"vidtube/services/comment/internal/entity"
)

func ToCommentEntity(m *models.Comment) *entity.Comment {
	if m == nil {
		return nil
	}
	return &entity.Comment{
		ID:        m.ID,
		Content:   m.Content,
		VideoID:   m.VideoID,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *models.Comment {
	if e == nil {
		return nil
	}
	return &models.Comment{
		ID:        e.ID,
		Content:   e.Content,
		VideoID:   e.VideoID,
		OwnerID:   e.OwnerID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
