package persistent

import (
	"vidtube/pkg/models"
	"vidtube/services/tweet/internal/entity"
)

func ToTweetEntity(m *models.Tweet) *entity.Tweet {
	if m == nil {
		return nil
	}
	return &entity.Tweet{
		ID:        m.ID,
		Content:   m.Content,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
