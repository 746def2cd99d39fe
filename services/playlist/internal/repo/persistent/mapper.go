package persistent

import (
	"vidtube/pkg/models"
	"vidtube/services/playlist/internal/entity"
)

func ToPlaylistEntity(m *models.Playlist) *entity.Playlist {
	if m == nil {
		return nil
	}
	videos := make([]string, len(m.Videos))
	copy(videos, m.Videos)
	return &entity.Playlist{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		Videos:      videos,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToPlaylistVideoEntity(m *models.Video) *entity.PlaylistVideo {
	if m == nil {
		return nil
	}
	return &entity.PlaylistVideo{
		ID:           m.ID,
		Title:        m.Title,
		ThumbnailURL: m.ThumbnailURL,
		Duration:     m.Duration,
		Views:        m.Views,
		IsPublished:  m.IsPublished,
		OwnerID:      m.OwnerID,
	}
}
