package persistent

import (
	"context"

	"vidtube/pkg/apperror"
	"vidtube/pkg/database"
	"vidtube/pkg/models"
	"vidtube/services/playlist/internal/entity"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository interface {
	Create(ctx context.Context, ownerID, name, description string, videoIDs []string) (*entity.Playlist, error)
	GetByID(ctx context.Context, id string) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Playlist, error)
	Update(ctx context.Context, id, ownerID, name, description string) (*entity.Playlist, error)
	Delete(ctx context.Context, id, ownerID string) error
	// AddVideo appends videoID unless it is already present. The unchanged
	// playlist is returned in that case.
	AddVideo(ctx context.Context, id, ownerID, videoID string) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, id, ownerID, videoID string) (*entity.Playlist, error)
	CountOwnedVideos(ctx context.Context, ownerID string, videoIDs []string) (int64, error)
	VideoExists(ctx context.Context, videoID string) (bool, error)
	ListVideos(ctx context.Context, videoIDs []string) ([]*entity.PlaylistVideo, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, ownerID, name, description string, videoIDs []string) (*entity.Playlist, error) {
	m := &models.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Videos:      pq.StringArray(videoIDs),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, database.MapError(err, "")
	}
	return ToPlaylistEntity(m), nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id string) (*entity.Playlist, error) {
	var m models.Playlist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, database.MapError(err, "playlist not found")
	}
	return ToPlaylistEntity(&m), nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Playlist, error) {
	var rows []models.Playlist
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, database.MapError(err, "")
	}

	playlists := make([]*entity.Playlist, 0, len(rows))
	for i := range rows {
		playlists = append(playlists, ToPlaylistEntity(&rows[i]))
	}
	return playlists, nil
}

// updateOwned runs a single UPDATE scoped to the owner and returns the new row.
func (r *playlistRepository) updateOwned(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id, ownerID string, values map[string]interface{}) (*entity.Playlist, int64, error) {
	var updated []models.Playlist
	query := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, ownerID)
	if scope != nil {
		query = scope(query)
	}
	result := query.Updates(values)
	if result.Error != nil {
		return nil, 0, database.MapError(result.Error, "")
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, 0, nil
	}
	return ToPlaylistEntity(&updated[0]), result.RowsAffected, nil
}

func (r *playlistRepository) Update(ctx context.Context, id, ownerID, name, description string) (*entity.Playlist, error) {
	playlist, affected, err := r.updateOwned(ctx, nil, id, ownerID, map[string]interface{}{
		"name":        name,
		"description": description,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("playlist not found")
	}
	return playlist, nil
}

func (r *playlistRepository) Delete(ctx context.Context, id, ownerID string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Playlist{})
	if result.Error != nil {
		return database.MapError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("playlist not found")
	}
	return nil
}

func (r *playlistRepository) AddVideo(ctx context.Context, id, ownerID, videoID string) (*entity.Playlist, error) {
	notMember := func(db *gorm.DB) *gorm.DB {
		return db.Where("NOT (?::text = ANY(videos))", videoID)
	}
	playlist, affected, err := r.updateOwned(ctx, notMember, id, ownerID, map[string]interface{}{
		"videos": gorm.Expr("array_append(videos, ?::text)", videoID),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Already a member, or the playlist vanished in between.
		return r.GetByID(ctx, id)
	}
	return playlist, nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, id, ownerID, videoID string) (*entity.Playlist, error) {
	playlist, affected, err := r.updateOwned(ctx, nil, id, ownerID, map[string]interface{}{
		"videos": gorm.Expr("array_remove(videos, ?::text)", videoID),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("playlist not found")
	}
	return playlist, nil
}

func (r *playlistRepository) CountOwnedVideos(ctx context.Context, ownerID string, videoIDs []string) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("owner_id = ? AND id IN ?", ownerID, videoIDs).
		Count(&count).Error
	if err != nil {
		return 0, database.MapError(err, "")
	}
	return count, nil
}

func (r *playlistRepository) VideoExists(ctx context.Context, videoID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
		return false, database.MapError(err, "")
	}
	return count > 0, nil
}

func (r *playlistRepository) ListVideos(ctx context.Context, videoIDs []string) ([]*entity.PlaylistVideo, error) {
	if len(videoIDs) == 0 {
		return []*entity.PlaylistVideo{}, nil
	}
	var rows []models.Video
	if err := r.db.WithContext(ctx).Where("id IN ?", videoIDs).Find(&rows).Error; err != nil {
		return nil, database.MapError(err, "")
	}

	videos := make([]*entity.PlaylistVideo, 0, len(rows))
	for i := range rows {
		videos = append(videos, ToPlaylistVideoEntity(&rows[i]))
	}
	return videos, nil
}

func (r *playlistRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, database.MapError(err, "")
	}
	return count > 0, nil
}
