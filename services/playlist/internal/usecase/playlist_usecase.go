package usecase

import (
	"context"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/owner"
	"vidtube/pkg/ownership"
	"vidtube/pkg/validate"
	"vidtube/services/playlist/internal/entity"
	"vidtube/services/playlist/internal/repo/persistent"
)

type PlaylistUseCase interface {
	CreatePlaylist(ctx context.Context, userID, name, description string, videoIDs []string) (*entity.Playlist, error)
	GetPlaylist(ctx context.Context, userID, playlistID string) (*entity.Playlist, error)
	ListUserPlaylists(ctx context.Context, userID string) ([]*entity.Playlist, error)
	UpdatePlaylist(ctx context.Context, userID, playlistID, name, description string) (*entity.Playlist, error)
	DeletePlaylist(ctx context.Context, userID, playlistID string) error
	AddVideo(ctx context.Context, userID, playlistID, videoID string) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, userID, playlistID, videoID string) (*entity.Playlist, error)
}

type playlistUseCase struct {
	playlistRepo persistent.PlaylistRepository
	owners       owner.Loader
	logger       *logger.Logger
}

func NewPlaylistUseCase(playlistRepo persistent.PlaylistRepository, owners owner.Loader, logger *logger.Logger) PlaylistUseCase {
	return &playlistUseCase{
		playlistRepo: playlistRepo,
		owners:       owners,
		logger:       logger,
	}
}

func details(name, description string) (string, string, error) {
	name, err := validate.Text("name", name)
	if err != nil {
		return "", "", err
	}
	description, err = validate.Text("description", description)
	if err != nil {
		return "", "", err
	}
	return name, description, nil
}

// CreatePlaylist stores a playlist of the caller's own videos. Repeated ids
// are kept once in first-seen order. If any id is not a video owned by the
// caller nothing is written.
func (uc *playlistUseCase) CreatePlaylist(ctx context.Context, userID, name, description string, videoIDs []string) (*entity.Playlist, error) {
	name, description, err := details(name, description)
	if err != nil {
		return nil, err
	}
	videoIDs, err = validate.IDs("video id", videoIDs)
	if err != nil {
		return nil, err
	}
	videoIDs = validate.Unique(videoIDs)

	if len(videoIDs) > 0 {
		owned, err := uc.playlistRepo.CountOwnedVideos(ctx, userID, videoIDs)
		if err != nil {
			return nil, err
		}
		if owned != int64(len(videoIDs)) {
			return nil, apperror.InvalidOperation("playlist may only contain your own videos")
		}
	}

	playlist, err := uc.playlistRepo.Create(ctx, userID, name, description, videoIDs)
	if err != nil {
		uc.logger.Error("Failed to create playlist for %s: %v", userID, err)
		return nil, err
	}
	if err := uc.attachOwners(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// GetPlaylist returns the playlist with its videos resolved in playlist
// order. Deleted videos are skipped and unpublished ones are only shown to
// the playlist owner.
func (uc *playlistUseCase) GetPlaylist(ctx context.Context, userID, playlistID string) (*entity.Playlist, error) {
	playlistID, err := validate.ID("playlist id", playlistID)
	if err != nil {
		return nil, err
	}
	playlist, err := uc.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	videos, err := uc.playlistRepo.ListVideos(ctx, playlist.Videos)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.PlaylistVideo, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	playlist.Items = make([]*entity.PlaylistVideo, 0, len(playlist.Videos))
	for _, id := range playlist.Videos {
		v, ok := byID[id]
		if !ok || (!v.IsPublished && userID != playlist.OwnerID) {
			continue
		}
		playlist.Items = append(playlist.Items, v)
	}

	if err := uc.attachOwners(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (uc *playlistUseCase) ListUserPlaylists(ctx context.Context, userID string) ([]*entity.Playlist, error) {
	userID, err := validate.ID("user id", userID)
	if err != nil {
		return nil, err
	}
	exists, err := uc.playlistRepo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("user not found")
	}

	playlists, err := uc.playlistRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, playlists...); err != nil {
		return nil, err
	}
	return playlists, nil
}

// loadOwned returns the canonical id of a playlist owned by userID.
func (uc *playlistUseCase) loadOwned(ctx context.Context, userID, playlistID string) (string, error) {
	playlistID, err := validate.ID("playlist id", playlistID)
	if err != nil {
		return "", err
	}
	playlist, err := uc.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return "", err
	}
	if err := ownership.Check(userID, playlist.OwnerID, "playlist"); err != nil {
		return "", err
	}
	return playlist.ID, nil
}

func (uc *playlistUseCase) UpdatePlaylist(ctx context.Context, userID, playlistID, name, description string) (*entity.Playlist, error) {
	name, description, err := details(name, description)
	if err != nil {
		return nil, err
	}
	playlistID, err = uc.loadOwned(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	playlist, err := uc.playlistRepo.Update(ctx, playlistID, userID, name, description)
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (uc *playlistUseCase) DeletePlaylist(ctx context.Context, userID, playlistID string) error {
	playlistID, err := uc.loadOwned(ctx, userID, playlistID)
	if err != nil {
		return err
	}
	return uc.playlistRepo.Delete(ctx, playlistID, userID)
}

func (uc *playlistUseCase) AddVideo(ctx context.Context, userID, playlistID, videoID string) (*entity.Playlist, error) {
	videoID, err := validate.ID("video id", videoID)
	if err != nil {
		return nil, err
	}
	playlistID, err = uc.loadOwned(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}
	exists, err := uc.playlistRepo.VideoExists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("video not found")
	}

	playlist, err := uc.playlistRepo.AddVideo(ctx, playlistID, userID, videoID)
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// RemoveVideo drops videoID from the playlist. Removing a video that is not
// in the playlist leaves it unchanged.
func (uc *playlistUseCase) RemoveVideo(ctx context.Context, userID, playlistID, videoID string) (*entity.Playlist, error) {
	videoID, err := validate.ID("video id", videoID)
	if err != nil {
		return nil, err
	}
	playlistID, err = uc.loadOwned(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	playlist, err := uc.playlistRepo.RemoveVideo(ctx, playlistID, userID, videoID)
	if err != nil {
		return nil, err
	}
	if err := uc.attachOwners(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (uc *playlistUseCase) attachOwners(ctx context.Context, playlists ...*entity.Playlist) error {
	err := owner.Attach(ctx, uc.owners, playlists,
		func(p *entity.Playlist) string { return p.OwnerID },
		func(p *entity.Playlist, o *owner.Profile) { p.Owner = o })
	if err != nil {
		return apperror.Internal("failed to load playlist owners", err)
	}
	return nil
}
