package usecase

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/owner"
	"vidtube/services/playlist/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlaylistRepo struct {
	mu        sync.Mutex
	users     map[string]bool
	videos    map[string]*entity.PlaylistVideo
	playlists []*entity.Playlist
	writes    int
	clock     time.Time
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		users:  map[string]bool{},
		videos: map[string]*entity.PlaylistVideo{},
		clock:  time.Now(),
	}
}

func (r *fakePlaylistRepo) addVideo(ownerID string, published bool) string {
	id := uuid.NewString()
	r.videos[id] = &entity.PlaylistVideo{ID: id, Title: "video " + id[:4], OwnerID: ownerID, IsPublished: published}
	return id
}

func (r *fakePlaylistRepo) find(id string) (int, *entity.Playlist) {
	for i, p := range r.playlists {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func snapshot(p *entity.Playlist) *entity.Playlist {
	cp := *p
	cp.Videos = append([]string{}, p.Videos...)
	return &cp
}

func (r *fakePlaylistRepo) Create(_ context.Context, ownerID, name, description string, videoIDs []string) (*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.clock = r.clock.Add(time.Second)
	p := &entity.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Videos:      append([]string{}, videoIDs...),
		CreatedAt:   r.clock,
		UpdatedAt:   r.clock,
	}
	r.playlists = append(r.playlists, p)
	return snapshot(p), nil
}

func (r *fakePlaylistRepo) GetByID(_ context.Context, id string) (*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, p := r.find(id)
	if p == nil {
		return nil, apperror.NotFound("playlist not found")
	}
	return snapshot(p), nil
}

func (r *fakePlaylistRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Playlist{}
	for i := len(r.playlists) - 1; i >= 0; i-- {
		if r.playlists[i].OwnerID == ownerID {
			out = append(out, snapshot(r.playlists[i]))
		}
	}
	return out, nil
}

func (r *fakePlaylistRepo) owned(id, ownerID string) (*entity.Playlist, error) {
	_, p := r.find(id)
	if p == nil || p.OwnerID != ownerID {
		return nil, apperror.NotFound("playlist not found")
	}
	return p, nil
}

func (r *fakePlaylistRepo) Update(_ context.Context, id, ownerID, name, description string) (*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	r.writes++
	p.Name, p.Description = name, description
	return snapshot(p), nil
}

func (r *fakePlaylistRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.owned(id, ownerID); err != nil {
		return err
	}
	r.writes++
	i, _ := r.find(id)
	r.playlists = append(r.playlists[:i], r.playlists[i+1:]...)
	return nil
}

func (r *fakePlaylistRepo) AddVideo(_ context.Context, id, ownerID, videoID string) (*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	for _, v := range p.Videos {
		if v == videoID {
			return snapshot(p), nil
		}
	}
	r.writes++
	p.Videos = append(p.Videos, videoID)
	return snapshot(p), nil
}

func (r *fakePlaylistRepo) RemoveVideo(_ context.Context, id, ownerID, videoID string) (*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	kept := p.Videos[:0]
	for _, v := range p.Videos {
		if v != videoID {
			kept = append(kept, v)
		}
	}
	p.Videos = kept
	return snapshot(p), nil
}

func (r *fakePlaylistRepo) CountOwnedVideos(_ context.Context, ownerID string, videoIDs []string) (int64, error) {
	var n int64
	for _, id := range videoIDs {
		if v, ok := r.videos[id]; ok && v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakePlaylistRepo) VideoExists(_ context.Context, videoID string) (bool, error) {
	_, ok := r.videos[videoID]
	return ok, nil
}

func (r *fakePlaylistRepo) ListVideos(_ context.Context, videoIDs []string) ([]*entity.PlaylistVideo, error) {
	out := []*entity.PlaylistVideo{}
	for _, id := range videoIDs {
		if v, ok := r.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakePlaylistRepo) UserExists(_ context.Context, userID string) (bool, error) {
	return r.users[userID], nil
}

type profiles map[string]*owner.Profile

func (p profiles) Load(_ context.Context, ids []string) (map[string]*owner.Profile, error) {
	out := map[string]*owner.Profile{}
	for _, id := range ids {
		if v, ok := p[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func newPlaylistUseCase(users ...string) (*fakePlaylistRepo, PlaylistUseCase) {
	repo := newFakePlaylistRepo()
	known := profiles{}
	for _, u := range users {
		repo.users[u] = true
		known[u] = &owner.Profile{ID: u, Username: "user-" + u[:4]}
	}
	return repo, NewPlaylistUseCase(repo, known, logger.NewWithWriter(io.Discard))
}

func TestCreatePlaylist_DedupesKeepingOrder(t *testing.T) {
	me := uuid.NewString()
	repo, uc := newPlaylistUseCase(me)
	a := repo.addVideo(me, true)
	b := repo.addVideo(me, true)

	playlist, err := uc.CreatePlaylist(context.Background(), me, " Mix ", "my picks", []string{b, a, b})
	require.NoError(t, err)
	assert.Equal(t, "Mix", playlist.Name)
	assert.Equal(t, []string{b, a}, playlist.Videos)
	require.NotNil(t, playlist.Owner)
	assert.Equal(t, me, playlist.Owner.ID)
}

func TestCreatePlaylist_EmptyIsAllowed(t *testing.T) {
	me := uuid.NewString()
	_, uc := newPlaylistUseCase(me)

	playlist, err := uc.CreatePlaylist(context.Background(), me, "later", "watch later", nil)
	require.NoError(t, err)
	assert.Empty(t, playlist.Videos)
}

func TestCreatePlaylist_ForeignVideoWritesNothing(t *testing.T) {
	me, other := uuid.NewString(), uuid.NewString()
	repo, uc := newPlaylistUseCase(me, other)
	mine := repo.addVideo(me, true)
	theirs := repo.addVideo(other, true)

	_, err := uc.CreatePlaylist(context.Background(), me, "mix", "desc", []string{mine, theirs})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidOperation))

	_, err = uc.CreatePlaylist(context.Background(), me, "mix", "desc", []string{mine, uuid.NewString()})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidOperation))

	assert.Zero(t, repo.writes)
	assert.Empty(t, repo.playlists)
}

func TestCreatePlaylist_InvalidInput(t *testing.T) {
	me := uuid.NewString()
	repo, uc := newPlaylistUseCase(me)
	ctx := context.Background()

	_, err := uc.CreatePlaylist(ctx, me, "  ", "desc", nil)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))

	_, err = uc.CreatePlaylist(ctx, me, "name", "", nil)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))

	_, err = uc.CreatePlaylist(ctx, me, "name", "desc", []string{"not-an-id"})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))

	assert.Zero(t, repo.writes)
}

func TestAddVideo_SetSemantics(t *testing.T) {
	me, other := uuid.NewString(), uuid.NewString()
	repo, uc := newPlaylistUseCase(me, other)
	ctx := context.Background()
	mine := repo.addVideo(me, true)
	theirs := repo.addVideo(other, true)

	playlist, err := uc.CreatePlaylist(ctx, me, "mix", "desc", []string{mine})
	require.NoError(t, err)

	updated, err := uc.AddVideo(ctx, me, playlist.ID, theirs)
	require.NoError(t, err)
	assert.Equal(t, []string{mine, theirs}, updated.Videos)

	again, err := uc.AddVideo(ctx, me, playlist.ID, theirs)
	require.NoError(t, err)
	assert.Equal(t, []string{mine, theirs}, again.Videos)
}

func TestAddVideo_AnySpellingStoredOnce(t *testing.T) {
	me := uuid.NewString()
	repo, uc := newPlaylistUseCase(me)
	ctx := context.Background()
	first := repo.addVideo(me, true)
	second := repo.addVideo(me, true)

	playlist, err := uc.CreatePlaylist(ctx, me, "mix", "desc", []string{first, strings.ToUpper(first), "{" + first + "}"})
	require.NoError(t, err)
	assert.Equal(t, []string{first}, playlist.Videos)

	_, err = uc.AddVideo(ctx, me, strings.ToUpper(playlist.ID), "{"+second+"}")
	require.NoError(t, err)
	again, err := uc.AddVideo(ctx, me, playlist.ID, strings.ToUpper(second))
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, again.Videos)

	resolved, err := uc.GetPlaylist(ctx, me, "urn:uuid:"+playlist.ID)
	require.NoError(t, err)
	require.Len(t, resolved.Items, 2)
	assert.Equal(t, second, resolved.Items[1].ID)

	removed, err := uc.RemoveVideo(ctx, me, playlist.ID, strings.ToUpper(first))
	require.NoError(t, err)
	assert.Equal(t, []string{second}, removed.Videos)
}

func TestAddVideo_Errors(t *testing.T) {
	me, other := uuid.NewString(), uuid.NewString()
	repo, uc := newPlaylistUseCase(me, other)
	ctx := context.Background()
	video := repo.addVideo(me, true)

	playlist, err := uc.CreatePlaylist(ctx, me, "mix", "desc", nil)
	require.NoError(t, err)

	_, err = uc.AddVideo(ctx, me, playlist.ID, uuid.NewString())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = uc.AddVideo(ctx, other, playlist.ID, video)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	_, err = uc.AddVideo(ctx, me, uuid.NewString(), video)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = uc.AddVideo(ctx, me, playlist.ID, "bad")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}

func TestRemoveVideo_AbsentIsNoop(t *testing.T) {
	me := uuid.NewString()
	repo, uc := newPlaylistUseCase(me)
	ctx := context.Background()
	a := repo.addVideo(me, true)
	b := repo.addVideo(me, true)

	playlist, err := uc.CreatePlaylist(ctx, me, "mix", "desc", []string{a, b})
	require.NoError(t, err)

	updated, err := uc.RemoveVideo(ctx, me, playlist.ID, a)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, updated.Videos)

	unchanged, err := uc.RemoveVideo(ctx, me, playlist.ID, a)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, unchanged.Videos)

	_, err = uc.RemoveVideo(ctx, uuid.NewString(), playlist.ID, b)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestGetPlaylist_ResolvesItemsInOrder(t *testing.T) {
	me := uuid.NewString()
	repo, uc := newPlaylistUseCase(me)
	ctx := context.Background()
	a := repo.addVideo(me, true)
	draft := repo.addVideo(me, false)
	b := repo.addVideo(me, true)

	playlist, err := uc.CreatePlaylist(ctx, me, "mix", "desc", []string{b, draft, a})
	require.NoError(t, err)
	delete(repo.videos, a)

	own, err := uc.GetPlaylist(ctx, me, playlist.ID)
	require.NoError(t, err)
	require.Len(t, own.Items, 2)
	assert.Equal(t, b, own.Items[0].ID)
	assert.Equal(t, draft, own.Items[1].ID)

	public, err := uc.GetPlaylist(ctx, "", playlist.ID)
	require.NoError(t, err)
	require.Len(t, public.Items, 1)
	assert.Equal(t, b, public.Items[0].ID)
	require.NotNil(t, public.Owner)
	assert.Equal(t, me, public.Owner.ID)

	_, err = uc.GetPlaylist(ctx, "", uuid.NewString())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUpdateAndDeletePlaylist_Guarded(t *testing.T) {
	me, other := uuid.NewString(), uuid.NewString()
	repo, uc := newPlaylistUseCase(me, other)
	ctx := context.Background()

	playlist, err := uc.CreatePlaylist(ctx, me, "mix", "desc", nil)
	require.NoError(t, err)

	_, err = uc.UpdatePlaylist(ctx, other, playlist.ID, "stolen", "desc")
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	updated, err := uc.UpdatePlaylist(ctx, me, playlist.ID, "renamed", "new desc")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "new desc", updated.Description)

	err = uc.DeletePlaylist(ctx, other, playlist.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	require.NoError(t, uc.DeletePlaylist(ctx, me, playlist.ID))
	assert.Empty(t, repo.playlists)

	err = uc.DeletePlaylist(ctx, me, playlist.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListUserPlaylists(t *testing.T) {
	me, other := uuid.NewString(), uuid.NewString()
	_, uc := newPlaylistUseCase(me, other)
	ctx := context.Background()

	for _, name := range []string{"first", "second"} {
		_, err := uc.CreatePlaylist(ctx, me, name, "desc", nil)
		require.NoError(t, err)
	}

	playlists, err := uc.ListUserPlaylists(ctx, me)
	require.NoError(t, err)
	require.Len(t, playlists, 2)
	assert.Equal(t, "second", playlists[0].Name)
	assert.Equal(t, "first", playlists[1].Name)

	empty, err := uc.ListUserPlaylists(ctx, other)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = uc.ListUserPlaylists(ctx, uuid.NewString())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
