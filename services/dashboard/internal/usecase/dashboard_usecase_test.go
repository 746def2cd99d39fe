package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/services/dashboard/internal/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	mu          sync.Mutex
	channels    map[string]bool
	videos      []fakeVideo
	subscribers map[string]int64
	likes       map[string]int64
	failWith    error
	aggregates  atomic.Int32
}

type fakeVideo struct {
	owner     string
	views     int64
	published bool
	video     *entity.ChannelVideo
}

func newFakeDashboardRepo(channels ...string) *fakeDashboardRepo {
	r := &fakeDashboardRepo{
		channels:    map[string]bool{},
		subscribers: map[string]int64{},
		likes:       map[string]int64{},
	}
	for _, id := range channels {
		r.channels[id] = true
	}
	return r
}

func (r *fakeDashboardRepo) addVideo(owner string, views int64, published bool) *entity.ChannelVideo {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := &entity.ChannelVideo{
		ID:          uuid.NewString(),
		Views:       views,
		IsPublished: published,
		CreatedAt:   time.Now().Add(time.Duration(len(r.videos)) * time.Second),
	}
	r.videos = append(r.videos, fakeVideo{owner: owner, views: views, published: published, video: v})
	return v
}

func (r *fakeDashboardRepo) ChannelExists(_ context.Context, channelID string) (bool, error) {
	return r.channels[channelID], nil
}

func (r *fakeDashboardRepo) CountVideos(_ context.Context, channelID string) (int64, error) {
	r.aggregates.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.videos {
		if v.owner == channelID {
			n++
		}
	}
	return n, nil
}

func (r *fakeDashboardRepo) SumViews(_ context.Context, channelID string) (int64, error) {
	r.aggregates.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.videos {
		if v.owner == channelID {
			n += v.views
		}
	}
	return n, nil
}

func (r *fakeDashboardRepo) CountSubscribers(_ context.Context, channelID string) (int64, error) {
	r.aggregates.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subscribers[channelID], nil
}

func (r *fakeDashboardRepo) CountVideoLikes(_ context.Context, channelID string) (int64, error) {
	r.aggregates.Add(1)
	if r.failWith != nil {
		return 0, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[channelID], nil
}

func (r *fakeDashboardRepo) ListChannelVideos(_ context.Context, channelID string, includeUnpublished bool) ([]*entity.ChannelVideo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.ChannelVideo{}
	for i := len(r.videos) - 1; i >= 0; i-- {
		v := r.videos[i]
		if v.owner != channelID || (!v.published && !includeUnpublished) {
			continue
		}
		out = append(out, v.video)
	}
	return out, nil
}

var testLogger = logger.NewWithWriter(io.Discard)

func TestChannelStats_Aggregates(t *testing.T) {
	channel := uuid.NewString()
	other := uuid.NewString()
	repo := newFakeDashboardRepo(channel, other)
	repo.addVideo(channel, 100, true)
	repo.addVideo(channel, 50, false)
	repo.addVideo(other, 999, true)
	repo.subscribers[channel] = 7
	repo.likes[channel] = 12

	uc := NewDashboardUseCase(repo, nil, time.Minute, testLogger)
	stats, err := uc.ChannelStats(context.Background(), channel)
	require.NoError(t, err)

	assert.Equal(t, channel, stats.ChannelID)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(150), stats.TotalViews)
	assert.Equal(t, int64(7), stats.TotalSubscribers)
	assert.Equal(t, int64(12), stats.TotalLikes)
}

func TestChannelStats_EmptyChannelIsAllZero(t *testing.T) {
	channel := uuid.NewString()
	uc := NewDashboardUseCase(newFakeDashboardRepo(channel), nil, time.Minute, testLogger)

	stats, err := uc.ChannelStats(context.Background(), channel)
	require.NoError(t, err)
	assert.Equal(t, &entity.ChannelStats{ChannelID: channel}, stats)
}

func TestChannelStats_UnknownChannel(t *testing.T) {
	repo := newFakeDashboardRepo()
	uc := NewDashboardUseCase(repo, nil, time.Minute, testLogger)

	_, err := uc.ChannelStats(context.Background(), uuid.NewString())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Zero(t, repo.aggregates.Load())

	_, err = uc.ChannelStats(context.Background(), "nope")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}

func TestChannelStats_StoreFailure(t *testing.T) {
	channel := uuid.NewString()
	repo := newFakeDashboardRepo(channel)
	repo.failWith = apperror.Internal("database error", errors.New("connection reset"))

	uc := NewDashboardUseCase(repo, nil, time.Minute, testLogger)
	stats, err := uc.ChannelStats(context.Background(), channel)
	assert.Nil(t, stats)
	assert.True(t, apperror.IsKind(err, apperror.KindInternal))
}

func TestChannelStats_UnreachableCacheIsIgnored(t *testing.T) {
	channel := uuid.NewString()
	repo := newFakeDashboardRepo(channel)
	repo.addVideo(channel, 3, true)

	redisClient := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer redisClient.Close()

	uc := NewDashboardUseCase(repo, redisClient, time.Minute, testLogger)
	stats, err := uc.ChannelStats(context.Background(), channel)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVideos)
	assert.Equal(t, int32(4), repo.aggregates.Load())
}

func TestListChannelVideos_OwnerSeesDrafts(t *testing.T) {
	channel := uuid.NewString()
	repo := newFakeDashboardRepo(channel)
	first := repo.addVideo(channel, 1, true)
	draft := repo.addVideo(channel, 0, false)

	uc := NewDashboardUseCase(repo, nil, time.Minute, testLogger)

	own, err := uc.ListChannelVideos(context.Background(), channel, channel)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, draft.ID, own[0].ID)
	assert.Equal(t, first.ID, own[1].ID)

	public, err := uc.ListChannelVideos(context.Background(), uuid.NewString(), channel)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, first.ID, public[0].ID)

	anonymous, err := uc.ListChannelVideos(context.Background(), "", channel)
	require.NoError(t, err)
	assert.Len(t, anonymous, 1)
}

func TestListChannelVideos_OwnerMatchesAnySpelling(t *testing.T) {
	channel := uuid.NewString()
	repo := newFakeDashboardRepo(channel)
	repo.addVideo(channel, 1, true)
	repo.addVideo(channel, 0, false)

	uc := NewDashboardUseCase(repo, nil, time.Minute, testLogger)

	own, err := uc.ListChannelVideos(context.Background(), channel, strings.ToUpper(channel))
	require.NoError(t, err)
	assert.Len(t, own, 2)
}

func TestListChannelVideos_UnknownChannel(t *testing.T) {
	uc := NewDashboardUseCase(newFakeDashboardRepo(), nil, time.Minute, testLogger)

	videos, err := uc.ListChannelVideos(context.Background(), "", uuid.NewString())
	assert.Nil(t, videos)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
