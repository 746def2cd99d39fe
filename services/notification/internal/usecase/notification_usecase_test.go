package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/pagination"
	"vidtube/pkg/queue"
	"vidtube/services/notification/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInbox struct {
	mu      sync.Mutex
	lists   map[string][]*entity.Notification
	pushErr error
	listed  int
}

func newFakeInbox() *fakeInbox {
	return &fakeInbox{lists: map[string][]*entity.Notification{}}
}

func (f *fakeInbox) Push(_ context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.lists[n.UserID] = append([]*entity.Notification{n}, f.lists[n.UserID]...)
	return nil
}

func (f *fakeInbox) List(_ context.Context, userID string, offset, limit int) ([]*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed++
	list := f.lists[userID]
	start := min(offset, len(list))
	end := min(start+limit, len(list))
	return append([]*entity.Notification(nil), list[start:end]...), nil
}

func (f *fakeInbox) Count(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.lists[userID])), nil
}

func (f *fakeInbox) Subscribe(ctx context.Context, userID string) (<-chan []byte, error) {
	out := make(chan []byte)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out, nil
}

type fakeUsers map[string]string

func (f fakeUsers) Username(_ context.Context, userID string) (string, error) {
	if name, ok := f[userID]; ok {
		return name, nil
	}
	return "", apperror.NotFound("user not found")
}

var testPageCfg = pagination.Config{DefaultLimit: 10, MaxLimit: 100}

func newNotificationUseCase(users fakeUsers) (*fakeInbox, *notificationUseCase) {
	inbox := newFakeInbox()
	uc := NewNotificationUseCase(inbox, users, testPageCfg, logger.NewWithWriter(io.Discard)).(*notificationUseCase)
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return inbox, uc
}

func TestHandleTask_Like(t *testing.T) {
	inbox, uc := newNotificationUseCase(fakeUsers{"liker-1": "ada"})

	err := uc.HandleTask(context.Background(), queue.Task{
		Type:       queue.TaskTypeLike,
		UserID:     "owner-1",
		ActorID:    "liker-1",
		TargetKind: "video",
		TargetID:   "video-1",
	})
	require.NoError(t, err)

	list := inbox.lists["owner-1"]
	require.Len(t, list, 1)
	n := list[0]
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, entity.TypeLike, n.Type)
	assert.Equal(t, "ada liked your video", n.Message)
	assert.Equal(t, "video-1", n.Data["target_id"])
	assert.Equal(t, "liker-1", n.Data["liker_id"])
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), n.CreatedAt)
}

func TestHandleTask_SubscriptionWithUnknownActor(t *testing.T) {
	inbox, uc := newNotificationUseCase(fakeUsers{})

	err := uc.HandleTask(context.Background(), queue.Task{
		Type:    queue.TaskTypeSubscription,
		UserID:  "channel-1",
		ActorID: "ghost",
	})
	require.NoError(t, err)

	list := inbox.lists["channel-1"]
	require.Len(t, list, 1)
	assert.Equal(t, "Someone subscribed to you", list[0].Message)
	assert.Equal(t, "ghost", list[0].Data["subscriber_id"])
}

func TestHandleTask_Rejects(t *testing.T) {
	inbox, uc := newNotificationUseCase(fakeUsers{})
	ctx := context.Background()

	assert.Error(t, uc.HandleTask(ctx, queue.Task{Type: queue.TaskTypeLike, UserID: "u1", ActorID: "u2"}))
	assert.Error(t, uc.HandleTask(ctx, queue.Task{Type: queue.TaskTypeSubscription, UserID: "u1"}))
	assert.Error(t, uc.HandleTask(ctx, queue.Task{Type: "new_post", UserID: "u1", ActorID: "u2"}))
	assert.Empty(t, inbox.lists)
}

func TestHandleTask_StoreFailure(t *testing.T) {
	inbox, uc := newNotificationUseCase(fakeUsers{})
	inbox.pushErr = errors.New("redis down")

	err := uc.HandleTask(context.Background(), queue.Task{Type: queue.TaskTypeSubscription, UserID: "u1", ActorID: "u2"})
	assert.ErrorIs(t, err, inbox.pushErr)
}

func TestGetNotifications_Pages(t *testing.T) {
	inbox, uc := newNotificationUseCase(fakeUsers{})
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		require.NoError(t, uc.HandleTask(ctx, queue.Task{Type: queue.TaskTypeSubscription, UserID: "u1", ActorID: "u2"}))
	}

	first, err := uc.GetNotifications(ctx, "u1", pagination.Request{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, first.Items, 5)
	assert.Equal(t, int64(12), first.TotalCount)
	assert.Equal(t, int64(3), first.TotalPages)
	assert.Equal(t, inbox.lists["u1"][0].ID, first.Items[0].ID)

	last, err := uc.GetNotifications(ctx, "u1", pagination.Request{Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, last.Items, 2)

	listed := inbox.listed
	beyond, err := uc.GetNotifications(ctx, "u1", pagination.Request{Page: 4, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
	assert.Equal(t, listed, inbox.listed)
}

func TestGetNotifications_EmptyInbox(t *testing.T) {
	_, uc := newNotificationUseCase(fakeUsers{})

	page, err := uc.GetNotifications(context.Background(), "u1", pagination.Request{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(0), page.TotalPages)

	_, err = uc.GetNotifications(context.Background(), "u1", pagination.Request{Page: -1})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}

func TestStream_RequiresUser(t *testing.T) {
	_, uc := newNotificationUseCase(fakeUsers{})

	_, err := uc.Stream(context.Background(), "")
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	ctx, cancel := context.WithCancel(context.Background())
	updates, err := uc.Stream(ctx, "u1")
	require.NoError(t, err)
	cancel()
	_, open := <-updates
	assert.False(t, open)
}
