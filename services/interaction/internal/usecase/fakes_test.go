package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/owner"
	"vidtube/pkg/queue"
	"vidtube/services/interaction/internal/entity"

	"github.com/google/uuid"
)

var testLogger = logger.NewWithWriter(io.Discard)

type likeKey struct {
	userID string
	target entity.LikeTarget
}

// fakeLikeRepo enforces the (user, target) uniqueness the likes table has.
type fakeLikeRepo struct {
	mu           sync.Mutex
	likes        map[likeKey]*entity.Like
	likedVideos  []*entity.LikedVideo
	beforeCreate func()
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[likeKey]*entity.Like)}
}

func (f *fakeLikeRepo) Delete(_ context.Context, userID string, target entity.LikeTarget) (*entity.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := likeKey{userID, target}
	like, ok := f.likes[key]
	if !ok {
		return nil, nil
	}
	delete(f.likes, key)
	return like, nil
}

func (f *fakeLikeRepo) Create(_ context.Context, userID string, target entity.LikeTarget) (*entity.Like, error) {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := likeKey{userID, target}
	if _, ok := f.likes[key]; ok {
		return nil, apperror.Conflict("resource already exists")
	}
	like := &entity.Like{ID: uuid.NewString(), LikedBy: userID, Target: target, CreatedAt: time.Now()}
	f.likes[key] = like
	return like, nil
}

func (f *fakeLikeRepo) Get(_ context.Context, userID string, target entity.LikeTarget) (*entity.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	like, ok := f.likes[likeKey{userID, target}]
	if !ok {
		return nil, apperror.NotFound("like not found")
	}
	return like, nil
}

func (f *fakeLikeRepo) Exists(_ context.Context, userID string, target entity.LikeTarget) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.likes[likeKey{userID, target}]
	return ok, nil
}

func (f *fakeLikeRepo) Count(_ context.Context, target entity.LikeTarget) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for key := range f.likes {
		if key.target == target {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeRepo) ListLikedVideos(_ context.Context, _ string) ([]*entity.LikedVideo, error) {
	return f.likedVideos, nil
}

type subKey struct {
	subscriberID string
	channelID    string
}

type fakeSubscriptionRepo struct {
	mu           sync.Mutex
	subs         map[subKey]*entity.Subscription
	beforeCreate func()
	calls        int
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[subKey]*entity.Subscription)}
}

func (f *fakeSubscriptionRepo) Delete(_ context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	key := subKey{subscriberID, channelID}
	sub, ok := f.subs[key]
	if !ok {
		return nil, nil
	}
	delete(f.subs, key)
	return sub, nil
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	key := subKey{subscriberID, channelID}
	if _, ok := f.subs[key]; ok {
		return nil, apperror.Conflict("resource already exists")
	}
	sub := &entity.Subscription{ID: uuid.NewString(), SubscriberID: subscriberID, ChannelID: channelID, CreatedAt: time.Now()}
	f.subs[key] = sub
	return sub, nil
}

func (f *fakeSubscriptionRepo) Get(_ context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[subKey{subscriberID, channelID}]
	if !ok {
		return nil, apperror.NotFound("subscription not found")
	}
	return sub, nil
}

func (f *fakeSubscriptionRepo) Exists(_ context.Context, subscriberID, channelID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.subs[subKey{subscriberID, channelID}]
	return ok, nil
}

func (f *fakeSubscriptionRepo) members(match func(subKey) (string, bool)) []*entity.Member {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]*entity.Member, 0)
	for key, sub := range f.subs {
		if id, ok := match(key); ok {
			members = append(members, &entity.Member{UserID: id, SubscribedAt: sub.CreatedAt})
		}
	}
	return members
}

func (f *fakeSubscriptionRepo) ListSubscribers(_ context.Context, channelID string) ([]*entity.Member, error) {
	return f.members(func(k subKey) (string, bool) { return k.subscriberID, k.channelID == channelID }), nil
}

func (f *fakeSubscriptionRepo) ListSubscribedChannels(_ context.Context, subscriberID string) ([]*entity.Member, error) {
	return f.members(func(k subKey) (string, bool) { return k.channelID, k.subscriberID == subscriberID }), nil
}

type fakeTargetRepo struct {
	mu          sync.Mutex
	owners      map[entity.LikeTarget]string
	unpublished map[entity.LikeTarget]bool
	users       map[string]bool
	calls       int
}

func (f *fakeTargetRepo) OwnerOf(_ context.Context, target entity.LikeTarget) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	ownerID, ok := f.owners[target]
	if !ok {
		return "", false, apperror.NotFound("%s not found", target.Kind)
	}
	return ownerID, !f.unpublished[target], nil
}

func (f *fakeTargetRepo) UserExists(_ context.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.users[userID], nil
}

type fakeOwnerLoader struct {
	profiles map[string]*owner.Profile
}

func (f *fakeOwnerLoader) Load(_ context.Context, ids []string) (map[string]*owner.Profile, error) {
	out := make(map[string]*owner.Profile)
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu    sync.Mutex
	tasks []queue.Task
}

func (f *fakePublisher) PublishNotificationTask(_ context.Context, task queue.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakePublisher) published() []queue.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]queue.Task(nil), f.tasks...)
}

// barrier blocks each caller until n callers have arrived.
func barrier(n int) func() {
	var wg sync.WaitGroup
	wg.Add(n)
	return func() {
		wg.Done()
		wg.Wait()
	}
}
