package persistent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/services/notification/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	inboxSize = 100
	inboxTTL  = 30 * 24 * time.Hour
)

// Inbox keeps the latest notifications of every user, newest first, and
// fans new ones out to live listeners.
type Inbox interface {
	Push(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, userID string, offset, limit int) ([]*entity.Notification, error)
	Count(ctx context.Context, userID string) (int64, error)
	// Subscribe streams raw notification payloads for userID until ctx is done.
	Subscribe(ctx context.Context, userID string) (<-chan []byte, error)
}

type redisInbox struct {
	client *redis.Client
}

func NewRedisInbox(client *redis.Client) Inbox {
	return &redisInbox{client: client}
}

func inboxKey(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func (i *redisInbox) Push(ctx context.Context, n *entity.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := inboxKey(n.UserID)
	pipe := i.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, inboxSize-1)
	pipe.Expire(ctx, key, inboxTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if err := i.client.Publish(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification on %s: %w", key, err)
	}
	return nil
}

func (i *redisInbox) List(ctx context.Context, userID string, offset, limit int) ([]*entity.Notification, error) {
	raw, err := i.client.LRange(ctx, inboxKey(userID), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, apperror.Internal("failed to get notifications", err)
	}

	notifications := make([]*entity.Notification, 0, len(raw))
	for _, item := range raw {
		var n entity.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		notifications = append(notifications, &n)
	}
	return notifications, nil
}

func (i *redisInbox) Count(ctx context.Context, userID string) (int64, error) {
	total, err := i.client.LLen(ctx, inboxKey(userID)).Result()
	if err != nil {
		return 0, apperror.Internal("failed to count notifications", err)
	}
	return total, nil
}

func (i *redisInbox) Subscribe(ctx context.Context, userID string) (<-chan []byte, error) {
	pubsub := i.client.Subscribe(ctx, inboxKey(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, apperror.Internal("failed to subscribe to notifications", err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
