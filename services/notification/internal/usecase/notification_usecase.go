package usecase

import (
	"context"
	"fmt"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/pagination"
	"vidtube/pkg/queue"
	"vidtube/services/notification/internal/entity"
	"vidtube/services/notification/internal/repo/persistent"

	"github.com/google/uuid"
)

type NotificationUseCase interface {
	// HandleTask turns a queued like or subscription event into a
	// notification for its recipient.
	HandleTask(ctx context.Context, task queue.Task) error
	GetNotifications(ctx context.Context, userID string, req pagination.Request) (pagination.Page[*entity.Notification], error)
	Stream(ctx context.Context, userID string) (<-chan []byte, error)
}

type notificationUseCase struct {
	inbox    persistent.Inbox
	userRepo persistent.UserRepository
	pageCfg  pagination.Config
	logger   *logger.Logger
	now      func() time.Time
}

func NewNotificationUseCase(inbox persistent.Inbox, userRepo persistent.UserRepository, pageCfg pagination.Config, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		inbox:    inbox,
		userRepo: userRepo,
		pageCfg:  pageCfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *notificationUseCase) HandleTask(ctx context.Context, task queue.Task) error {
	if task.UserID == "" || task.ActorID == "" {
		uc.logger.Error("[NOTIFICATION HANDLER] Invalid %s task: missing user_id or actor_id, task=%+v", task.Type, task)
		return fmt.Errorf("invalid task: missing required fields")
	}

	var n *entity.Notification
	switch task.Type {
	case queue.TaskTypeLike:
		if task.TargetKind == "" || task.TargetID == "" {
			uc.logger.Error("[NOTIFICATION HANDLER] Invalid like task: missing target, task=%+v", task)
			return fmt.Errorf("invalid task: missing like target")
		}
		n = &entity.Notification{
			Title:   "New Like!",
			Message: fmt.Sprintf("%s liked your %s", uc.actorName(ctx, task.ActorID), task.TargetKind),
			Type:    entity.TypeLike,
			Data: map[string]string{
				"liker_id":    task.ActorID,
				"target_kind": task.TargetKind,
				"target_id":   task.TargetID,
			},
		}
	case queue.TaskTypeSubscription:
		n = &entity.Notification{
			Title:   "New Subscriber!",
			Message: fmt.Sprintf("%s subscribed to you", uc.actorName(ctx, task.ActorID)),
			Type:    entity.TypeSubscription,
			Data: map[string]string{
				"subscriber_id": task.ActorID,
			},
		}
	default:
		uc.logger.Error("[NOTIFICATION HANDLER] Unknown notification type: %s, task=%+v", task.Type, task)
		return fmt.Errorf("unknown notification type: %s", task.Type)
	}

	n.ID = uuid.NewString()
	n.UserID = task.UserID
	n.CreatedAt = uc.now().UTC()

	if err := uc.inbox.Push(ctx, n); err != nil {
		uc.logger.Error("[NOTIFICATION HANDLER] Failed to send %s notification to user %s: %v", n.Type, n.UserID, err)
		return err
	}

	uc.logger.Info("[NOTIFICATION HANDLER] Sent %s notification to user %s", n.Type, n.UserID)
	return nil
}

// actorName falls back to "Someone" when the actor cannot be resolved.
func (uc *notificationUseCase) actorName(ctx context.Context, actorID string) string {
	name, err := uc.userRepo.Username(ctx, actorID)
	if err != nil || name == "" {
		if err != nil {
			uc.logger.Warn("[NOTIFICATION HANDLER] Failed to resolve username for %s: %v", actorID, err)
		}
		return "Someone"
	}
	return name
}

func (uc *notificationUseCase) GetNotifications(ctx context.Context, userID string, req pagination.Request) (pagination.Page[*entity.Notification], error) {
	req.Normalize(uc.pageCfg)
	if err := req.Validate(); err != nil {
		return pagination.Page[*entity.Notification]{}, err
	}
	if userID == "" {
		return pagination.Page[*entity.Notification]{}, apperror.Unauthorized("unauthorized")
	}

	total, err := uc.inbox.Count(ctx, userID)
	if err != nil {
		return pagination.Page[*entity.Notification]{}, err
	}
	if int64(req.Offset()) >= total {
		return pagination.NewPage[*entity.Notification](nil, req, total), nil
	}

	items, err := uc.inbox.List(ctx, userID, req.Offset(), req.Limit)
	if err != nil {
		return pagination.Page[*entity.Notification]{}, err
	}
	return pagination.NewPage(items, req, total), nil
}

func (uc *notificationUseCase) Stream(ctx context.Context, userID string) (<-chan []byte, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("unauthorized")
	}
	return uc.inbox.Subscribe(ctx, userID)
}
