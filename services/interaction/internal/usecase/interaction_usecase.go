package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/owner"
	"vidtube/pkg/queue"
	"vidtube/pkg/validate"
	"vidtube/services/interaction/internal/entity"
	"vidtube/services/interaction/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 5 * time.Second

type InteractionUseCase interface {
	ToggleLike(ctx context.Context, userID string, target entity.LikeTarget) (*entity.ToggleResult[entity.Like], error)
	IsLiked(ctx context.Context, userID string, target entity.LikeTarget) (bool, error)
	GetLikeCount(ctx context.Context, viewerID string, target entity.LikeTarget) (int64, error)
	GetLikedVideos(ctx context.Context, userID string) ([]*entity.LikedVideo, error)
}

type interactionUseCase struct {
	likeRepo     persistent.LikeRepository
	targetRepo   persistent.TargetRepository
	owners       owner.Loader
	redisClient  *redis.Client
	publisher    queue.Publisher
	likeCountTTL time.Duration
	logger       *logger.Logger
}

// NewInteractionUseCase wires the like operations. redisClient and publisher
// may be nil, which disables the like count cache and notifications.
func NewInteractionUseCase(
	likeRepo persistent.LikeRepository,
	targetRepo persistent.TargetRepository,
	owners owner.Loader,
	redisClient *redis.Client,
	publisher queue.Publisher,
	likeCountTTL time.Duration,
	logger *logger.Logger,
) InteractionUseCase {
	return &interactionUseCase{
		likeRepo:     likeRepo,
		targetRepo:   targetRepo,
		owners:       owners,
		redisClient:  redisClient,
		publisher:    publisher,
		likeCountTTL: likeCountTTL,
		logger:       logger,
	}
}

func likeCountKey(target entity.LikeTarget) string {
	return fmt.Sprintf("likes:count:%s:%s", target.Kind, target.ID)
}

// validateTarget checks the kind and returns the target with a canonical id.
func validateTarget(target entity.LikeTarget) (entity.LikeTarget, error) {
	if _, err := entity.ParseTargetKind(string(target.Kind)); err != nil {
		return target, err
	}
	id, err := validate.ID(string(target.Kind)+" id", target.ID)
	if err != nil {
		return target, err
	}
	target.ID = id
	return target, nil
}

// reachable returns the owner of target if viewerID may see it. An
// unpublished video is NotFound for everyone but its owner.
func (uc *interactionUseCase) reachable(ctx context.Context, viewerID string, target entity.LikeTarget) (string, error) {
	ownerID, published, err := uc.targetRepo.OwnerOf(ctx, target)
	if err != nil {
		return "", err
	}
	if !published && ownerID != viewerID {
		return "", apperror.NotFound("%s not found", target.Kind)
	}
	return ownerID, nil
}

func (uc *interactionUseCase) ToggleLike(ctx context.Context, userID string, target entity.LikeTarget) (*entity.ToggleResult[entity.Like], error) {
	target, err := validateTarget(target)
	if err != nil {
		return nil, err
	}

	ownerID, err := uc.reachable(ctx, userID, target)
	if err != nil {
		return nil, err
	}

	removed, err := uc.likeRepo.Delete(ctx, userID, target)
	if err != nil {
		uc.logger.Error("Failed to delete like on %s %s: %v", target.Kind, target.ID, err)
		return nil, err
	}
	if removed != nil {
		uc.invalidateLikeCount(ctx, target)
		return &entity.ToggleResult[entity.Like]{State: entity.ToggleRemoved, Record: removed}, nil
	}

	like, err := uc.likeRepo.Create(ctx, userID, target)
	if apperror.IsKind(err, apperror.KindConflict) {
		// A concurrent toggle inserted the same like first.
		like, err = uc.likeRepo.Get(ctx, userID, target)
	}
	if err != nil {
		uc.logger.Error("Failed to create like on %s %s: %v", target.Kind, target.ID, err)
		return nil, err
	}

	uc.invalidateLikeCount(ctx, target)
	notify(uc.publisher, uc.logger, queue.Task{
		Type:       queue.TaskTypeLike,
		UserID:     ownerID,
		ActorID:    userID,
		TargetKind: string(target.Kind),
		TargetID:   target.ID,
		Priority:   3,
	})

	return &entity.ToggleResult[entity.Like]{State: entity.ToggleAdded, Record: like}, nil
}

func (uc *interactionUseCase) IsLiked(ctx context.Context, userID string, target entity.LikeTarget) (bool, error) {
	target, err := validateTarget(target)
	if err != nil {
		return false, err
	}
	return uc.likeRepo.Exists(ctx, userID, target)
}

func (uc *interactionUseCase) GetLikeCount(ctx context.Context, viewerID string, target entity.LikeTarget) (int64, error) {
	target, err := validateTarget(target)
	if err != nil {
		return 0, err
	}
	if _, err := uc.reachable(ctx, viewerID, target); err != nil {
		return 0, err
	}

	key := likeCountKey(target)
	if uc.redisClient != nil {
		if cached, err := uc.redisClient.Get(ctx, key).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := uc.likeRepo.Count(ctx, target)
	if err != nil {
		return 0, err
	}

	if uc.redisClient != nil {
		if err := uc.redisClient.Set(ctx, key, count, uc.likeCountTTL).Err(); err != nil {
			uc.logger.Warn("Failed to cache like count %s: %v", key, err)
		}
	}
	return count, nil
}

func (uc *interactionUseCase) GetLikedVideos(ctx context.Context, userID string) ([]*entity.LikedVideo, error) {
	videos, err := uc.likeRepo.ListLikedVideos(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = owner.Attach(ctx, uc.owners, videos,
		func(v *entity.LikedVideo) string { return v.OwnerID },
		func(v *entity.LikedVideo, p *owner.Profile) { v.Owner = p })
	if err != nil {
		return nil, apperror.Internal("failed to load video owners", err)
	}
	return videos, nil
}

func (uc *interactionUseCase) invalidateLikeCount(ctx context.Context, target entity.LikeTarget) {
	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Del(ctx, likeCountKey(target)).Err(); err != nil {
		uc.logger.Warn("Failed to invalidate like count for %s %s: %v", target.Kind, target.ID, err)
	}
}

// notify publishes task in the background. Self-actions are not notified.
func notify(publisher queue.Publisher, log *logger.Logger, task queue.Task) {
	if publisher == nil || task.UserID == "" || task.UserID == task.ActorID {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		log.Info("[NOTIFICATION QUEUE] Publishing %s task: actor=%s, recipient=%s", task.Type, task.ActorID, task.UserID)
		if err := publisher.PublishNotificationTask(ctx, task); err != nil {
			log.Error("[NOTIFICATION QUEUE] Failed to publish %s task: %v", task.Type, err)
		}
	}()
}
