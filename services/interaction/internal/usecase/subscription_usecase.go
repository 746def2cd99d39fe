package usecase

import (
	"context"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/owner"
	"vidtube/pkg/queue"
	"vidtube/pkg/validate"
	"vidtube/services/interaction/internal/entity"
	"vidtube/services/interaction/internal/repo/persistent"
)

type SubscriptionUseCase interface {
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (*entity.ToggleResult[entity.Subscription], error)
	GetSubscriptionStatus(ctx context.Context, subscriberID, channelID string) (bool, error)
	GetChannelSubscribers(ctx context.Context, channelID string) ([]*entity.Member, error)
	GetSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.Member, error)
}

type subscriptionUseCase struct {
	subscriptionRepo persistent.SubscriptionRepository
	targetRepo       persistent.TargetRepository
	owners           owner.Loader
	publisher        queue.Publisher
	logger           *logger.Logger
}

func NewSubscriptionUseCase(
	subscriptionRepo persistent.SubscriptionRepository,
	targetRepo persistent.TargetRepository,
	owners owner.Loader,
	publisher queue.Publisher,
	logger *logger.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		targetRepo:       targetRepo,
		owners:           owners,
		publisher:        publisher,
		logger:           logger,
	}
}

func (uc *subscriptionUseCase) requireUser(ctx context.Context, userID, what string) error {
	exists, err := uc.targetRepo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NotFound("%s not found", what)
	}
	return nil
}

func (uc *subscriptionUseCase) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (*entity.ToggleResult[entity.Subscription], error) {
	channelID, err := validate.ID("channel id", channelID)
	if err != nil {
		return nil, err
	}
	if subscriberID == channelID {
		return nil, apperror.InvalidOperation("cannot subscribe to yourself")
	}
	if err := uc.requireUser(ctx, channelID, "channel"); err != nil {
		return nil, err
	}

	removed, err := uc.subscriptionRepo.Delete(ctx, subscriberID, channelID)
	if err != nil {
		uc.logger.Error("Failed to delete subscription %s -> %s: %v", subscriberID, channelID, err)
		return nil, err
	}
	if removed != nil {
		return &entity.ToggleResult[entity.Subscription]{State: entity.ToggleRemoved, Record: removed}, nil
	}

	sub, err := uc.subscriptionRepo.Create(ctx, subscriberID, channelID)
	if apperror.IsKind(err, apperror.KindConflict) {
		// A concurrent toggle inserted the same subscription first.
		sub, err = uc.subscriptionRepo.Get(ctx, subscriberID, channelID)
	}
	if err != nil {
		uc.logger.Error("Failed to create subscription %s -> %s: %v", subscriberID, channelID, err)
		return nil, err
	}

	notify(uc.publisher, uc.logger, queue.Task{
		Type:     queue.TaskTypeSubscription,
		UserID:   channelID,
		ActorID:  subscriberID,
		Priority: 4,
	})

	return &entity.ToggleResult[entity.Subscription]{State: entity.ToggleAdded, Record: sub}, nil
}

func (uc *subscriptionUseCase) GetSubscriptionStatus(ctx context.Context, subscriberID, channelID string) (bool, error) {
	channelID, err := validate.ID("channel id", channelID)
	if err != nil {
		return false, err
	}
	return uc.subscriptionRepo.Exists(ctx, subscriberID, channelID)
}

func (uc *subscriptionUseCase) GetChannelSubscribers(ctx context.Context, channelID string) ([]*entity.Member, error) {
	channelID, err := validate.ID("channel id", channelID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireUser(ctx, channelID, "channel"); err != nil {
		return nil, err
	}

	members, err := uc.subscriptionRepo.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if err := uc.attachUsers(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

func (uc *subscriptionUseCase) GetSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.Member, error) {
	subscriberID, err := validate.ID("subscriber id", subscriberID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireUser(ctx, subscriberID, "user"); err != nil {
		return nil, err
	}

	members, err := uc.subscriptionRepo.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	if err := uc.attachUsers(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

func (uc *subscriptionUseCase) attachUsers(ctx context.Context, members []*entity.Member) error {
	err := owner.Attach(ctx, uc.owners, members,
		func(m *entity.Member) string { return m.UserID },
		func(m *entity.Member, p *owner.Profile) { m.User = p })
	if err != nil {
		return apperror.Internal("failed to load users", err)
	}
	return nil
}
