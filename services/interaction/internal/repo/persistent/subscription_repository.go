package persistent

import (
	"context"
	"time"

	"vidtube/pkg/database"
	"vidtube/pkg/models"
	"vidtube/services/interaction/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	// Delete removes the subscription and returns it, or nil when there was none.
	Delete(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error)
	// Create inserts a subscription. A duplicate is reported as a Conflict.
	Create(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error)
	Get(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error)
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]*entity.Member, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.Member, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	var removed []models.Subscription
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&removed).Error
	if err != nil {
		return nil, database.MapError(err, "")
	}
	if len(removed) == 0 {
		return nil, nil
	}
	return ToSubscriptionEntity(&removed[0]), nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	sub := &models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, database.MapError(err, "")
	}
	return ToSubscriptionEntity(sub), nil
}

func (r *subscriptionRepository) Get(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if err != nil {
		return nil, database.MapError(err, "subscription not found")
	}
	return ToSubscriptionEntity(&sub), nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, database.MapError(err, "")
	}
	return count > 0, nil
}

type memberRow struct {
	UserID    string
	CreatedAt time.Time
}

func (r *subscriptionRepository) listMembers(ctx context.Context, memberColumn, filterColumn, id string) ([]*entity.Member, error) {
	var rows []memberRow
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Select(memberColumn+" AS user_id, created_at").
		Where(filterColumn+" = ?", id).
		Order("created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, database.MapError(err, "")
	}

	members := make([]*entity.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, &entity.Member{UserID: row.UserID, SubscribedAt: row.CreatedAt})
	}
	return members, nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]*entity.Member, error) {
	return r.listMembers(ctx, "subscriber_id", "channel_id", channelID)
}

func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.Member, error) {
	return r.listMembers(ctx, "channel_id", "subscriber_id", subscriberID)
}
