package persistent

import (
	"vidtube/pkg/models"
	"vidtube/services/interaction/internal/entity"
)

func ToLikeEntity(m *models.Like) *entity.Like {
	if m == nil {
		return nil
	}
	kind, id := m.Target()
	return &entity.Like{
		ID:        m.ID,
		LikedBy:   m.LikedBy,
		Target:    entity.LikeTarget{Kind: entity.TargetKind(kind), ID: id},
		CreatedAt: m.CreatedAt,
	}
}

func ToLikeModel(e *entity.Like) *models.Like {
	if e == nil {
		return nil
	}
	m := &models.Like{
		ID:        e.ID,
		LikedBy:   e.LikedBy,
		CreatedAt: e.CreatedAt,
	}
	m.SetTarget(string(e.Target.Kind), e.Target.ID)
	return m
}

func ToSubscriptionEntity(m *models.Subscription) *entity.Subscription {
	if m == nil {
		return nil
	}
	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		CreatedAt:    m.CreatedAt,
	}
}
