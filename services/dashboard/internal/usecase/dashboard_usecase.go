package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/validate"
	"vidtube/services/dashboard/internal/entity"
	"vidtube/services/dashboard/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type DashboardUseCase interface {
	ChannelStats(ctx context.Context, channelID string) (*entity.ChannelStats, error)
	// ListChannelVideos returns the channel's videos newest first. The
	// channel owner also sees unpublished videos.
	ListChannelVideos(ctx context.Context, userID, channelID string) ([]*entity.ChannelVideo, error)
}

type dashboardUseCase struct {
	dashboardRepo persistent.DashboardRepository
	redisClient   *redis.Client
	statsTTL      time.Duration
	logger        *logger.Logger
}

// NewDashboardUseCase wires the channel dashboard. redisClient may be nil,
// which disables the stats cache.
func NewDashboardUseCase(dashboardRepo persistent.DashboardRepository, redisClient *redis.Client, statsTTL time.Duration, logger *logger.Logger) DashboardUseCase {
	return &dashboardUseCase{
		dashboardRepo: dashboardRepo,
		redisClient:   redisClient,
		statsTTL:      statsTTL,
		logger:        logger,
	}
}

func statsKey(channelID string) string {
	return fmt.Sprintf("dashboard:stats:%s", channelID)
}

// requireChannel returns the canonical id of an existing channel.
func (uc *dashboardUseCase) requireChannel(ctx context.Context, channelID string) (string, error) {
	channelID, err := validate.ID("channel id", channelID)
	if err != nil {
		return "", err
	}
	exists, err := uc.dashboardRepo.ChannelExists(ctx, channelID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperror.NotFound("channel not found")
	}
	return channelID, nil
}

func (uc *dashboardUseCase) ChannelStats(ctx context.Context, channelID string) (*entity.ChannelStats, error) {
	channelID, err := uc.requireChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if cached, ok := uc.cachedStats(ctx, channelID); ok {
		return cached, nil
	}

	stats := &entity.ChannelStats{ChannelID: channelID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalVideos, err = uc.dashboardRepo.CountVideos(gctx, channelID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalViews, err = uc.dashboardRepo.SumViews(gctx, channelID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalSubscribers, err = uc.dashboardRepo.CountSubscribers(gctx, channelID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalLikes, err = uc.dashboardRepo.CountVideoLikes(gctx, channelID)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to aggregate stats for channel %s: %v", channelID, err)
		return nil, err
	}

	uc.cacheStats(ctx, stats)
	return stats, nil
}

func (uc *dashboardUseCase) cachedStats(ctx context.Context, channelID string) (*entity.ChannelStats, bool) {
	if uc.redisClient == nil {
		return nil, false
	}
	raw, err := uc.redisClient.Get(ctx, statsKey(channelID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			uc.logger.Warn("Failed to read cached stats for %s: %v", channelID, err)
		}
		return nil, false
	}
	var stats entity.ChannelStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (uc *dashboardUseCase) cacheStats(ctx context.Context, stats *entity.ChannelStats) {
	if uc.redisClient == nil || uc.statsTTL <= 0 {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := uc.redisClient.Set(ctx, statsKey(stats.ChannelID), payload, uc.statsTTL).Err(); err != nil {
		uc.logger.Warn("Failed to cache stats for %s: %v", stats.ChannelID, err)
	}
}

func (uc *dashboardUseCase) ListChannelVideos(ctx context.Context, userID, channelID string) ([]*entity.ChannelVideo, error) {
	channelID, err := uc.requireChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return uc.dashboardRepo.ListChannelVideos(ctx, channelID, userID == channelID)
}
