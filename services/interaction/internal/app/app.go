package internal

import (
	"time"

	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/owner"
	"vidtube/pkg/queue"
	"vidtube/pkg/server"
	interactionHTTP "vidtube/services/interaction/internal/controller/http"
	"vidtube/services/interaction/internal/entity"
	"vidtube/services/interaction/internal/repo/persistent"
	"vidtube/services/interaction/internal/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Run serves likes and subscriptions. queueClient may be nil, in which case
// no notifications are published.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Repositories
	likeRepo := persistent.NewLikeRepository(db)
	subscriptionRepo := persistent.NewSubscriptionRepository(db)
	targetRepo := persistent.NewTargetRepository(db)
	owners := owner.NewLoader(db)

	var publisher queue.Publisher
	if queueClient != nil {
		publisher = queueClient
	}

	// Use cases
	interactionUseCase := usecase.NewInteractionUseCase(likeRepo, targetRepo, owners, redisClient, publisher, cfg.LikeCountCacheTTL, log)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, targetRepo, owners, publisher, log)

	// HTTP handlers
	interactionHandler := interactionHTTP.NewInteractionHandler(interactionUseCase, log)
	subscriptionHandler := interactionHTTP.NewSubscriptionHandler(subscriptionUseCase, log)

	r := server.NewRouter()

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, log))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))

	likePaths := map[entity.TargetKind]string{
		entity.TargetVideo:   "/likes/videos/:id",
		entity.TargetComment: "/likes/comments/:id",
		entity.TargetTweet:   "/likes/tweets/:id",
	}

	// Protected routes
	{
		for kind, path := range likePaths {
			protected.POST(path, interactionHandler.ToggleLike(kind))
			protected.GET(path+"/status", interactionHandler.LikeStatus(kind))
		}
		protected.GET("/likes/videos", interactionHandler.GetLikedVideos)

		protected.POST("/subscriptions/channels/:channel_id", subscriptionHandler.ToggleSubscription)
		protected.GET("/subscriptions/channels/:channel_id/status", subscriptionHandler.SubscriptionStatus)
	}

	// Public routes
	{
		for kind, path := range likePaths {
			api.GET(path+"/count", interactionHandler.LikeCount(kind))
		}
		api.GET("/subscriptions/channels/:channel_id/subscribers", subscriptionHandler.GetChannelSubscribers)
		api.GET("/subscriptions/users/:subscriber_id/channels", subscriptionHandler.GetSubscribedChannels)
	}

	server.Run("Interaction", cfg, log, r, database.Closer(db), redisClient, queueClient)
}
