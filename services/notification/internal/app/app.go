package internal

import (
	"context"
	"time"

	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/pagination"
	"vidtube/pkg/queue"
	"vidtube/pkg/server"
	notificationHTTP "vidtube/services/notification/internal/controller/http"
	"vidtube/services/notification/internal/repo/persistent"
	"vidtube/services/notification/internal/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Run consumes notification tasks and serves the inbox. queueClient may be
// nil, in which case only reads are served.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	pageCfg := pagination.Config{DefaultLimit: cfg.DefaultPageLimit, MaxLimit: cfg.MaxPageLimit}

	inbox := persistent.NewRedisInbox(redisClient)
	userRepo := persistent.NewUserRepository(db)
	notificationUseCase := usecase.NewNotificationUseCase(inbox, userRepo, pageCfg, log)
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, pageCfg, log, jwtService)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	if queueClient != nil {
		log.Info("Starting notification queue processor...")
		if err := queueClient.ConsumeNotificationTasks(consumerCtx, notificationUseCase.HandleTask); err != nil {
			log.Error("Error starting notification queue consumer: %v", err)
		}
	} else {
		log.Warn("Notification queue unavailable, serving reads only")
	}

	r := server.NewRouter()

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService))

	// WebSocket authenticates via the token query parameter as well
	api.GET("/notifications/ws", notificationHandler.HandleWebSocket)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, log))
	{
		protected.GET("/notifications", notificationHandler.GetNotifications)
	}

	stop := server.CloserFunc(func() error {
		stopConsumer()
		return nil
	})
	server.Run("Notification", cfg, log, r, stop, queueClient, database.Closer(db), redisClient)
}
