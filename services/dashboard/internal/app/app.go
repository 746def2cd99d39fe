package internal

import (
	"time"

	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/server"
	dashboardHTTP "vidtube/services/dashboard/internal/controller/http"
	"vidtube/services/dashboard/internal/repo/persistent"
	"vidtube/services/dashboard/internal/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	dashboardRepo := persistent.NewDashboardRepository(db)
	dashboardUseCase := usecase.NewDashboardUseCase(dashboardRepo, redisClient, cfg.StatsCacheTTL, log)
	dashboardHandler := dashboardHTTP.NewDashboardHandler(dashboardUseCase, log)

	r := server.NewRouter()

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, log))

	// Public routes
	{
		api.GET("/channels/:channel_id/stats", dashboardHandler.GetChannelStats)
		api.GET("/channels/:channel_id/videos", dashboardHandler.GetChannelVideos)
	}

	// Protected routes
	protected := api.Group("/dashboard")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/stats", dashboardHandler.GetMyStats)
		protected.GET("/videos", dashboardHandler.GetMyVideos)
	}

	server.Run("Dashboard", cfg, log, r, database.Closer(db), redisClient)
}
