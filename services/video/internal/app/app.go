package internal

import (
	"time"

	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/owner"
	"vidtube/pkg/pagination"
	"vidtube/pkg/s3"
	"vidtube/pkg/server"
	videoHTTP "vidtube/services/video/internal/controller/http"
	"vidtube/services/video/internal/repo/persistent"
	"vidtube/services/video/internal/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Run serves the video catalogue. s3Client may be nil, in which case only
// hosted media URLs are accepted.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	pageCfg := pagination.Config{DefaultLimit: cfg.DefaultPageLimit, MaxLimit: cfg.MaxPageLimit}

	var uploader s3.Store
	if s3Client != nil {
		uploader = s3Client
	}

	videoRepo := persistent.NewVideoRepository(db)
	videoUseCase := usecase.NewVideoUseCase(videoRepo, owner.NewLoader(db), uploader, redisClient, pageCfg, log)
	videoHandler := videoHTTP.NewVideoHandler(videoUseCase, pageCfg, log)

	r := server.NewRouter()
	r.MaxMultipartMemory = 32 << 20

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, log))

	// Public routes
	{
		api.GET("/videos", videoHandler.ListVideos)
		api.GET("/videos/:id", videoHandler.GetVideo)
		api.POST("/videos/:id/view", videoHandler.RecordView)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("/videos", videoHandler.CreateVideo)
		protected.PATCH("/videos/:id", videoHandler.UpdateVideo)
		protected.DELETE("/videos/:id", videoHandler.DeleteVideo)
		protected.PATCH("/videos/:id/publish", videoHandler.TogglePublish)
	}

	server.Run("Video", cfg, log, r, database.Closer(db), redisClient)
}
