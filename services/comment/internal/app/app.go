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
	"vidtube/pkg/server"
	commentHTTP "vidtube/services/comment/internal/controller/http"
	"vidtube/services/comment/internal/repo/persistent"
	"vidtube/services/comment/internal/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	pageCfg := pagination.Config{DefaultLimit: cfg.DefaultPageLimit, MaxLimit: cfg.MaxPageLimit}

	commentRepo := persistent.NewCommentRepository(db)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, owner.NewLoader(db), pageCfg, log)
	commentHandler := commentHTTP.NewCommentHandler(commentUseCase, pageCfg, log)

	r := server.NewRouter()

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, log))

	api.GET("/comments/videos/:video_id", commentHandler.ListComments)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("/comments/videos/:video_id", commentHandler.AddComment)
		protected.PATCH("/comments/:id", commentHandler.UpdateComment)
		protected.DELETE("/comments/:id", commentHandler.DeleteComment)
	}

	server.Run("Comment", cfg, log, r, database.Closer(db), redisClient)
}
