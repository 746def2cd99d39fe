package internal

import (
	"time"

	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/s3"
	"vidtube/pkg/server"
	authHTTP "vidtube/services/auth/internal/controller/http"
	"vidtube/services/auth/internal/repo/persistent"
	"vidtube/services/auth/internal/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Run serves registration, login and profiles. s3Client may be nil, which
// disables avatar uploads.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	var uploader s3.Uploader
	if s3Client != nil {
		uploader = s3Client
	}

	userRepo := persistent.NewUserRepository(db)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, uploader, log)
	authHandler := authHTTP.NewAuthHandler(authUseCase, log)

	r := server.NewRouter()

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, log))
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/users/:id", authHandler.GetUser)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/avatar", authHandler.UploadAvatar)
	}

	server.Run("Auth", cfg, log, r, database.Closer(db), redisClient)
}
