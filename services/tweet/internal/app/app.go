package internal

import (
	"time"

	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/owner"
	"vidtube/pkg/server"
	tweetHTTP "vidtube/services/tweet/internal/controller/http"
	"vidtube/services/tweet/internal/repo/persistent"
	"vidtube/services/tweet/internal/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	tweetRepo := persistent.NewTweetRepository(db)
	tweetUseCase := usecase.NewTweetUseCase(tweetRepo, owner.NewLoader(db), log)
	tweetHandler := tweetHTTP.NewTweetHandler(tweetUseCase, log)

	r := server.NewRouter()

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, log))

	api.GET("/tweets/users/:user_id", tweetHandler.ListUserTweets)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("/tweets", tweetHandler.CreateTweet)
		protected.PATCH("/tweets/:id", tweetHandler.UpdateTweet)
		protected.DELETE("/tweets/:id", tweetHandler.DeleteTweet)
	}

	server.Run("Tweet", cfg, log, r, database.Closer(db), redisClient)
}
