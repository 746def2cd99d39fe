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
	playlistHTTP "vidtube/services/playlist/internal/controller/http"
	"vidtube/services/playlist/internal/repo/persistent"
	"vidtube/services/playlist/internal/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	playlistRepo := persistent.NewPlaylistRepository(db)
	playlistUseCase := usecase.NewPlaylistUseCase(playlistRepo, owner.NewLoader(db), log)
	playlistHandler := playlistHTTP.NewPlaylistHandler(playlistUseCase, log)

	r := server.NewRouter()

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute, log))

	// Public routes
	{
		api.GET("/playlists/:id", playlistHandler.GetPlaylist)
		api.GET("/playlists/users/:user_id", playlistHandler.ListUserPlaylists)
	}

	// Protected routes
	protected := api.Group("/playlists")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("", playlistHandler.CreatePlaylist)
		protected.PATCH("/:id", playlistHandler.UpdatePlaylist)
		protected.DELETE("/:id", playlistHandler.DeletePlaylist)
		protected.PATCH("/:id/videos/:video_id", playlistHandler.AddVideo)
		protected.DELETE("/:id/videos/:video_id", playlistHandler.RemoveVideo)
	}

	server.Run("Playlist", cfg, log, r, database.Closer(db), redisClient)
}
