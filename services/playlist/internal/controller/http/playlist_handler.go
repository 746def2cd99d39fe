package http

import (
	"net/http"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/response"
	"vidtube/services/playlist/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistUseCase usecase.PlaylistUseCase
	logger          *logger.Logger
}

func NewPlaylistHandler(playlistUseCase usecase.PlaylistUseCase, logger *logger.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		playlistUseCase: playlistUseCase,
		logger:          logger,
	}
}

type CreatePlaylistRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Videos      []string `json:"videos"`
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreatePlaylist godoc
// @Summary      Create a playlist
// @Description  All listed videos must belong to the caller
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePlaylistRequest true "Playlist"
// @Success      201  {object}  response.Result[entity.Playlist]
// @Failure      400  {object}  response.Result[any]
// @Router       /playlists [post]
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("name and description are required"))
		return
	}

	playlist, err := h.playlistUseCase.CreatePlaylist(c.Request.Context(), middleware.Principal(c), req.Name, req.Description, req.Videos)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusCreated, playlist, "Playlist created")
}

// GetPlaylist godoc
// @Summary      Get a playlist with its videos
// @Tags         playlists
// @Produce      json
// @Param        id path string true "Playlist ID"
// @Success      200  {object}  response.Result[entity.Playlist]
// @Failure      404  {object}  response.Result[any]
// @Router       /playlists/{id} [get]
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	playlist, err := h.playlistUseCase.GetPlaylist(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, playlist, "Playlist fetched")
}

// ListUserPlaylists godoc
// @Summary      List a user's playlists
// @Tags         playlists
// @Produce      json
// @Param        user_id path string true "User ID"
// @Success      200  {object}  response.Result[[]entity.Playlist]
// @Failure      404  {object}  response.Result[any]
// @Router       /playlists/users/{user_id} [get]
func (h *PlaylistHandler) ListUserPlaylists(c *gin.Context) {
	playlists, err := h.playlistUseCase.ListUserPlaylists(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, playlists, "Playlists fetched")
}

// UpdatePlaylist godoc
// @Summary      Rename a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "Playlist ID"
// @Param        request body UpdatePlaylistRequest true "New details"
// @Success      200  {object}  response.Result[entity.Playlist]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /playlists/{id} [patch]
func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("name and description are required"))
		return
	}

	playlist, err := h.playlistUseCase.UpdatePlaylist(c.Request.Context(), middleware.Principal(c), c.Param("id"), req.Name, req.Description)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, playlist, "Playlist updated")
}

// DeletePlaylist godoc
// @Summary      Delete a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Playlist ID"
// @Success      200  {object}  response.Result[any]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /playlists/{id} [delete]
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	playlistID := c.Param("id")
	if err := h.playlistUseCase.DeletePlaylist(c.Request.Context(), middleware.Principal(c), playlistID); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"id": playlistID}, "Playlist deleted")
}

// AddVideo godoc
// @Summary      Add a video to a playlist
// @Description  Adding a video that is already present changes nothing
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        id       path string true "Playlist ID"
// @Param        video_id path string true "Video ID"
// @Success      200  {object}  response.Result[entity.Playlist]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /playlists/{id}/videos/{video_id} [patch]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlist, err := h.playlistUseCase.AddVideo(c.Request.Context(), middleware.Principal(c), c.Param("id"), c.Param("video_id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, playlist, "Video added to playlist")
}

// RemoveVideo godoc
// @Summary      Remove a video from a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        id       path string true "Playlist ID"
// @Param        video_id path string true "Video ID"
// @Success      200  {object}  response.Result[entity.Playlist]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /playlists/{id}/videos/{video_id} [delete]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlist, err := h.playlistUseCase.RemoveVideo(c.Request.Context(), middleware.Principal(c), c.Param("id"), c.Param("video_id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, playlist, "Video removed from playlist")
}
