package http

import (
	"net/http"

	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/response"
	"vidtube/services/interaction/internal/entity"
	"vidtube/services/interaction/internal/usecase"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUseCase usecase.InteractionUseCase
	logger             *logger.Logger
}

func NewInteractionHandler(interactionUseCase usecase.InteractionUseCase, logger *logger.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
		logger:             logger,
	}
}

// toggleStatus maps a toggle outcome to 201 for a new record and 200 for a removal.
func toggleStatus(state entity.ToggleState) int {
	if state == entity.ToggleAdded {
		return http.StatusCreated
	}
	return http.StatusOK
}

// ToggleLike godoc
// @Summary      Toggle a like
// @Description  Likes the target if the caller has not liked it yet, otherwise removes the like
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "Target kind" Enums(videos, comments, tweets)
// @Param        id   path string true "Target ID"
// @Success      201  {object}  response.Result[entity.ToggleResult[entity.Like]]
// @Success      200  {object}  response.Result[entity.ToggleResult[entity.Like]]
// @Failure      400  {object}  response.Result[any]
// @Failure      401  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /likes/{kind}/{id} [post]
func (h *InteractionHandler) ToggleLike(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := entity.LikeTarget{Kind: kind, ID: c.Param("id")}

		result, err := h.interactionUseCase.ToggleLike(c.Request.Context(), middleware.Principal(c), target)
		if err != nil {
			response.Error(c, h.logger, err)
			return
		}

		message := "Like removed"
		if result.State == entity.ToggleAdded {
			message = "Liked " + string(kind)
		}
		response.JSON(c, toggleStatus(result.State), result, message)
	}
}

// LikeStatus godoc
// @Summary      Check if the caller liked a target
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "Target kind" Enums(videos, comments, tweets)
// @Param        id   path string true "Target ID"
// @Success      200  {object}  response.Result[map[string]interface{}]
// @Failure      400  {object}  response.Result[any]
// @Router       /likes/{kind}/{id}/status [get]
func (h *InteractionHandler) LikeStatus(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := entity.LikeTarget{Kind: kind, ID: c.Param("id")}

		liked, err := h.interactionUseCase.IsLiked(c.Request.Context(), middleware.Principal(c), target)
		if err != nil {
			response.Error(c, h.logger, err)
			return
		}

		response.JSON(c, http.StatusOK, gin.H{"target": target, "liked": liked}, "Like status fetched")
	}
}

// LikeCount godoc
// @Summary      Get the like count of a target
// @Description  Served from Redis when cached, otherwise counted in the database
// @Tags         likes
// @Produce      json
// @Param        kind path string true "Target kind" Enums(videos, comments, tweets)
// @Param        id   path string true "Target ID"
// @Success      200  {object}  response.Result[map[string]interface{}]
// @Failure      404  {object}  response.Result[any]
// @Router       /likes/{kind}/{id}/count [get]
func (h *InteractionHandler) LikeCount(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := entity.LikeTarget{Kind: kind, ID: c.Param("id")}

		count, err := h.interactionUseCase.GetLikeCount(c.Request.Context(), middleware.Principal(c), target)
		if err != nil {
			response.Error(c, h.logger, err)
			return
		}

		response.JSON(c, http.StatusOK, gin.H{"target": target, "likes_count": count}, "Like count fetched")
	}
}

// GetLikedVideos godoc
// @Summary      Get liked videos
// @Description  Videos liked by the authenticated user, most recent like first
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Result[[]entity.LikedVideo]
// @Failure      401  {object}  response.Result[any]
// @Router       /likes/videos [get]
func (h *InteractionHandler) GetLikedVideos(c *gin.Context) {
	videos, err := h.interactionUseCase.GetLikedVideos(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, videos, "Liked videos fetched")
}
