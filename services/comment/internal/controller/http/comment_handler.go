package http

import (
	"net/http"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/pagination"
	"vidtube/pkg/response"
	"vidtube/services/comment/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	pageCfg        pagination.Config
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, pageCfg pagination.Config, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		pageCfg:        pageCfg,
		logger:         logger,
	}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListComments godoc
// @Summary      List comments of a video
// @Description  Newest first, each comment with its author
// @Tags         comments
// @Produce      json
// @Param        video_id path  string true  "Video ID"
// @Param        page     query int    false "Page number (default 1)"
// @Param        limit    query int    false "Page size (default 10, max 100)"
// @Success      200  {object}  response.Result[pagination.Page[entity.Comment]]
// @Failure      400  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /comments/videos/{video_id} [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	req, err := pagination.FromQuery(c.Request.URL.Query(), h.pageCfg)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	page, err := h.commentUseCase.ListComments(c.Request.Context(), c.Param("video_id"), req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, page, "Comments fetched")
}

// AddComment godoc
// @Summary      Comment on a video
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        video_id path string         true "Video ID"
// @Param        request  body CommentRequest true "Comment"
// @Success      201  {object}  response.Result[entity.Comment]
// @Failure      400  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /comments/videos/{video_id} [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("content is required"))
		return
	}

	comment, err := h.commentUseCase.AddComment(c.Request.Context(), middleware.Principal(c), c.Param("video_id"), req.Content)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusCreated, comment, "Comment added")
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string         true "Comment ID"
// @Param        request body CommentRequest true "New content"
// @Success      200  {object}  response.Result[entity.Comment]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /comments/{id} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("content is required"))
		return
	}

	comment, err := h.commentUseCase.UpdateComment(c.Request.Context(), middleware.Principal(c), c.Param("id"), req.Content)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, comment, "Comment updated")
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  response.Result[any]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("id")
	if err := h.commentUseCase.DeleteComment(c.Request.Context(), middleware.Principal(c), commentID); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"id": commentID}, "Comment deleted")
}
