package http

import (
	"net/http"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/response"
	"vidtube/services/tweet/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetUseCase usecase.TweetUseCase
	logger       *logger.Logger
}

func NewTweetHandler(tweetUseCase usecase.TweetUseCase, logger *logger.Logger) *TweetHandler {
	return &TweetHandler{
		tweetUseCase: tweetUseCase,
		logger:       logger,
	}
}

type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateTweet godoc
// @Summary      Post a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TweetRequest true "Tweet"
// @Success      201  {object}  response.Result[entity.Tweet]
// @Failure      400  {object}  response.Result[any]
// @Router       /tweets [post]
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("content is required"))
		return
	}

	tweet, err := h.tweetUseCase.CreateTweet(c.Request.Context(), middleware.Principal(c), req.Content)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusCreated, tweet, "Tweet created")
}

// ListUserTweets godoc
// @Summary      List a user's tweets
// @Description  Newest first
// @Tags         tweets
// @Produce      json
// @Param        user_id path string true "User ID"
// @Success      200  {object}  response.Result[[]entity.Tweet]
// @Failure      404  {object}  response.Result[any]
// @Router       /tweets/users/{user_id} [get]
func (h *TweetHandler) ListUserTweets(c *gin.Context) {
	tweets, err := h.tweetUseCase.ListUserTweets(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, tweets, "Tweets fetched")
}

// UpdateTweet godoc
// @Summary      Edit a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string       true "Tweet ID"
// @Param        request body TweetRequest true "New content"
// @Success      200  {object}  response.Result[entity.Tweet]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /tweets/{id} [patch]
func (h *TweetHandler) UpdateTweet(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("content is required"))
		return
	}

	tweet, err := h.tweetUseCase.UpdateTweet(c.Request.Context(), middleware.Principal(c), c.Param("id"), req.Content)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, tweet, "Tweet updated")
}

// DeleteTweet godoc
// @Summary      Delete a tweet
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Tweet ID"
// @Success      200  {object}  response.Result[any]
// @Failure      403  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /tweets/{id} [delete]
func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	tweetID := c.Param("id")
	if err := h.tweetUseCase.DeleteTweet(c.Request.Context(), middleware.Principal(c), tweetID); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"id": tweetID}, "Tweet deleted")
}
