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

type SubscriptionHandler struct {
	subscriptionUseCase usecase.SubscriptionUseCase
	logger              *logger.Logger
}

func NewSubscriptionHandler(subscriptionUseCase usecase.SubscriptionUseCase, logger *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
		logger:              logger,
	}
}

// ToggleSubscription godoc
// @Summary      Toggle a channel subscription
// @Description  Subscribes the caller to the channel, or unsubscribes when already subscribed
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channel_id path string true "Channel (user) ID"
// @Success      201  {object}  response.Result[entity.ToggleResult[entity.Subscription]]
// @Success      200  {object}  response.Result[entity.ToggleResult[entity.Subscription]]
// @Failure      400  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /subscriptions/channels/{channel_id} [post]
func (h *SubscriptionHandler) ToggleSubscription(c *gin.Context) {
	result, err := h.subscriptionUseCase.ToggleSubscription(c.Request.Context(), middleware.Principal(c), c.Param("channel_id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	message := "Unsubscribed"
	if result.State == entity.ToggleAdded {
		message = "Subscribed"
	}
	response.JSON(c, toggleStatus(result.State), result, message)
}

// SubscriptionStatus godoc
// @Summary      Check subscription status
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channel_id path string true "Channel (user) ID"
// @Success      200  {object}  response.Result[map[string]interface{}]
// @Router       /subscriptions/channels/{channel_id}/status [get]
func (h *SubscriptionHandler) SubscriptionStatus(c *gin.Context) {
	channelID := c.Param("channel_id")

	subscribed, err := h.subscriptionUseCase.GetSubscriptionStatus(c.Request.Context(), middleware.Principal(c), channelID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"channel_id": channelID, "subscribed": subscribed}, "Subscription status fetched")
}

// GetChannelSubscribers godoc
// @Summary      List channel subscribers
// @Tags         subscriptions
// @Produce      json
// @Param        channel_id path string true "Channel (user) ID"
// @Success      200  {object}  response.Result[[]entity.Member]
// @Failure      404  {object}  response.Result[any]
// @Router       /subscriptions/channels/{channel_id}/subscribers [get]
func (h *SubscriptionHandler) GetChannelSubscribers(c *gin.Context) {
	subscribers, err := h.subscriptionUseCase.GetChannelSubscribers(c.Request.Context(), c.Param("channel_id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, subscribers, "Subscribers fetched")
}

// GetSubscribedChannels godoc
// @Summary      List channels a user subscribes to
// @Tags         subscriptions
// @Produce      json
// @Param        subscriber_id path string true "Subscriber (user) ID"
// @Success      200  {object}  response.Result[[]entity.Member]
// @Failure      404  {object}  response.Result[any]
// @Router       /subscriptions/users/{subscriber_id}/channels [get]
func (h *SubscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	channels, err := h.subscriptionUseCase.GetSubscribedChannels(c.Request.Context(), c.Param("subscriber_id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, channels, "Subscribed channels fetched")
}
