package http

import (
	"net/http"

	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/response"
	"vidtube/services/dashboard/internal/usecase"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUseCase usecase.DashboardUseCase
	logger           *logger.Logger
}

func NewDashboardHandler(dashboardUseCase usecase.DashboardUseCase, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
		logger:           logger,
	}
}

// GetMyStats godoc
// @Summary      Stats of the caller's channel
// @Description  Total videos, views, subscribers and video likes
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Result[entity.ChannelStats]
// @Failure      401  {object}  response.Result[any]
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) GetMyStats(c *gin.Context) {
	h.stats(c, middleware.Principal(c))
}

// GetChannelStats godoc
// @Summary      Stats of a channel
// @Tags         dashboard
// @Produce      json
// @Param        channel_id path string true "Channel ID"
// @Success      200  {object}  response.Result[entity.ChannelStats]
// @Failure      400  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /channels/{channel_id}/stats [get]
func (h *DashboardHandler) GetChannelStats(c *gin.Context) {
	h.stats(c, c.Param("channel_id"))
}

func (h *DashboardHandler) stats(c *gin.Context, channelID string) {
	stats, err := h.dashboardUseCase.ChannelStats(c.Request.Context(), channelID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, stats, "Channel stats fetched")
}

// GetMyVideos godoc
// @Summary      Videos of the caller's channel
// @Description  Includes unpublished videos, newest first
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Result[[]entity.ChannelVideo]
// @Failure      401  {object}  response.Result[any]
// @Router       /dashboard/videos [get]
func (h *DashboardHandler) GetMyVideos(c *gin.Context) {
	principal := middleware.Principal(c)
	h.videos(c, principal, principal)
}

// GetChannelVideos godoc
// @Summary      Videos of a channel
// @Description  Published videos only unless the caller owns the channel
// @Tags         dashboard
// @Produce      json
// @Param        channel_id path string true "Channel ID"
// @Success      200  {object}  response.Result[[]entity.ChannelVideo]
// @Failure      400  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /channels/{channel_id}/videos [get]
func (h *DashboardHandler) GetChannelVideos(c *gin.Context) {
	h.videos(c, middleware.Principal(c), c.Param("channel_id"))
}

func (h *DashboardHandler) videos(c *gin.Context, userID, channelID string) {
	videos, err := h.dashboardUseCase.ListChannelVideos(c.Request.Context(), userID, channelID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, videos, "Channel videos fetched")
}
