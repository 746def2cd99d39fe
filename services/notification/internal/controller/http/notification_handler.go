package http

import (
	"context"
	"net/http"

	"vidtube/pkg/apperror"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/pagination"
	"vidtube/pkg/response"
	"vidtube/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	pageCfg             pagination.Config
	logger              *logger.Logger
	jwtService          *jwt.Service
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, pageCfg pagination.Config, logger *logger.Logger, jwtService *jwt.Service) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		pageCfg:             pageCfg,
		logger:              logger,
		jwtService:          jwtService,
	}
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  Newest first, the latest 100 are kept
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10, max 100)"
// @Success      200  {object}  response.Result[pagination.Page[entity.Notification]]
// @Failure      400  {object}  response.Result[any]
// @Failure      401  {object}  response.Result[any]
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	req, err := pagination.FromQuery(c.Request.URL.Query(), h.pageCfg)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	page, err := h.notificationUseCase.GetNotifications(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, page, "Notifications fetched")
}

// HandleWebSocket godoc
// @Summary      Live notifications
// @Description  Upgrades to a WebSocket. Browsers pass the JWT as the token query parameter.
// @Tags         notifications
// @Param        token query string false "JWT token"
// @Router       /notifications/ws [get]
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	userID := middleware.Principal(c)
	if userID == "" {
		claims, err := h.jwtService.ValidateToken(c.Query("token"))
		if err != nil {
			response.Error(c, h.logger, apperror.Unauthorized("invalid or expired token"))
			return
		}
		userID = claims.UserID
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	updates, err := h.notificationUseCase.Stream(ctx, userID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket connected for user %s", userID)

	go func() {
		defer cancel()
		for payload := range updates {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.Error("Failed to write WebSocket message: %v", err)
				return
			}
		}
	}()

	// Reading drives ping and close handling. It ends when the client leaves.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.logger.Info("WebSocket disconnected for user %s", userID)
}
