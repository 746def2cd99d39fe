package http

import (
	"net/http"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/response"
	"vidtube/services/auth/internal/entity"
	"vidtube/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Fullname string `json:"fullname" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Register with email, username, full name and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  response.Result[AuthResponse]
// @Failure      400  {object}  response.Result[any]
// @Failure      409  {object}  response.Result[any]
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("invalid registration data: %v", err))
		return
	}

	user, token, err := h.authUseCase.Register(c.Request.Context(), entity.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Fullname: req.Fullname,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusCreated, AuthResponse{Token: token, User: user}, "User registered")
}

// Login godoc
// @Summary      Login user
// @Description  Authenticate user and return JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  response.Result[AuthResponse]
// @Failure      400  {object}  response.Result[any]
// @Failure      401  {object}  response.Result[any]
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("email and password are required"))
		return
	}

	user, token, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, AuthResponse{Token: token, User: user}, "Logged in")
}

// Me godoc
// @Summary      Get current user info
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Result[entity.User]
// @Failure      401  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUseCase.GetUser(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, user, "User fetched")
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         auth
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  response.Result[entity.User]
// @Failure      400  {object}  response.Result[any]
// @Failure      404  {object}  response.Result[any]
// @Router       /users/{id} [get]
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.authUseCase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, user, "User fetched")
}

// UploadAvatar godoc
// @Summary      Upload user avatar
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image file"
// @Success      200  {object}  response.Result[entity.User]
// @Failure      400  {object}  response.Result[any]
// @Failure      401  {object}  response.Result[any]
// @Router       /avatar [post]
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, h.logger, apperror.InvalidArgument("avatar file is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, h.logger, apperror.Internal("failed to process file", err))
		return
	}
	defer src.Close()

	user, err := h.authUseCase.UploadAvatar(c.Request.Context(), middleware.Principal(c), entity.Avatar{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Body:        src,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.JSON(c, http.StatusOK, user, "Avatar updated")
}
