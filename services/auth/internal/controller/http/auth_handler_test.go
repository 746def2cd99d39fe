package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/services/auth/internal/entity"
	"vidtube/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input entity.RegisterInput) (*entity.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) UploadAvatar(ctx context.Context, userID string, avatar entity.Avatar) (*entity.User, error) {
	args := m.Called(ctx, userID, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	input := entity.RegisterInput{Email: "ada@example.com", Username: "adal", Fullname: "Ada Lovelace", Password: "engine42"}
	user := &entity.User{ID: "user-1", Email: input.Email, Username: input.Username, Fullname: input.Fullname}
	mockUseCase.On("Register", mock.Anything, input).Return(user, "token-1", nil)

	w := postJSON(router, "/register", RegisterRequest{
		Email: input.Email, Username: input.Username, Fullname: input.Fullname, Password: input.Password,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		Data    AuthResponse `json:"data"`
		Success bool         `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "token-1", body.Data.Token)
	assert.Equal(t, "user-1", body.Data.User.ID)
	assert.NotContains(t, w.Body.String(), "password")
	mockUseCase.AssertExpectations(t)
}

func TestRegister_ValidationError(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	w := postJSON(router, "/register", map[string]string{"email": "invalid-email", "username": "ab"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "Register")
}

func TestRegister_Conflict(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	mockUseCase.On("Register", mock.Anything, mock.Anything).Return(nil, "", apperror.Conflict("user with this email already exists"))

	w := postJSON(router, "/register", RegisterRequest{
		Email: "ada@example.com", Username: "adal", Fullname: "Ada", Password: "engine42",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/login", handler.Login)

	mockUseCase.On("Login", mock.Anything, "ada@example.com", "nope").Return(nil, "", apperror.Unauthorized("invalid credentials"))

	w := postJSON(router, "/login", LoginRequest{Email: "ada@example.com", Password: "nope"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestMe_UsesPrincipal(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/me", withUser("user-1"), handler.Me)

	mockUseCase.On("GetUser", mock.Anything, "user-1").Return(&entity.User{ID: "user-1", Username: "adal"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"adal"`)
}

func TestGetUser_NotFound(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/users/:id", handler.GetUser)

	mockUseCase.On("GetUser", mock.Anything, "ghost").Return(nil, apperror.NotFound("user not found"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/ghost", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadAvatar_Multipart(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/avatar", withUser("user-1"), handler.UploadAvatar)

	var received string
	mockUseCase.On("UploadAvatar", mock.Anything, "user-1", mock.MatchedBy(func(a entity.Avatar) bool {
		if received == "" {
			raw, err := io.ReadAll(a.Body)
			if err != nil {
				return false
			}
			received = string(raw)
		}
		return a.Filename == "me.png"
	})).Return(&entity.User{ID: "user-1", AvatarURL: "https://cdn.test/avatars/user-1/x.png"}, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/avatar", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", received)
	assert.Contains(t, w.Body.String(), "avatars/user-1")
}

func TestUploadAvatar_MissingFile(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/avatar", withUser("user-1"), handler.UploadAvatar)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/avatar", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "UploadAvatar")
}
