package usecase

import (
	"context"
	"net/mail"
	"path/filepath"
	"strings"

	"vidtube/pkg/apperror"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/s3"
	"vidtube/pkg/validate"
	"vidtube/services/auth/internal/entity"
	"vidtube/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var avatarExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

type AuthUseCase interface {
	Register(ctx context.Context, input entity.RegisterInput) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	UploadAvatar(ctx context.Context, userID string, avatar entity.Avatar) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	uploader   s3.Uploader
	logger     *logger.Logger
}

// NewAuthUseCase wires registration and login. uploader may be nil, in which
// case avatar uploads fail with an internal error.
func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	uploader s3.Uploader,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		uploader:   uploader,
		logger:     logger,
	}
}

func normalizeRegistration(input entity.RegisterInput) (entity.RegisterInput, error) {
	var err error
	if input.Fullname, err = validate.Text("fullname", input.Fullname); err != nil {
		return input, err
	}
	if input.Username, err = validate.Text("username", input.Username); err != nil {
		return input, err
	}
	input.Username = strings.ToLower(input.Username)

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return input, apperror.InvalidArgument("invalid email")
	}
	if len(input.Password) < minPasswordLength {
		return input, apperror.InvalidArgument("password must be at least %d characters", minPasswordLength)
	}
	return input, nil
}

func (uc *authUseCase) Register(ctx context.Context, input entity.RegisterInput) (*entity.User, string, error) {
	input, err := normalizeRegistration(input)
	if err != nil {
		return nil, "", err
	}

	if _, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", apperror.Conflict("user with this email already exists")
	} else if !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, "", err
	}

	if _, err := uc.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, "", apperror.Conflict("username already taken")
	} else if !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", apperror.Internal("failed to process registration", err)
	}

	user := &entity.User{
		Email:    input.Email,
		Username: input.Username,
		Fullname: input.Fullname,
		Password: string(hashedPassword),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", err
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperror.Internal("failed to generate token", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, "", apperror.Unauthorized("invalid credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperror.Unauthorized("invalid credentials")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperror.Internal("failed to generate token", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	userID, err := validate.ID("user id", userID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UploadAvatar(ctx context.Context, userID string, avatar entity.Avatar) (*entity.User, error) {
	ext := strings.ToLower(filepath.Ext(avatar.Filename))
	if !avatarExtensions[ext] {
		return nil, apperror.InvalidArgument("invalid image format, allowed: jpg, jpeg, png, gif, webp")
	}
	if uc.uploader == nil {
		return nil, apperror.Internal("avatar storage is not configured", nil)
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	contentType := avatar.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	avatarURL, err := uc.uploader.UploadFile(ctx, s3.ObjectKey("avatars", userID, avatar.Filename), avatar.Body, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, apperror.Internal("failed to upload avatar", err)
	}

	user, err := uc.userRepo.UpdateAvatar(ctx, userID, avatarURL)
	if err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, err
	}

	user.Password = ""
	return user, nil
}
