package persistent

import (
	"context"

	"vidtube/pkg/apperror"
	"vidtube/pkg/database"
	"vidtube/pkg/models"
	"vidtube/services/auth/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) (*entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperror.Conflict("email or username already taken")
		}
		return database.MapError(err, "")
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, database.MapError(err, "user not found")
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, database.MapError(err, "user not found")
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, database.MapError(err, "user not found")
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) (*entity.User, error) {
	var updated []models.User
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("avatar_url", avatarURL)
	if result.Error != nil {
		return nil, database.MapError(result.Error, "")
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, apperror.NotFound("user not found")
	}
	return ToUserEntity(&updated[0]), nil
}
