package persistent

import (
	"context"

	"vidtube/pkg/database"
	"vidtube/pkg/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Username(ctx context.Context, userID string) (string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Username(ctx context.Context, userID string) (string, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("username").Where("id = ?", userID).First(&user).Error
	if err != nil {
		return "", database.MapError(err, "user not found")
	}
	return user.Username, nil
}
