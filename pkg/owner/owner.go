// Package owner attaches the public profile of a record's owner to listing
// results.
package owner

import (
	"context"
	"fmt"

	"vidtube/pkg/models"

	"gorm.io/gorm"
)

// Profile is the owner projection embedded in listings.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

// Loader resolves a batch of user ids in one round trip. Unknown ids are
// absent from the result.
type Loader interface {
	Load(ctx context.Context, ids []string) (map[string]*Profile, error)
}

type gormLoader struct {
	db *gorm.DB
}

func NewLoader(db *gorm.DB) Loader {
	return &gormLoader{db: db}
}

func (l *gormLoader) Load(ctx context.Context, ids []string) (map[string]*Profile, error) {
	profiles := make(map[string]*Profile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	var users []models.User
	err := l.db.WithContext(ctx).
		Select("id", "username", "fullname", "avatar_url").
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load owners: %w", err)
	}

	for i := range users {
		profiles[users[i].ID] = FromUser(&users[i])
	}
	return profiles, nil
}

func FromUser(u *models.User) *Profile {
	if u == nil {
		return nil
	}
	return &Profile{
		ID:       u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
		Avatar:   u.AvatarURL,
	}
}

// IDs collects the distinct non-empty owner ids of items in first-seen order.
func IDs[T any](items []T, ownerOf func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id := ownerOf(item)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Attach loads the owners of items and hands each item its profile. Items
// whose owner no longer exists get a nil profile.
func Attach[T any](ctx context.Context, loader Loader, items []T, ownerOf func(T) string, set func(T, *Profile)) error {
	if len(items) == 0 {
		return nil
	}
	profiles, err := loader.Load(ctx, IDs(items, ownerOf))
	if err != nil {
		return err
	}
	for _, item := range items {
		set(item, profiles[ownerOf(item)])
	}
	return nil
}
