package persistent

import (
	"context"
	"fmt"

	"vidtube/pkg/apperror"
	"vidtube/pkg/database"
	"vidtube/services/interaction/internal/entity"

	"gorm.io/gorm"
)

// TargetRepository answers existence and ownership questions about the
// records that can be liked or subscribed to.
type TargetRepository interface {
	// OwnerOf returns who owns the target and whether it is public.
	// Comments and tweets are always public.
	OwnerOf(ctx context.Context, target entity.LikeTarget) (ownerID string, published bool, err error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

type targetRepository struct {
	db *gorm.DB
}

func NewTargetRepository(db *gorm.DB) TargetRepository {
	return &targetRepository{db: db}
}

var targetTables = map[entity.TargetKind]string{
	entity.TargetVideo:   "videos",
	entity.TargetComment: "comments",
	entity.TargetTweet:   "tweets",
}

type targetRow struct {
	OwnerID     string
	IsPublished bool
}

func (r *targetRepository) OwnerOf(ctx context.Context, target entity.LikeTarget) (string, bool, error) {
	table, ok := targetTables[target.Kind]
	if !ok {
		return "", false, apperror.InvalidArgument("unsupported like target %q", target.Kind)
	}

	columns := "owner_id, TRUE AS is_published"
	if target.Kind == entity.TargetVideo {
		columns = "owner_id, is_published"
	}

	var row targetRow
	err := r.db.WithContext(ctx).Table(table).Select(columns).Where("id = ?", target.ID).Take(&row).Error
	if err != nil {
		return "", false, database.MapError(err, fmt.Sprintf("%s not found", target.Kind))
	}
	return row.OwnerID, row.IsPublished, nil
}

func (r *targetRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("users").Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, database.MapError(err, "")
	}
	return count > 0, nil
}
