package persistent

import (
	"context"
	"strings"

	"vidtube/pkg/apperror"
	"vidtube/pkg/database"
	"vidtube/pkg/models"
	"vidtube/services/video/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	Count(ctx context.Context, filter entity.ListFilter) (int64, error)
	List(ctx context.Context, filter entity.ListFilter, sort entity.Sort, offset, limit int) ([]*entity.Video, error)
	// Update applies fields to a video owned by ownerID and returns the new row.
	Update(ctx context.Context, id, ownerID string, fields map[string]interface{}) (*entity.Video, error)
	// Delete removes the video and drops it from every playlist.
	Delete(ctx context.Context, id, ownerID string) error
	IncrementViews(ctx context.Context, id string) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

var sortColumns = map[entity.SortField]string{
	entity.SortByCreatedAt: "created_at",
	entity.SortByViews:     "views",
	entity.SortByDuration:  "duration",
	entity.SortByTitle:     "title",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches q literally anywhere in a column.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

func listScope(filter entity.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_published = ?", true)
		if filter.OwnerID != "" {
			db = db.Where("owner_id = ?", filter.OwnerID)
		}
		if filter.Query != "" {
			pattern := containsPattern(filter.Query)
			db = db.Where(`(title ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\')`, pattern, pattern)
		}
		return db
	}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	m := ToVideoModel(video)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return database.MapError(err, "")
	}
	*video = *ToVideoEntity(m)
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	var m models.Video
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, database.MapError(err, "video not found")
	}
	return ToVideoEntity(&m), nil
}

func (r *videoRepository) Count(ctx context.Context, filter entity.ListFilter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Scopes(listScope(filter)).Count(&count).Error; err != nil {
		return 0, database.MapError(err, "")
	}
	return count, nil
}

func (r *videoRepository) List(ctx context.Context, filter entity.ListFilter, sort entity.Sort, offset, limit int) ([]*entity.Video, error) {
	column, ok := sortColumns[sort.Field]
	if !ok {
		return nil, apperror.InvalidArgument("unsupported sort field %q", sort.Field)
	}
	desc := sort.Direction != entity.SortAsc

	var rows []models.Video
	err := r.db.WithContext(ctx).
		Scopes(listScope(filter)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc}).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, database.MapError(err, "")
	}

	videos := make([]*entity.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, ToVideoEntity(&rows[i]))
	}
	return videos, nil
}

func (r *videoRepository) Update(ctx context.Context, id, ownerID string, fields map[string]interface{}) (*entity.Video, error) {
	var updated []models.Video
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if result.Error != nil {
		return nil, database.MapError(result.Error, "")
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, apperror.NotFound("video not found")
	}
	return ToVideoEntity(&updated[0]), nil
}

func (r *videoRepository) Delete(ctx context.Context, id, ownerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Video{})
		if result.Error != nil {
			return database.MapError(result.Error, "")
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("video not found")
		}

		err := tx.Model(&models.Playlist{}).
			Where("? = ANY(videos)", id).
			Update("videos", gorm.Expr("array_remove(videos, ?)", id)).Error
		if err != nil {
			return database.MapError(err, "")
		}
		return nil
	})
}

func (r *videoRepository) IncrementViews(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return database.MapError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("video not found")
	}
	return nil
}
