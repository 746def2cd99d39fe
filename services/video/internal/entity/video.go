package entity

import (
	"io"
	"time"

	"vidtube/pkg/apperror"
	"vidtube/pkg/owner"
)

type Video struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	VideoURL     string         `json:"video_url"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Duration     float64        `json:"duration"`
	Views        int64          `json:"views"`
	IsPublished  bool           `json:"is_published"`
	OwnerID      string         `json:"-"`
	Owner        *owner.Profile `json:"owner"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Upload is a media file received from the client, to be stored before the
// video row is written.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateVideoInput carries either uploaded files or already hosted URLs for
// the video and its thumbnail. Uploads win over URLs.
type CreateVideoInput struct {
	Title         string
	Description   string
	Duration      float64
	VideoURL      string
	ThumbnailURL  string
	VideoFile     *Upload
	ThumbnailFile *Upload
}

// UpdateVideoInput changes only the non-nil fields.
type UpdateVideoInput struct {
	Title         *string
	Description   *string
	ThumbnailURL  *string
	ThumbnailFile *Upload
}

// ListFilter narrows ListVideos. Only published videos are ever listed.
type ListFilter struct {
	Query   string
	OwnerID string
}

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByViews     SortField = "views"
	SortByDuration  SortField = "duration"
	SortByTitle     SortField = "title"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is newest first.
var DefaultSort = Sort{Field: SortByCreatedAt, Direction: SortDesc}

// ParseSort validates the sort parameters. Empty values take the defaults.
func ParseSort(field, direction string) (Sort, error) {
	s := DefaultSort
	switch f := SortField(field); f {
	case "":
	case SortByCreatedAt, SortByViews, SortByDuration, SortByTitle:
		s.Field = f
	default:
		return Sort{}, apperror.InvalidArgument("unsupported sort field %q", field)
	}
	switch d := SortDirection(direction); d {
	case "":
	case SortAsc, SortDesc:
		s.Direction = d
	default:
		return Sort{}, apperror.InvalidArgument("sort direction must be asc or desc")
	}
	return s, nil
}
