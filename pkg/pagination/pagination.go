// Package pagination provides page requests and page results for listing
// endpoints.
package pagination

import (
	"math"
	"net/url"
	"strconv"

	"vidtube/pkg/apperror"
)

// Config holds the default and maximum page size.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Request is a 1-based page request.
type Request struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize clamps the limit to the configured maximum and fills in defaults
// for zero values. Negative values are left for Validate to reject.
func (r *Request) Normalize(cfg Config) {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
}

func (r Request) Validate() error {
	if r.Page < 1 {
		return apperror.InvalidArgument("page must be a positive integer")
	}
	if r.Limit < 1 {
		return apperror.InvalidArgument("limit must be a positive integer")
	}
	return nil
}

// Offset is the number of rows to skip before the requested page. A page so
// far out that the product would overflow saturates at math.MaxInt, which is
// past the end of any result set.
func (r Request) Offset() int {
	if r.Page <= 1 || r.Limit <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// FromQuery parses page and limit from query values. Missing values fall back
// to the defaults; present but non-numeric or non-positive values are an
// InvalidArgument failure.
func FromQuery(values url.Values, cfg Config) (Request, error) {
	var req Request

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Request{}, apperror.InvalidArgument("page must be a positive integer")
		}
		req.Page = page
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return Request{}, apperror.InvalidArgument("limit must be a positive integer")
		}
		req.Limit = limit
	}

	req.Normalize(cfg)
	return req, req.Validate()
}

// Page is one page of items together with the totals of the whole filtered set.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int64 `json:"total_pages"`
}

// NewPage builds a page. An out-of-range page simply carries no items.
func NewPage[T any](items []T, req Request, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalCount: total,
		TotalPages: TotalPages(total, req.Limit),
	}
}

// TotalPages is ceil(total/limit); zero rows means zero pages.
func TotalPages(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}
