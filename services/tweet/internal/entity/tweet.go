package entity

import (
	"time"

	"vidtube/pkg/owner"
)

type Tweet struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	OwnerID   string         `json:"-"`
	Owner     *owner.Profile `json:"owner"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
