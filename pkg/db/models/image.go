package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Image is a gallery entry managed from the admin dashboard.
type Image struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string         `gorm:"column:title;not null"`
	URL       string         `gorm:"column:url;not null"`
	AltText   *string        `gorm:"column:alt_text"`
	Tags      pq.StringArray `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	SortOrder int            `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}
