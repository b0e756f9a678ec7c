package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory groups storefront products (Flowers, Glassware, Decor, ...).
type ProductCategory struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
