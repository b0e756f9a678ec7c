package gallery

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marigoldevents/marigold-backend/internal/repo"
	"github.com/marigoldevents/marigold-backend/pkg/db/models"
)

// Repository defines persistence operations for gallery images.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, image *models.Image) (*models.Image, error)
	List(ctx context.Context) ([]models.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a gallery repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) Create(ctx context.Context, image *models.Image) (*models.Image, error) {
	if err := r.DB(ctx).Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

func (r *repository) List(ctx context.Context) ([]models.Image, error) {
	var list []models.Image
	err := r.DB(ctx).
		Order("sort_order ASC, created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB(ctx).
		Where("id = ?", id).
		Delete(&models.Image{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
