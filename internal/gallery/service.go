package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
)

// CreateImageInput carries the fields accepted when adding a gallery image.
type CreateImageInput struct {
	Title     string
	URL       string
	AltText   *string
	Tags      []string
	SortOrder int
}

// Service exposes the public gallery plus the admin surface.
type Service interface {
	List(ctx context.Context) ([]models.Image, error)
	Create(ctx context.Context, input CreateImageInput) (*models.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a gallery service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("gallery repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Image, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing images")
	}
	return list, nil
}

func (s *service) Create(ctx context.Context, input CreateImageInput) (*models.Image, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.URL = strings.TrimSpace(input.URL)

	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image title required")
	}
	if input.URL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image url required")
	}

	tags := make(pq.StringArray, 0, len(input.Tags))
	for _, tag := range input.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	image := &models.Image{
		Title:     input.Title,
		URL:       input.URL,
		AltText:   input.AltText,
		Tags:      tags,
		SortOrder: input.SortOrder,
	}

	created, err := s.repo.Create(ctx, image)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating image")
	}
	return created, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "image id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting image")
	}
	return nil
}
