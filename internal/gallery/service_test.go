package gallery

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
)

type stubGalleryRepo struct {
	Repository

	images map[uuid.UUID]*models.Image
}

func newStubGalleryRepo() *stubGalleryRepo {
	return &stubGalleryRepo{images: make(map[uuid.UUID]*models.Image)}
}

func (s *stubGalleryRepo) Create(ctx context.Context, image *models.Image) (*models.Image, error) {
	image.ID = uuid.New()
	s.images[image.ID] = image
	return image, nil
}

func (s *stubGalleryRepo) List(ctx context.Context) ([]models.Image, error) {
	var list []models.Image
	for _, img := range s.images {
		list = append(list, *img)
	}
	return list, nil
}

func (s *stubGalleryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.images[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.images, id)
	return nil
}

func TestCreateImageNormalizesTags(t *testing.T) {
	t.Parallel()

	repo := newStubGalleryRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	image, err := svc.Create(context.Background(), CreateImageInput{
		Title: " Reception Hall ",
		URL:   " https://cdn.example.com/hall.jpg ",
		Tags:  []string{"wedding", " ", "venue "},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if image.Title != "Reception Hall" {
		t.Fatalf("expected trimmed title, got %q", image.Title)
	}
	if len(image.Tags) != 2 {
		t.Fatalf("expected blank tags dropped, got %v", image.Tags)
	}
}

func TestCreateImageValidation(t *testing.T) {
	t.Parallel()

	repo := newStubGalleryRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateImageInput{URL: "https://cdn.example.com/x.jpg"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing title, got %v", err)
	}

	_, err = svc.Create(ctx, CreateImageInput{Title: "Hall"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing url, got %v", err)
	}
}

func TestDeleteImage(t *testing.T) {
	t.Parallel()

	repo := newStubGalleryRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	image, err := svc.Create(ctx, CreateImageInput{Title: "Hall", URL: "https://cdn.example.com/hall.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, image.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err = svc.Delete(ctx, image.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
