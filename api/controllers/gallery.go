package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/marigoldevents/marigold-backend/api/responses"
	gallerysvc "github.com/marigoldevents/marigold-backend/internal/gallery"
	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
)

func GalleryList(svc gallerysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gallery service unavailable"))
			return
		}

		images, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]imageResponse, 0, len(images))
		for _, image := range images {
			out = append(out, newImageResponse(image))
		}
		responses.WriteSuccess(w, map[string]any{"images": out})
	}
}

type imageResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	AltText   *string   `json:"alt_text,omitempty"`
	Tags      []string  `json:"tags"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func newImageResponse(image models.Image) imageResponse {
	tags := make([]string, 0, len(image.Tags))
	tags = append(tags, image.Tags...)
	return imageResponse{
		ID:        image.ID,
		Title:     image.Title,
		URL:       image.URL,
		AltText:   image.AltText,
		Tags:      tags,
		SortOrder: image.SortOrder,
		CreatedAt: image.CreatedAt,
	}
}
