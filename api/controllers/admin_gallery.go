package controllers

import (
	"net/http"

	"github.com/marigoldevents/marigold-backend/api/responses"
	"github.com/marigoldevents/marigold-backend/api/validators"
	gallerysvc "github.com/marigoldevents/marigold-backend/internal/gallery"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
)

type createImageRequest struct {
	Title     string   `json:"title" validate:"required"`
	URL       string   `json:"url" validate:"required,url"`
	AltText   *string  `json:"alt_text"`
	Tags      []string `json:"tags"`
	SortOrder int      `json:"sort_order"`
}

func AdminGalleryCreate(svc gallerysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gallery service unavailable"))
			return
		}

		var payload createImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, err := svc.Create(r.Context(), gallerysvc.CreateImageInput{
			Title:     payload.Title,
			URL:       payload.URL,
			AltText:   payload.AltText,
			Tags:      payload.Tags,
			SortOrder: payload.SortOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newImageResponse(*image))
	}
}

func AdminGalleryDelete(svc gallerysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gallery service unavailable"))
			return
		}

		imageID, err := parseIDParam(r, "imageId", "image id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), imageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
