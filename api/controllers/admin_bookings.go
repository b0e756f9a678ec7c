package controllers

import (
	"net/http"

	"github.com/marigoldevents/marigold-backend/api/responses"
	"github.com/marigoldevents/marigold-backend/api/validators"
	bookingsvc "github.com/marigoldevents/marigold-backend/internal/bookings"
	"github.com/marigoldevents/marigold-backend/pkg/enums"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
)

func AdminBookingList(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		bookings, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]bookingResponse, 0, len(bookings))
		for i := range bookings {
			out = append(out, newBookingResponse(&bookings[i]))
		}
		responses.WriteSuccess(w, map[string]any{"bookings": out})
	}
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func AdminBookingUpdateStatus(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		bookingID, err := parseIDParam(r, "bookingId", "booking id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBookingStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseBookingStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid booking status"))
			return
		}

		booking, err := svc.UpdateStatus(r.Context(), bookingID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newBookingResponse(booking))
	}
}
