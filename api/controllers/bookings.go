package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/marigoldevents/marigold-backend/api/responses"
	"github.com/marigoldevents/marigold-backend/api/validators"
	bookingsvc "github.com/marigoldevents/marigold-backend/internal/bookings"
	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
)

const bookingDateLayout = "2006-01-02"

type createBookingRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone *string `json:"customer_phone"`
	ServiceType   string  `json:"service_type" validate:"required"`
	BookingDate   string  `json:"booking_date" validate:"required"`
	BookingTime   string  `json:"booking_time" validate:"required"`
	Notes         *string `json:"notes"`
}

// BookingCreate records a service reservation from the public booking form.
func BookingCreate(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		var payload createBookingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingDate, err := time.Parse(bookingDateLayout, payload.BookingDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "booking_date must be YYYY-MM-DD"))
			return
		}

		booking, err := svc.Create(r.Context(), bookingsvc.CreateBookingInput{
			CustomerName:  payload.CustomerName,
			CustomerEmail: payload.CustomerEmail,
			CustomerPhone: payload.CustomerPhone,
			ServiceType:   payload.ServiceType,
			BookingDate:   bookingDate,
			BookingTime:   payload.BookingTime,
			Notes:         payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newBookingResponse(booking))
	}
}

type bookingResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	ServiceType   string    `json:"service_type"`
	BookingDate   string    `json:"booking_date"`
	BookingTime   string    `json:"booking_time"`
	Notes         *string   `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func newBookingResponse(booking *models.Booking) bookingResponse {
	return bookingResponse{
		ID:            booking.ID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		ServiceType:   booking.ServiceType,
		BookingDate:   booking.BookingDate.Format(bookingDateLayout),
		BookingTime:   booking.BookingTime,
		Notes:         booking.Notes,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}
}
