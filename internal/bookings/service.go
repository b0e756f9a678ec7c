package bookings

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	"github.com/marigoldevents/marigold-backend/pkg/enums"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
)

// CreateBookingInput carries the fields collected from the booking form.
type CreateBookingInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	ServiceType   string
	BookingDate   time.Time
	BookingTime   string
	Notes         *string
}

// Service exposes the public booking form plus the admin surface.
type Service interface {
	Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) (*models.Booking, error)
}

type service struct {
	repo Repository
}

// NewService builds a bookings service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerEmail = strings.TrimSpace(strings.ToLower(input.CustomerEmail))
	input.ServiceType = strings.TrimSpace(input.ServiceType)
	input.BookingTime = strings.TrimSpace(input.BookingTime)

	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.CustomerEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email required")
	}
	if _, err := mail.ParseAddress(input.CustomerEmail); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email is not valid")
	}
	if input.ServiceType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service type required")
	}
	if input.BookingDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking date required")
	}
	if input.BookingTime == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking time required")
	}

	booking := &models.Booking{
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		ServiceType:   input.ServiceType,
		BookingDate:   input.BookingDate,
		BookingTime:   input.BookingTime,
		Notes:         input.Notes,
		Status:        enums.BookingStatusPending,
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating booking")
	}
	return created, nil
}

func (s *service) List(ctx context.Context) ([]models.Booking, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing bookings")
	}
	return list, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) (*models.Booking, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown booking status")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating booking status")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading booking")
	}
	return booking, nil
}
