package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	"github.com/marigoldevents/marigold-backend/pkg/enums"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
)

type stubBookingsRepo struct {
	Repository

	bookings map[uuid.UUID]*models.Booking
}

func newStubBookingsRepo() *stubBookingsRepo {
	return &stubBookingsRepo{bookings: make(map[uuid.UUID]*models.Booking)}
}

func (s *stubBookingsRepo) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.ID = uuid.New()
	s.bookings[booking.ID] = booking
	return booking, nil
}

func (s *stubBookingsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (s *stubBookingsRepo) List(ctx context.Context) ([]models.Booking, error) {
	var list []models.Booking
	for _, b := range s.bookings {
		list = append(list, *b)
	}
	return list, nil
}

func (s *stubBookingsRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error {
	booking, ok := s.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	booking.Status = status
	return nil
}

func validCreateInput() CreateBookingInput {
	return CreateBookingInput{
		CustomerName:  "Dana Field",
		CustomerEmail: "Dana@Example.com",
		ServiceType:   "airport-transfer",
		BookingDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		BookingTime:   "14:30",
	}
}

func TestCreateBookingDefaultsPending(t *testing.T) {
	t.Parallel()

	repo := newStubBookingsRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	booking, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.Status != enums.BookingStatusPending {
		t.Fatalf("expected pending status, got %s", booking.Status)
	}
	if booking.CustomerEmail != "dana@example.com" {
		t.Fatalf("expected normalized email, got %q", booking.CustomerEmail)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	t.Parallel()

	repo := newStubBookingsRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
	}{
		{"missing name", func(in *CreateBookingInput) { in.CustomerName = "" }},
		{"bad email", func(in *CreateBookingInput) { in.CustomerEmail = "nope" }},
		{"missing service", func(in *CreateBookingInput) { in.ServiceType = " " }},
		{"missing date", func(in *CreateBookingInput) { in.BookingDate = time.Time{} }},
		{"missing time", func(in *CreateBookingInput) { in.BookingTime = "" }},
	}

	for _, tc := range cases {
		input := validCreateInput()
		tc.mutate(&input)
		_, err := svc.Create(ctx, input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
	if len(repo.bookings) != 0 {
		t.Fatalf("expected no bookings persisted")
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	t.Parallel()

	repo := newStubBookingsRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, booking.ID, enums.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.BookingStatusConfirmed {
		t.Fatalf("unexpected status %s", updated.Status)
	}

	_, err = svc.UpdateStatus(ctx, booking.ID, enums.BookingStatus("bogus"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}

	_, err = svc.UpdateStatus(ctx, uuid.New(), enums.BookingStatusCancelled)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
