package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marigoldevents/marigold-backend/internal/orders"
	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
)

type stubCheckoutRepo struct {
	orders.Repository

	createdOrders []*models.Order
	createdItems  [][]models.OrderItem
	createErr     error
	itemsErr      error
}

func (s *stubCheckoutRepo) WithTx(tx *gorm.DB) orders.Repository {
	return s
}

func (s *stubCheckoutRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = uuid.New()
	s.createdOrders = append(s.createdOrders, order)
	return order, nil
}

func (s *stubCheckoutRepo) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if s.itemsErr != nil {
		return s.itemsErr
	}
	s.createdItems = append(s.createdItems, items)
	return nil
}

// stubTxRunner mimics the commit/rollback contract: writes recorded before a
// failing step are discarded.
type stubTxRunner struct {
	repo       *stubCheckoutRepo
	rolledBack bool
}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	ordersBefore := len(s.repo.createdOrders)
	itemsBefore := len(s.repo.createdItems)
	if err := fn(nil); err != nil {
		s.repo.createdOrders = s.repo.createdOrders[:ordersBefore]
		s.repo.createdItems = s.repo.createdItems[:itemsBefore]
		s.rolledBack = true
		return err
	}
	return nil
}

type stubConfirmNotifier struct {
	calls []*models.Order
	err   error
}

func (s *stubConfirmNotifier) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	s.calls = append(s.calls, order)
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "checkout-test", Output: io.Discard})
}

func validInput() SubmissionInput {
	return SubmissionInput{
		CustomerName:  "Dana Field",
		CustomerEmail: "Dana@Example.com",
		Lines: []SubmissionLine{
			{Name: "Centerpiece", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{Name: "Ribbon", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	}
}

func newTestService(t *testing.T, repo *stubCheckoutRepo, notifier *stubConfirmNotifier) (Service, *stubTxRunner) {
	t.Helper()
	tx := &stubTxRunner{repo: repo}
	svc, err := NewService(repo, tx, notifier, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, tx
}

func TestSubmitComputesTotalServerSide(t *testing.T) {
	t.Parallel()

	repo := &stubCheckoutRepo{}
	notifier := &stubConfirmNotifier{}
	svc, _ := newTestService(t, repo, notifier)

	receipt, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := decimal.RequireFromString("25.00")
	if !receipt.Order.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, receipt.Order.TotalAmount)
	}
	if receipt.Order.CustomerEmail != "dana@example.com" {
		t.Fatalf("expected normalized email, got %q", receipt.Order.CustomerEmail)
	}
	if !receipt.Notified {
		t.Fatalf("expected notified receipt")
	}
	if len(repo.createdItems) != 1 || len(repo.createdItems[0]) != 2 {
		t.Fatalf("expected two persisted items")
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("expected one confirmation email, got %d", len(notifier.calls))
	}
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	repo := &stubCheckoutRepo{}
	svc, _ := newTestService(t, repo, &stubConfirmNotifier{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*SubmissionInput)
	}{
		{"missing name", func(in *SubmissionInput) { in.CustomerName = "  " }},
		{"missing email", func(in *SubmissionInput) { in.CustomerEmail = "" }},
		{"malformed email", func(in *SubmissionInput) { in.CustomerEmail = "not-an-email" }},
		{"no lines", func(in *SubmissionInput) { in.Lines = nil }},
		{"zero quantity", func(in *SubmissionInput) { in.Lines[0].Quantity = 0 }},
		{"negative price", func(in *SubmissionInput) { in.Lines[0].UnitPrice = decimal.RequireFromString("-1") }},
		{"blank item name", func(in *SubmissionInput) { in.Lines[0].Name = " " }},
	}

	for _, tc := range cases {
		input := validInput()
		tc.mutate(&input)
		_, err := svc.Submit(ctx, input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}

	if len(repo.createdOrders) != 0 {
		t.Fatalf("expected no writes on validation failure")
	}
}

func TestSubmitItemFailureRollsBackOrder(t *testing.T) {
	t.Parallel()

	repo := &stubCheckoutRepo{itemsErr: errors.New("constraint violated")}
	notifier := &stubConfirmNotifier{}
	svc, tx := newTestService(t, repo, notifier)

	_, err := svc.Submit(context.Background(), validInput())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if !tx.rolledBack {
		t.Fatalf("expected transaction rollback")
	}
	if len(repo.createdOrders) != 0 {
		t.Fatalf("expected no orphan order after rollback")
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("expected no confirmation email on failure")
	}
}

func TestSubmitEmailFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	repo := &stubCheckoutRepo{}
	notifier := &stubConfirmNotifier{err: errors.New("mail function down")}
	svc, _ := newTestService(t, repo, notifier)

	receipt, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit should not fail on email error: %v", err)
	}
	if receipt.Notified {
		t.Fatalf("expected notified=false when email fails")
	}
	if len(repo.createdOrders) != 1 {
		t.Fatalf("expected order persisted")
	}
}
