package checkout

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marigoldevents/marigold-backend/internal/orders"
	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	"github.com/marigoldevents/marigold-backend/pkg/enums"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type confirmationNotifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

// SubmissionLine is a priced snapshot of one product at submission time.
type SubmissionLine struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// SubmissionInput carries the contact fields plus the line snapshots.
type SubmissionInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string
	Lines         []SubmissionLine
}

// Receipt reports the persisted order and whether the confirmation email
// went out.
type Receipt struct {
	Order    *models.Order `json:"order"`
	Notified bool          `json:"notified"`
}

// Service runs the order submission pipeline.
type Service interface {
	Submit(ctx context.Context, input SubmissionInput) (*Receipt, error)
}

type service struct {
	repo     orders.Repository
	tx       txRunner
	notifier confirmationNotifier
	logg     *logger.Logger
}

// NewService builds the checkout service with the required dependencies.
func NewService(repo orders.Repository, tx txRunner, notifier confirmationNotifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("confirmation notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		notifier: notifier,
		logg:     logg,
	}, nil
}

func (s *service) Submit(ctx context.Context, input SubmissionInput) (*Receipt, error) {
	if err := validateSubmission(&input); err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	order := &models.Order{
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		TotalAmount:   total,
		Status:        enums.OrderStatusPending,
		Notes:         input.Notes,
	}

	// Order and items commit or roll back together; a failed item write
	// must not leave an orphan order behind.
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		created, err := repo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
		}
		for i := range items {
			items[i].OrderID = created.ID
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order items")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submitting order")
	}
	order.Items = items

	// Confirmation email is best effort; the order already committed.
	receipt := &Receipt{Order: order, Notified: true}
	notifyCtx := s.logg.WithOrderID(ctx, order.ID.String())
	if err := s.notifier.SendOrderConfirmation(notifyCtx, order); err != nil {
		s.logg.Error(notifyCtx, "order confirmation email failed", err)
		receipt.Notified = false
	}

	return receipt, nil
}

func validateSubmission(input *SubmissionInput) error {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerEmail = strings.TrimSpace(strings.ToLower(input.CustomerEmail))

	if input.CustomerName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.CustomerEmail == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer email required")
	}
	if _, err := mail.ParseAddress(input.CustomerEmail); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer email is not valid")
	}
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, line := range input.Lines {
		if strings.TrimSpace(line.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "item name required")
		}
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
		}
	}
	return nil
}
