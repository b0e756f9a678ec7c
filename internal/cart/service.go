package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
)

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the cart operations keyed by visitor token.
type Service interface {
	Get(ctx context.Context, token string) (*Cart, error)
	AddItem(ctx context.Context, token string, productID uuid.UUID, qty int) (*Cart, error)
	UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, qty int) (*Cart, error)
	RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*Cart, error)
	ToggleOpen(ctx context.Context, token string) (*Cart, error)
	Clear(ctx context.Context, token string) (*Cart, error)
}

type service struct {
	store    Store
	products productLoader
	now      func() time.Time
}

// NewService builds a cart service backed by the provided store and catalog.
func NewService(store Store, products productLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		store:    store,
		products: products,
		now:      time.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, token string) (*Cart, error) {
	if err := ValidateToken(token); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, token)
}

func (s *service) AddItem(ctx context.Context, token string, productID uuid.UUID, qty int) (*Cart, error) {
	if err := ValidateToken(token); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	item, err := s.lineItemFor(ctx, productID, qty)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.Add(*item)
	return s.persist(ctx, token, cart)
}

func (s *service) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, qty int) (*Cart, error) {
	if err := ValidateToken(token); err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	// Updating a line that is no longer in the cart is a no-op rather than
	// an error; the storefront may race its own removals.
	cart.SetQuantity(productID, qty)
	return s.persist(ctx, token, cart)
}

func (s *service) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*Cart, error) {
	if err := ValidateToken(token); err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)
	return s.persist(ctx, token, cart)
}

// ToggleOpen flips the drawer visibility flag and persists it.
func (s *service) ToggleOpen(ctx context.Context, token string) (*Cart, error) {
	if err := ValidateToken(token); err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.SetOpen(!cart.IsOpen)
	return s.persist(ctx, token, cart)
}

func (s *service) Clear(ctx context.Context, token string) (*Cart, error) {
	if err := ValidateToken(token); err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	return s.persist(ctx, token, cart)
}

func (s *service) lineItemFor(ctx context.Context, productID uuid.UUID, qty int) (*LineItem, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}
	return &LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  qty,
		ImageURL:  product.ImageURL,
	}, nil
}

func (s *service) persist(ctx context.Context, token string, cart *Cart) (*Cart, error) {
	cart.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
