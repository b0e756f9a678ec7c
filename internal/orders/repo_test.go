package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	"github.com/marigoldevents/marigold-backend/pkg/enums"
	"github.com/marigoldevents/marigold-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func mustCreateOrder(t *testing.T, repo Repository, email string, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:            uuid.New(),
		CustomerName:  "Repo Tester",
		CustomerEmail: email,
		TotalAmount:   decimal.RequireFromString("55.00"),
		Status:        enums.OrderStatusPending,
		CreatedAt:     createdAt,
	}
	_, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	return order
}

func TestRepositoryCreateWithItemsRoundTrip(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := mustCreateOrder(t, repo, "buyer@example.com", time.Now().UTC())
	productID := uuid.New()
	items := []models.OrderItem{
		{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   &productID,
			ProductName: "Centerpiece",
			Quantity:    2,
			UnitPrice:   decimal.RequireFromString("10.00"),
		},
		{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductName: "Ribbon",
			Quantity:    1,
			UnitPrice:   decimal.RequireFromString("35.00"),
		},
	}
	require.NoError(t, repo.CreateItems(ctx, items))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
}

func TestRepositoryFindByIDAndEmailIgnoresCase(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := mustCreateOrder(t, repo, "Buyer@Example.com", time.Now().UTC())

	found, err := repo.FindByIDAndEmail(ctx, order.ID, "buyer@example.COM")
	require.NoError(t, err)
	require.Equal(t, order.ID, found.ID)

	_, err = repo.FindByIDAndEmail(ctx, order.ID, "other@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByEmailNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	older := mustCreateOrder(t, repo, "buyer@example.com", base)
	newer := mustCreateOrder(t, repo, "buyer@example.com", base.Add(30*time.Minute))
	mustCreateOrder(t, repo, "someone@example.com", base.Add(10*time.Minute))

	list, err := repo.ListByEmail(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, newer.ID, list[0].ID)
	require.Equal(t, older.ID, list[1].ID)
}

func TestRepositoryListPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		mustCreateOrder(t, repo, "bulk@example.com", base.Add(time.Duration(i)*time.Minute))
	}

	first, err := repo.List(ctx, pagination.Params{Limit: 3}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, first.Orders, 3)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.List(ctx, pagination.Params{Limit: 3, Cursor: first.NextCursor}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, second.Orders, 2)
	require.Empty(t, second.NextCursor)

	seen := map[uuid.UUID]struct{}{}
	for _, order := range append(first.Orders, second.Orders...) {
		seen[order.ID] = struct{}{}
	}
	require.Len(t, seen, 5)
}

func TestRepositoryListFiltersByStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	pending := mustCreateOrder(t, repo, "buyer@example.com", time.Now().UTC())
	shipped := mustCreateOrder(t, repo, "buyer@example.com", time.Now().UTC())
	require.NoError(t, repo.UpdateStatus(ctx, shipped.ID, enums.OrderStatusShipped))

	status := enums.OrderStatusShipped
	list, err := repo.List(ctx, pagination.Params{}, ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	require.Equal(t, shipped.ID, list.Orders[0].ID)
	require.NotEqual(t, pending.ID, list.Orders[0].ID)
}

func TestRepositoryUpdateStatusMissingOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	err := repo.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusConfirmed)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
