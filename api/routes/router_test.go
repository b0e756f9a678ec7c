package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	bookingsvc "github.com/marigoldevents/marigold-backend/internal/bookings"
	cartsvc "github.com/marigoldevents/marigold-backend/internal/cart"
	checkoutsvc "github.com/marigoldevents/marigold-backend/internal/checkout"
	gallerysvc "github.com/marigoldevents/marigold-backend/internal/gallery"
	ordersvc "github.com/marigoldevents/marigold-backend/internal/orders"
	productsvc "github.com/marigoldevents/marigold-backend/internal/products"
	pkgauth "github.com/marigoldevents/marigold-backend/pkg/auth"
	"github.com/marigoldevents/marigold-backend/pkg/config"
	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	"github.com/marigoldevents/marigold-backend/pkg/enums"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
	"github.com/marigoldevents/marigold-backend/pkg/pagination"
	pkgredis "github.com/marigoldevents/marigold-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCartService struct{}

func (stubCartService) Get(context.Context, string) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(), nil
}

func (stubCartService) AddItem(context.Context, string, uuid.UUID, int) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(), nil
}

func (stubCartService) UpdateQuantity(context.Context, string, uuid.UUID, int) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(), nil
}

func (stubCartService) RemoveItem(context.Context, string, uuid.UUID) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(), nil
}

func (stubCartService) ToggleOpen(context.Context, string) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(), nil
}

func (stubCartService) Clear(context.Context, string) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(), nil
}

type stubProductService struct{}

func (stubProductService) List(context.Context, string) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (stubProductService) Get(context.Context, uuid.UUID) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubProductService) Categories(context.Context) ([]models.ProductCategory, error) {
	return []models.ProductCategory{}, nil
}

func (stubProductService) Create(context.Context, productsvc.CreateProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubProductService) Update(context.Context, uuid.UUID, productsvc.UpdateProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubProductService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubGalleryService struct{}

func (stubGalleryService) List(context.Context) ([]models.Image, error) {
	return []models.Image{}, nil
}

func (stubGalleryService) Create(context.Context, gallerysvc.CreateImageInput) (*models.Image, error) {
	return &models.Image{}, nil
}

func (stubGalleryService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubBookingService struct{}

func (stubBookingService) Create(context.Context, bookingsvc.CreateBookingInput) (*models.Booking, error) {
	return &models.Booking{}, nil
}

func (stubBookingService) List(context.Context) ([]models.Booking, error) {
	return []models.Booking{}, nil
}

func (stubBookingService) UpdateStatus(context.Context, uuid.UUID, enums.BookingStatus) (*models.Booking, error) {
	return &models.Booking{}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Submit(context.Context, checkoutsvc.SubmissionInput) (*checkoutsvc.Receipt, error) {
	return &checkoutsvc.Receipt{Order: &models.Order{}}, nil
}

type stubOrderService struct{}

func (stubOrderService) Track(context.Context, uuid.UUID, string) (*ordersvc.Tracking, error) {
	return &ordersvc.Tracking{ProgressTotal: enums.ProgressTotal}, nil
}

func (stubOrderService) History(context.Context, string) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (stubOrderService) AdminList(context.Context, pagination.Params, ordersvc.ListFilters) (*ordersvc.OrderList, error) {
	return &ordersvc.OrderList{Orders: []models.Order{}}, nil
}

func (stubOrderService) UpdateStatus(context.Context, uuid.UUID, enums.OrderStatus) (*models.Order, error) {
	return &models.Order{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "test", Port: "0"},
		JWT:  config.JWTConfig{Secret: "secret", Issuer: "issuer"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*pkgredis.Client)(nil),
		nil,
		nil,
		stubCartService{},
		stubProductService{},
		stubGalleryService{},
		stubBookingService{},
		stubCheckoutService{},
		stubOrderService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.StaffRole) string {
	t.Helper()
	claims := pkgauth.AccessTokenClaims{
		Email: "staff@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWT.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestPublicProductsRoute(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestCartRoutesRequireToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without cart token got %d", resp.Code)
	}
}

func TestCartRouteAcceptsToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "visitor-token-0123456789")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with cart token got %d", resp.Code)
	}
}

func TestOrderSubmitRequiresIdempotencyKey(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d", resp.Code)
	}
}

func TestOrderTrackByEmailIsAnonymous(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/track?email=rosa@example.com", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without credentials got %d", resp.Code)
	}
}

func TestOrderHistoryRequiresBearer(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	anon := httptest.NewRequest(http.MethodGet, "/api/v1/orders/history", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/api/v1/orders/history", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleStaff))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/bookings", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	staff := httptest.NewRequest(http.MethodGet, "/api/admin/v1/bookings", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/bookings", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}
