package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marigoldevents/marigold-backend/api/middleware"
	"github.com/marigoldevents/marigold-backend/api/responses"
	ordersvc "github.com/marigoldevents/marigold-backend/internal/orders"
	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
)

// OrderTrack serves the public order-status lookup. With an order_id the
// lookup is gated on the customer email so order ids alone are not enough to
// read someone else's order. With only an email it returns every order placed
// under that address, newest first, so customers without the id at hand can
// still find their order.
func OrderTrack(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		rawOrderID := strings.TrimSpace(r.URL.Query().Get("order_id"))
		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if rawOrderID == "" {
			if email == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order_id or email is required"))
				return
			}

			orders, err := svc.History(r.Context(), email)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			out := make([]orderResponse, 0, len(orders))
			for _, order := range orders {
				out = append(out, newOrderResponse(order))
			}
			responses.WriteSuccess(w, map[string]any{"orders": out})
			return
		}

		orderID, err := uuid.Parse(rawOrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		tracking, err := svc.Track(r.Context(), orderID, email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newTrackingResponse(tracking))
	}
}

// OrderHistory lists the orders placed under the bearer token's email claim,
// newest first. A blank claim returns an empty list rather than an error.
func OrderHistory(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		email := middleware.EmailFromContext(r.Context())
		orders, err := svc.History(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]orderResponse, 0, len(orders))
		for _, order := range orders {
			out = append(out, newOrderResponse(order))
		}
		responses.WriteSuccess(w, map[string]any{"orders": out})
	}
}

type orderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	CustomerPhone *string             `json:"customer_phone,omitempty"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Status        string              `json:"status"`
	Notes         *string             `json:"notes,omitempty"`
	Items         []orderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type trackingResponse struct {
	Order         orderResponse `json:"order"`
	ProgressStep  int           `json:"progress_step"`
	ProgressTotal int           `json:"progress_total"`
}

func newOrderResponse(order models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return orderResponse{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		TotalAmount:   order.TotalAmount,
		Status:        string(order.Status),
		Notes:         order.Notes,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func newTrackingResponse(tracking *ordersvc.Tracking) trackingResponse {
	return trackingResponse{
		Order:         newOrderResponse(tracking.Order),
		ProgressStep:  tracking.ProgressStep,
		ProgressTotal: tracking.ProgressTotal,
	}
}
