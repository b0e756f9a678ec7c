package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marigoldevents/marigold-backend/api/middleware"
	"github.com/marigoldevents/marigold-backend/api/responses"
	"github.com/marigoldevents/marigold-backend/api/validators"
	cartsvc "github.com/marigoldevents/marigold-backend/internal/cart"
	checkoutsvc "github.com/marigoldevents/marigold-backend/internal/checkout"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone *string `json:"customer_phone"`
	Notes         *string `json:"notes"`
}

// CheckoutSubmit converts the visitor cart into an order. The cart is cleared
// only after the order is committed, so a failed submission keeps the cart
// intact for retry.
func CheckoutSubmit(carts cartsvc.Service, checkout checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil || checkout == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token := middleware.CartTokenFromContext(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token missing"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := carts.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(record.Items) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		lines := make([]checkoutsvc.SubmissionLine, 0, len(record.Items))
		for _, item := range record.Items {
			productID := item.ProductID
			lines = append(lines, checkoutsvc.SubmissionLine{
				ProductID: &productID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}

		receipt, err := checkout.Submit(r.Context(), checkoutsvc.SubmissionInput{
			CustomerName:  payload.CustomerName,
			CustomerEmail: payload.CustomerEmail,
			CustomerPhone: payload.CustomerPhone,
			Notes:         payload.Notes,
			Lines:         lines,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, clearErr := carts.Clear(r.Context(), token); clearErr != nil && logg != nil {
			// The order is already committed; a stale cart is recoverable.
			logg.Error(r.Context(), "checkout.cart_clear_failed", clearErr)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newReceiptResponse(receipt))
	}
}

type orderLineRequest struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,min=1,max=999"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

type orderSubmitRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerEmail string             `json:"customer_email" validate:"required,email"`
	CustomerPhone *string            `json:"customer_phone"`
	Notes         *string            `json:"notes"`
	Items         []orderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderSubmit accepts an order with explicit line items, bypassing the
// server-side cart. Storefronts that keep the cart locally use this path.
func OrderSubmit(checkout checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checkout == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload orderSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]checkoutsvc.SubmissionLine, 0, len(payload.Items))
		for _, item := range payload.Items {
			lines = append(lines, checkoutsvc.SubmissionLine{
				ProductID: item.ProductID,
				Name:      item.ProductName,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}

		receipt, err := checkout.Submit(r.Context(), checkoutsvc.SubmissionInput{
			CustomerName:  payload.CustomerName,
			CustomerEmail: payload.CustomerEmail,
			CustomerPhone: payload.CustomerPhone,
			Notes:         payload.Notes,
			Lines:         lines,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newReceiptResponse(receipt))
	}
}

type receiptResponse struct {
	Order    orderResponse `json:"order"`
	Notified bool          `json:"notified"`
}

func newReceiptResponse(receipt *checkoutsvc.Receipt) receiptResponse {
	return receiptResponse{
		Order:    newOrderResponse(*receipt.Order),
		Notified: receipt.Notified,
	}
}
