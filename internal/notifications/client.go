package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/marigoldevents/marigold-backend/pkg/config"
	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	pkgerrors "github.com/marigoldevents/marigold-backend/pkg/errors"
)

const defaultBackoff = 500 * time.Millisecond

// Service sends transactional email through the hosted mail functions.
type Service interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	SendStatusUpdate(ctx context.Context, order *models.Order) error
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type client struct {
	cfg  config.NotifyConfig
	http httpDoer
}

// NewClient builds the email client with retry-aware HTTP delivery.
func NewClient(cfg config.NotifyConfig) (Service, error) {
	if cfg.OrderNotificationURL == "" {
		return nil, fmt.Errorf("order notification url required")
	}
	if cfg.StatusUpdateURL == "" {
		return nil, fmt.Errorf("status update url required")
	}
	return &client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type orderItemPayload struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type orderNotificationPayload struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	OrderID       string             `json:"order_id"`
	TotalAmount   float64            `json:"total_amount"`
	Items         []orderItemPayload `json:"items"`
	OwnerEmail    string             `json:"owner_email,omitempty"`
}

type statusUpdatePayload struct {
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	OrderID       string  `json:"order_id"`
	NewStatus     string  `json:"new_status"`
	TotalAmount   float64 `json:"total_amount"`
}

func (c *client) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}

	items := make([]orderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemPayload{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
		})
	}

	payload := orderNotificationPayload{
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		OrderID:       order.ID.String(),
		TotalAmount:   order.TotalAmount.InexactFloat64(),
		Items:         items,
		OwnerEmail:    c.cfg.OwnerEmail,
	}
	return c.post(ctx, c.cfg.OrderNotificationURL, payload)
}

func (c *client) SendStatusUpdate(ctx context.Context, order *models.Order) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}

	payload := statusUpdatePayload{
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		OrderID:       order.ID.String(),
		NewStatus:     order.Status.String(),
		TotalAmount:   order.TotalAmount.InexactFloat64(),
	}
	return c.post(ctx, c.cfg.StatusUpdateURL, payload)
}

func (c *client) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding email payload")
	}

	attempts := c.cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewFibonacci(defaultBackoff))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()

		switch {
		case resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("mail function returned %d", resp.StatusCode))
		default:
			return fmt.Errorf("mail function returned %d", resp.StatusCode)
		}
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending email")
	}
	return nil
}
