package orders

import (
	"github.com/marigoldevents/marigold-backend/pkg/db/models"
	"github.com/marigoldevents/marigold-backend/pkg/enums"
)

// ListFilters describe the inputs supported by the admin order list.
type ListFilters struct {
	Status *enums.OrderStatus
	Email  string
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// Tracking combines the order with its position in the fulfillment flow.
type Tracking struct {
	Order         models.Order `json:"order"`
	ProgressStep  int          `json:"progress_step"`
	ProgressTotal int          `json:"progress_total"`
}
