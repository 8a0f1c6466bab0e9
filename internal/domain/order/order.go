// Package order holds the order model, the kitchen status workflow, and the
// checkout service. Orders are owned by the external API; this process only
// reads them and requests status transitions.
package order

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/bistro-front/internal/domain/menu"
)

// Item is a single line of a submitted order as reported by the upstream
// API. MenuItem may be nil when the referenced dish was deleted; views
// render a placeholder in that case.
type Item struct {
	MenuItem *menu.Item      `json:"menu_item"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is the client-side read copy of a server-owned order.
type Order struct {
	ID           string
	CustomerName string
	Status       Status
	TotalPrice   decimal.Decimal
	CreatedAt    time.Time
	Items        []Item
}

// RequestItem references a menu item and quantity in an order submission.
type RequestItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for creating an order upstream.
type PlaceOrderRequest struct {
	CustomerName string        `json:"customer_name"`
	Items        []RequestItem `json:"items"`
}

// Source defines the order operations the front-end needs from the
// external API.
type Source interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) error
	ListOrders(ctx context.Context) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status Status) error
}

// SortForBoard orders the slice for kitchen display: status priority
// ascending, then creation time descending within equal status. The sort is
// stable so equal keys keep their fetched order.
func SortForBoard(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		pi, pj := orders[i].Status.Priority(), orders[j].Status.Priority()
		if pi != pj {
			return pi < pj
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
