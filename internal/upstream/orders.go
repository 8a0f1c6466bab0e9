package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/bistro-front/internal/domain/order"
)

var _ order.Source = (*Client)(nil)

// orderItemWire mirrors one line of an upstream order.
type orderItemWire struct {
	MenuItem *menuItemWire   `json:"menu_item"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// orderWire mirrors the upstream order JSON.
type orderWire struct {
	ID           wireID          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []orderItemWire `json:"items"`
}

func (w orderWire) toDomain() order.Order {
	o := order.Order{
		ID:           string(w.ID),
		CustomerName: w.CustomerName,
		Status:       order.ParseStatus(w.Status),
		TotalPrice:   w.TotalPrice,
		CreatedAt:    w.CreatedAt,
		Items:        make([]order.Item, len(w.Items)),
	}
	for i, it := range w.Items {
		o.Items[i] = order.Item{
			Price:    it.Price,
			Quantity: it.Quantity,
		}
		if it.MenuItem != nil {
			mi := it.MenuItem.toDomain()
			o.Items[i].MenuItem = &mi
		}
	}
	return o
}

// PlaceOrder submits a new order. A client-generated Idempotency-Key header
// accompanies the request so an upstream that supports it can dedupe.
func (c *Client) PlaceOrder(ctx context.Context, req order.PlaceOrderRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "marshal order")
	}
	_, err = c.postOrder(ctx, payload)
	return err
}

// ListOrders fetches all orders. The response may be a bare array or an
// envelope {"orders": [...]}. A shape mismatch degrades to an empty list so
// the kitchen board renders rather than breaks.
func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	data, err := c.request(ctx, http.MethodGet, "/orders", nil, "")
	if err != nil {
		return nil, err
	}

	payload, err := listPayload(data, "orders")
	if err != nil {
		zctx.From(ctx).Warn("Unexpected orders payload shape", zap.Error(err))
		return nil, nil
	}

	var orders []orderWire
	if err := json.Unmarshal(payload, &orders); err != nil {
		zctx.From(ctx).Warn("Malformed orders", zap.Error(err))
		return nil, nil
	}

	out := make([]order.Order, len(orders))
	for i, o := range orders {
		out[i] = o.toDomain()
	}
	return out, nil
}

// UpdateOrderStatus requests a status transition via a partial update.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status order.Status) error {
	payload, err := json.Marshal(struct {
		Status string `json:"status"`
	}{Status: status.String()})
	if err != nil {
		return errors.Wrap(err, "marshal status")
	}
	_, err = c.patchJSON(ctx, "/orders/"+id, payload)
	return err
}
