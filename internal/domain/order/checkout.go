package order

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/xenking/bistro-front/internal/domain/cart"
	"github.com/xenking/bistro-front/internal/inflight"
)

// Sentinel errors for order submission.
var (
	ErrEmptyCart      = fmt.Errorf("cart is empty")
	ErrSubmitInFlight = fmt.Errorf("order submission already in progress")
)

// submitKey is the singleton in-flight key for order submission.
const submitKey = "submit-order"

// Checkout builds order submissions from the cart and places them upstream.
// A single in-flight guard prevents duplicate submission while a call is
// outstanding; it is an advisory UI guard, not a server-side guarantee.
type Checkout struct {
	carts    *cart.Store
	orders   Source
	inflight *inflight.Set

	// nameFn generates a placeholder customer name; overridable in tests.
	nameFn func() string
}

// NewCheckout creates a Checkout bound to the given cart store and order
// source.
func NewCheckout(carts *cart.Store, orders Source) *Checkout {
	return &Checkout{
		carts:    carts,
		orders:   orders,
		inflight: inflight.NewSet(),
		nameFn:   placeholderName,
	}
}

// placeholderName generates the fallback customer name for blank input.
func placeholderName() string {
	return fmt.Sprintf("Customer %d", rand.IntN(1000))
}

// Submitting reports whether an order submission is currently outstanding.
func (c *Checkout) Submitting() bool {
	return c.inflight.Contains(submitKey)
}

// BuildRequest assembles the submission payload from the current cart. A
// blank customer name falls back to a generated placeholder. It returns
// ErrEmptyCart when there is nothing to order.
func (c *Checkout) BuildRequest(customerName string) (PlaceOrderRequest, error) {
	lines := c.carts.Lines()
	if len(lines) == 0 {
		return PlaceOrderRequest{}, ErrEmptyCart
	}

	name := strings.TrimSpace(customerName)
	if name == "" {
		name = c.nameFn()
	}

	items := make([]RequestItem, len(lines))
	for i, l := range lines {
		items[i] = RequestItem{MenuItemID: l.ItemID, Quantity: l.Quantity}
	}
	return PlaceOrderRequest{CustomerName: name, Items: items}, nil
}

// Submit places the current cart as an order. On success the cart is
// cleared; on failure it is left untouched and the error propagates for the
// view to surface. A second Submit while one is outstanding returns
// ErrSubmitInFlight.
func (c *Checkout) Submit(ctx context.Context, customerName string) error {
	if !c.inflight.TryAcquire(submitKey) {
		return ErrSubmitInFlight
	}
	defer c.inflight.Release(submitKey)

	req, err := c.BuildRequest(customerName)
	if err != nil {
		return err
	}

	if err := c.orders.PlaceOrder(ctx, req); err != nil {
		return fmt.Errorf("place order: %w", err)
	}

	c.carts.Clear()
	return nil
}
