package order

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/bistro-front/internal/domain/cart"
	"github.com/xenking/bistro-front/internal/domain/menu"
)

// mockOrderSource records placed orders and can block or fail on demand.
type mockOrderSource struct {
	mu       sync.Mutex
	placed   []PlaceOrderRequest
	placeErr error
	// release, when non-nil, blocks PlaceOrder until closed.
	release chan struct{}
}

func (m *mockOrderSource) PlaceOrder(_ context.Context, req PlaceOrderRequest) error {
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.placeErr != nil {
		return m.placeErr
	}
	m.placed = append(m.placed, req)
	return nil
}

func (m *mockOrderSource) ListOrders(_ context.Context) ([]Order, error) { return nil, nil }

func (m *mockOrderSource) UpdateOrderStatus(_ context.Context, _ string, _ Status) error {
	return nil
}

func newTestCart(ids ...string) *cart.Store {
	s := cart.New()
	for _, id := range ids {
		s.Add(menu.Item{ID: id, Name: "Dish " + id, Price: decimal.RequireFromString("5.00")})
	}
	return s
}

func TestBuildRequest_EmptyCart(t *testing.T) {
	c := NewCheckout(cart.New(), &mockOrderSource{})

	_, err := c.BuildRequest("Alice")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildRequest_UsesProvidedName(t *testing.T) {
	c := NewCheckout(newTestCart("m1"), &mockOrderSource{})

	req, err := c.BuildRequest("  Alice  ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", req.CustomerName)
	require.Len(t, req.Items, 1)
	assert.Equal(t, RequestItem{MenuItemID: "m1", Quantity: 1}, req.Items[0])
}

func TestBuildRequest_BlankNameGeneratesPlaceholder(t *testing.T) {
	c := NewCheckout(newTestCart("m1"), &mockOrderSource{})

	pattern := regexp.MustCompile(`^Customer \d{1,3}$`)
	for range 20 {
		req, err := c.BuildRequest("")
		require.NoError(t, err)
		assert.Regexp(t, pattern, req.CustomerName)
	}
}

func TestBuildRequest_ItemsMatchCartLines(t *testing.T) {
	carts := newTestCart("m1", "m2")
	carts.Add(menu.Item{ID: "m1", Price: decimal.RequireFromString("5.00")})
	c := NewCheckout(carts, &mockOrderSource{})

	req, err := c.BuildRequest("Bob")
	require.NoError(t, err)
	assert.Equal(t, []RequestItem{
		{MenuItemID: "m1", Quantity: 2},
		{MenuItemID: "m2", Quantity: 1},
	}, req.Items)
}

func TestSubmit_SuccessClearsCart(t *testing.T) {
	carts := newTestCart("m1")
	src := &mockOrderSource{}
	c := NewCheckout(carts, src)

	err := c.Submit(context.Background(), "Alice")
	require.NoError(t, err)

	assert.Empty(t, carts.Lines())
	require.Len(t, src.placed, 1)
	assert.Equal(t, "Alice", src.placed[0].CustomerName)
}

func TestSubmit_FailureLeavesCartUntouched(t *testing.T) {
	carts := newTestCart("m1")
	src := &mockOrderSource{placeErr: errors.New("boom")}
	c := NewCheckout(carts, src)

	err := c.Submit(context.Background(), "Alice")
	require.Error(t, err)

	assert.Len(t, carts.Lines(), 1, "failed submission must not clear the cart")
}

func TestSubmit_SecondSubmitWhileInFlight(t *testing.T) {
	src := &mockOrderSource{release: make(chan struct{})}
	c := NewCheckout(newTestCart("m1"), src)

	done := make(chan error, 1)
	go func() {
		done <- c.Submit(context.Background(), "Alice")
	}()

	// Wait for the first submit to hold the guard.
	require.Eventually(t, c.Submitting, time.Second, time.Millisecond)

	err := c.Submit(context.Background(), "Bob")
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(src.release)
	require.NoError(t, <-done)
	assert.False(t, c.Submitting())
}
