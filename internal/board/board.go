// Package board implements the kitchen-facing order board: a polled snapshot
// of all orders sorted for display, and the status-advance workflow.
//
// The board never mutates order state locally. Advancing an order issues a
// partial update upstream and then re-reads the full list, so displayed
// state is always server truth plus at most one polling interval of lag.
package board

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/bistro-front/internal/domain/order"
	"github.com/xenking/bistro-front/internal/inflight"
)

// Sentinel errors for the advance workflow.
var (
	ErrUpdateInFlight    = errors.New("order update already in progress")
	ErrUnknownOrder      = errors.New("order not on the board")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Entry pairs an order with its board-local updating flag.
type Entry struct {
	Order order.Order
	// Updating is set while a status transition for this order is
	// outstanding; the view disables the action button.
	Updating bool
}

// NextStatus returns the wire form of the order's forward transition, or ""
// at the terminal status. Views embed it in the advance form.
func (e Entry) NextStatus() string {
	next, ok := e.Order.Status.Next()
	if !ok {
		return ""
	}
	return next.String()
}

// Board holds the latest order snapshot and tracks per-order in-flight
// updates. Each order's busy state is independent, so two different orders
// can be advanced concurrently.
type Board struct {
	source   order.Source
	inflight *inflight.Set

	mu     sync.RWMutex
	orders []order.Order
}

// New creates a Board reading from source. The snapshot starts empty;
// call Refresh or start Poll to populate it.
func New(source order.Source) *Board {
	return &Board{
		source:   source,
		inflight: inflight.NewSet(),
	}
}

// Refresh fetches the full order list and replaces the snapshot, sorted by
// status priority then recency. Fetch errors leave an empty snapshot rather
// than failing the render; the error is still returned so a manual refresh
// can surface a notice.
func (b *Board) Refresh(ctx context.Context) error {
	orders, err := b.source.ListOrders(ctx)
	if err != nil {
		zctx.From(ctx).Error("Fetch orders failed", zap.Error(err))
		orders = nil
	}
	order.SortForBoard(orders)

	b.mu.Lock()
	b.orders = orders
	b.mu.Unlock()

	if err != nil {
		return errors.Wrap(err, "list orders")
	}
	return nil
}

// Entries returns the current snapshot with per-order updating flags.
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, len(b.orders))
	for i, o := range b.orders {
		out[i] = Entry{Order: o, Updating: b.inflight.Contains(o.ID)}
	}
	return out
}

// StatusCounts returns the number of orders per status for the summary
// strip, keyed by workflow state.
func (b *Board) StatusCounts() map[order.Status]int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	counts := make(map[order.Status]int, 4)
	for _, o := range b.orders {
		counts[o.Status]++
	}
	return counts
}

// Advance requests the transition of orderID to next. The order's busy flag
// is held for the duration and released in all outcomes. On success the full
// list is re-fetched exactly once to reconcile with server truth; on failure
// the displayed status is unchanged and the error propagates for the view to
// surface.
func (b *Board) Advance(ctx context.Context, orderID string, next order.Status) error {
	current, ok := b.lookup(orderID)
	if !ok {
		return ErrUnknownOrder
	}
	if !current.Status.CanAdvanceTo(next) {
		return errors.Wrapf(ErrInvalidTransition, "%s to %s", current.Status, next)
	}

	if !b.inflight.TryAcquire(orderID) {
		return ErrUpdateInFlight
	}
	defer b.inflight.Release(orderID)

	if err := b.source.UpdateOrderStatus(ctx, orderID, next); err != nil {
		return errors.Wrapf(err, "update order %s", orderID)
	}

	return b.Refresh(ctx)
}

// Updating reports whether orderID has an outstanding status update.
func (b *Board) Updating(orderID string) bool {
	return b.inflight.Contains(orderID)
}

func (b *Board) lookup(orderID string) (order.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, o := range b.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return order.Order{}, false
}
