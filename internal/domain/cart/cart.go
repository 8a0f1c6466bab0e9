// Package cart implements the in-process shopping cart.
//
// The cart is the only mutable state shared between the menu and cart views.
// It has a single owner (created once in app wiring and passed down), and all
// mutations go through Store methods under one mutex, so concurrent request
// handlers observe a consistent line list.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xenking/bistro-front/internal/domain/menu"
)

// Line is the cart's per-menu-item quantity record. Price, name, and image
// are denormalized at add time so the cart renders without catalog lookups.
type Line struct {
	ItemID   string
	Name     string
	Price    decimal.Decimal
	ImageURL string
	Quantity int
}

// Subtotal returns price multiplied by quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store holds cart lines keyed by menu item ID, preserving insertion order
// for rendering. At most one line exists per item; a line's quantity is
// always positive — a line that would reach zero is removed instead.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

// New returns an empty cart store.
func New() *Store {
	return &Store{}
}

// Add increments the quantity of the line matching item's ID, or appends a
// new line with quantity 1, copying price, name, and image from item.
func (s *Store) Add(item menu.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == item.ID {
			s.lines[i].Quantity++
			return
		}
	}
	s.lines = append(s.lines, Line{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		ImageURL: item.ImageURL,
		Quantity: 1,
	})
}

// ChangeQuantity adds delta to the matching line's quantity. A resulting
// quantity of zero or below drops the line. An unknown itemID is a no-op.
func (s *Store) ChangeQuantity(itemID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID != itemID {
			continue
		}
		s.lines[i].Quantity += delta
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		return
	}
}

// Remove drops the matching line unconditionally.
func (s *Store) Remove(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total returns the sum of price multiplied by quantity over all lines.
// It is recomputed on every call; an empty cart totals zero.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count returns the total number of items across all lines, used for the
// header cart badge.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}
