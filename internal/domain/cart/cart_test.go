package cart

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/bistro-front/internal/domain/menu"
)

func newTestItem(id, price string) menu.Item {
	return menu.Item{
		ID:          id,
		Name:        gofakeit.Dinner(),
		Description: gofakeit.Sentence(6),
		Price:       decimal.RequireFromString(price),
		ImageURL:    gofakeit.URL(),
	}
}

func TestAdd_NewLine(t *testing.T) {
	s := New()
	item := newTestItem("m1", "9.50")

	s.Add(item)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "m1", lines[0].ItemID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, item.Name, lines[0].Name)
	assert.True(t, item.Price.Equal(lines[0].Price))
}

func TestAdd_SameItemTwice(t *testing.T) {
	s := New()
	item := newTestItem("m1", "9.50")

	s.Add(item)
	s.Add(item)

	lines := s.Lines()
	require.Len(t, lines, 1, "adding the same item twice must not create a second line")
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	s := New()
	s.Add(newTestItem("m1", "1.00"))
	s.Add(newTestItem("m2", "2.00"))
	s.Add(newTestItem("m1", "1.00"))

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "m1", lines[0].ItemID)
	assert.Equal(t, "m2", lines[1].ItemID)
}

func TestChangeQuantity(t *testing.T) {
	tests := []struct {
		name    string
		adds    int
		delta   int
		wantQty int
		removed bool
	}{
		{name: "decrement to zero removes line", adds: 1, delta: -1, removed: true},
		{name: "decrement from two", adds: 2, delta: -1, wantQty: 1},
		{name: "increment", adds: 1, delta: 1, wantQty: 2},
		{name: "large negative removes line", adds: 3, delta: -10, removed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			item := newTestItem("m1", "4.25")
			for range tt.adds {
				s.Add(item)
			}

			s.ChangeQuantity("m1", tt.delta)

			lines := s.Lines()
			if tt.removed {
				assert.Empty(t, lines)
				return
			}
			require.Len(t, lines, 1)
			assert.Equal(t, tt.wantQty, lines[0].Quantity)
		})
	}
}

func TestChangeQuantity_UnknownItemIsNoop(t *testing.T) {
	s := New()
	s.Add(newTestItem("m1", "4.25"))

	s.ChangeQuantity("missing", -1)

	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 1, s.Lines()[0].Quantity)
}

func TestRemove(t *testing.T) {
	s := New()
	s.Add(newTestItem("m1", "4.25"))
	s.Add(newTestItem("m2", "3.00"))

	s.Remove("m1")

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "m2", lines[0].ItemID)
}

func TestClear(t *testing.T) {
	s := New()
	s.Add(newTestItem("m1", "4.25"))
	s.Add(newTestItem("m2", "3.00"))

	s.Clear()

	assert.Empty(t, s.Lines())
	assert.True(t, s.Total().IsZero())
}

func TestTotal(t *testing.T) {
	s := New()
	assert.True(t, s.Total().IsZero(), "empty cart totals zero")

	a := newTestItem("m1", "9.50")
	b := newTestItem("m2", "3.25")
	s.Add(a)
	s.Add(a)
	s.Add(b)

	// 2 * 9.50 + 1 * 3.25
	assert.True(t, decimal.RequireFromString("22.25").Equal(s.Total()))
}

func TestCount(t *testing.T) {
	s := New()
	assert.Zero(t, s.Count())

	item := newTestItem("m1", "1.00")
	s.Add(item)
	s.Add(item)
	s.Add(newTestItem("m2", "2.00"))

	assert.Equal(t, 3, s.Count())
}
