package web

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/bistro-front/internal/board"
	"github.com/xenking/bistro-front/internal/domain/order"
	"github.com/xenking/bistro-front/internal/upstream"
)

// statusCount is one cell of the board's summary strip.
type statusCount struct {
	Status order.Status
	Count  int
}

// kitchenPage is the template data for the kitchen board.
type kitchenPage struct {
	Flash   flash
	Entries []board.Entry
	Summary []statusCount
}

// handleKitchen renders the current board snapshot. The poller keeps the
// snapshot fresh; rendering never blocks on the upstream API.
func (s *Server) handleKitchen(w http.ResponseWriter, r *http.Request) {
	counts := s.board.StatusCounts()
	summary := make([]statusCount, 0, 4)
	for _, st := range order.Statuses() {
		summary = append(summary, statusCount{Status: st, Count: counts[st]})
	}

	s.render(w, "kitchen.html", kitchenPage{
		Flash:   flashFromRequest(r),
		Entries: s.board.Entries(),
		Summary: summary,
	})
}

// handleKitchenRefresh re-fetches the order list on demand.
func (s *Server) handleKitchenRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Refresh(r.Context()); err != nil {
		redirect(w, r, "/kitchen", flash{Error: "Could not refresh orders: " + upstream.Detail(err)})
		return
	}
	redirect(w, r, "/kitchen", flash{})
}

// handleKitchenAdvance moves an order one step forward in the workflow.
func (s *Server) handleKitchenAdvance(w http.ResponseWriter, r *http.Request) {
	orderID := r.PostFormValue("order_id")
	next := order.ParseStatus(r.PostFormValue("next_status"))

	err := s.board.Advance(r.Context(), orderID, next)
	switch {
	case err == nil:
		redirect(w, r, "/kitchen", flash{Notice: "Order #" + orderID + " moved to " + next.Label() + "."})
	case errors.Is(err, board.ErrUpdateInFlight):
		redirect(w, r, "/kitchen", flash{Error: "That order is already being updated."})
	case errors.Is(err, board.ErrUnknownOrder), errors.Is(err, board.ErrInvalidTransition):
		redirect(w, r, "/kitchen", flash{Error: "That status change is not allowed."})
	default:
		redirect(w, r, "/kitchen", flash{Error: "Error updating order status: " + upstream.Detail(err)})
	}
}
