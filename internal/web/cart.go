package web

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/bistro-front/internal/domain/cart"
	"github.com/xenking/bistro-front/internal/domain/order"
	"github.com/xenking/bistro-front/internal/upstream"
)

// cartPage is the template data for the cart view.
type cartPage struct {
	Flash      flash
	Lines      []cart.Line
	Total      decimal.Decimal
	Submitting bool
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	s.render(w, "cart.html", cartPage{
		Flash:      flashFromRequest(r),
		Lines:      s.carts.Lines(),
		Total:      s.carts.Total(),
		Submitting: s.checkout.Submitting(),
	})
}

// handleCartUpdate applies a quantity delta to one line. A delta that drops
// the quantity to zero removes the line.
func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PostFormValue("item_id")
	delta, err := strconv.Atoi(r.PostFormValue("delta"))
	if err != nil {
		redirect(w, r, "/cart", flash{Error: "Invalid quantity change."})
		return
	}
	s.carts.ChangeQuantity(id, delta)
	redirect(w, r, "/cart", flash{})
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	s.carts.Remove(r.PostFormValue("item_id"))
	redirect(w, r, "/cart", flash{})
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	s.carts.Clear()
	redirect(w, r, "/cart", flash{})
}

// handleCheckout submits the cart as an order. Success clears the cart and
// the name field (the redirect drops the form state); failure leaves both
// intact and surfaces the server-provided detail.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	err := s.checkout.Submit(r.Context(), r.PostFormValue("customer_name"))
	switch {
	case err == nil:
		redirect(w, r, "/cart", flash{Notice: "Order placed successfully! Check the kitchen board for updates."})
	case errors.Is(err, order.ErrEmptyCart):
		redirect(w, r, "/cart", flash{Error: "Your cart is empty."})
	case errors.Is(err, order.ErrSubmitInFlight):
		redirect(w, r, "/cart", flash{Error: "An order is already being placed."})
	default:
		redirect(w, r, "/cart", flash{Error: "Error placing order: " + upstream.Detail(err)})
	}
}
