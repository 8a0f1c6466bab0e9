package web

import (
	"net/http"

	"github.com/xenking/bistro-front/internal/domain/menu"
)

// menuPage is the template data for the menu view.
type menuPage struct {
	Flash     flash
	Items     []menu.Item
	CartCount int
	// LoadFailed is set when the menu fetch errored; the page renders
	// empty with no error banner, matching the primary-flow policy of
	// logging and degrading quietly.
	LoadFailed bool
}

// handleMenu fetches the menu and renders the cards. A fetch failure leaves
// the list empty; the error was already logged at the client boundary.
func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	items, err := s.menuSrc.ListMenu(r.Context())
	if err != nil {
		items = nil
	}
	s.setMenuSnapshot(items)

	s.render(w, "menu.html", menuPage{
		Flash:      flashFromRequest(r),
		Items:      items,
		CartCount:  s.carts.Count(),
		LoadFailed: err != nil,
	})
}

// handleCartAdd adds a menu item from the snapshot to the cart. No network
// call happens here; the menu is already loaded.
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	id := r.PostFormValue("item_id")
	item, ok := s.menuFromSnapshot(id)
	if !ok {
		redirect(w, r, "/menu", flash{Error: "That item is no longer on the menu."})
		return
	}
	s.carts.Add(item)
	redirect(w, r, "/menu", flash{})
}
