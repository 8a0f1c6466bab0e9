// Package web renders the restaurant front-end: menu browsing, the cart,
// the kitchen board, and menu management. All pages are server-rendered
// HTML; every mutation is a form POST followed by a redirect, with notices
// carried as flash query parameters.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/bistro-front/internal/board"
	"github.com/xenking/bistro-front/internal/domain/cart"
	"github.com/xenking/bistro-front/internal/domain/menu"
	"github.com/xenking/bistro-front/internal/domain/order"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds the view dependencies and the last fetched menu snapshot.
// The snapshot lets cart additions denormalize price and name locally, the
// way the original single-page flow adds already-loaded items without a
// network call.
type Server struct {
	menuSrc  menu.Source
	carts    *cart.Store
	checkout *order.Checkout
	board    *board.Board

	tmpl *template.Template

	mu       sync.RWMutex
	lastMenu []menu.Item
}

// NewServer constructs the view server.
func NewServer(menuSrc menu.Source, carts *cart.Store, checkout *order.Checkout, b *board.Board) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &Server{
		menuSrc:  menuSrc,
		carts:    carts,
		checkout: checkout,
		board:    b,
		tmpl:     tmpl,
	}, nil
}

// Register mounts all view routes on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleMenu)
	mux.HandleFunc("GET /menu", s.handleMenu)

	mux.HandleFunc("GET /cart", s.handleCart)
	mux.HandleFunc("POST /cart/add", s.handleCartAdd)
	mux.HandleFunc("POST /cart/update", s.handleCartUpdate)
	mux.HandleFunc("POST /cart/remove", s.handleCartRemove)
	mux.HandleFunc("POST /cart/clear", s.handleCartClear)
	mux.HandleFunc("POST /cart/checkout", s.handleCheckout)

	mux.HandleFunc("GET /kitchen", s.handleKitchen)
	mux.HandleFunc("POST /kitchen/refresh", s.handleKitchenRefresh)
	mux.HandleFunc("POST /kitchen/advance", s.handleKitchenAdvance)

	mux.HandleFunc("GET /manage", s.handleManage)
	mux.HandleFunc("POST /manage/create", s.handleManageCreate)
	mux.HandleFunc("POST /manage/update", s.handleManageUpdate)
	mux.HandleFunc("GET /manage/delete", s.handleManageDeleteConfirm)
	mux.HandleFunc("POST /manage/delete", s.handleManageDelete)
}

// flash is a one-shot notice passed between redirects via query parameters.
type flash struct {
	Notice string
	Error  string
}

func flashFromRequest(r *http.Request) flash {
	q := r.URL.Query()
	return flash{Notice: q.Get("notice"), Error: q.Get("error")}
}

// redirect sends a 303 to path with the flash encoded as query parameters.
func redirect(w http.ResponseWriter, r *http.Request, path string, f flash) {
	q := url.Values{}
	if f.Notice != "" {
		q.Set("notice", f.Notice)
	}
	if f.Error != "" {
		q.Set("error", f.Error)
	}
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// setMenuSnapshot replaces the cached menu list.
func (s *Server) setMenuSnapshot(items []menu.Item) {
	s.mu.Lock()
	s.lastMenu = items
	s.mu.Unlock()
}

// menuFromSnapshot finds a menu item by ID in the cached list.
func (s *Server) menuFromSnapshot(id string) (menu.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.lastMenu {
		if it.ID == id {
			return it, true
		}
	}
	return menu.Item{}, false
}
