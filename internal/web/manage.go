package web

import (
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/xenking/bistro-front/internal/domain/menu"
	"github.com/xenking/bistro-front/internal/upstream"
)

// maxImageUpload bounds in-memory form parsing for image uploads.
const maxImageUpload = 8 << 20

// managePage is the template data for the menu management view.
type managePage struct {
	Flash flash
	Items []menu.Item
	// EditID puts exactly one row in inline edit mode.
	EditID string
}

// manageDeletePage is the template data for the delete confirmation step.
type manageDeletePage struct {
	Item menu.Item
}

// handleManage renders the management table, re-fetching the full list.
// Edit mode is keyed by the edit query parameter.
func (s *Server) handleManage(w http.ResponseWriter, r *http.Request) {
	items, err := s.menuSrc.ListMenu(r.Context())
	f := flashFromRequest(r)
	if err != nil && f.Error == "" {
		f.Error = "Failed to fetch menu items."
	}
	s.setMenuSnapshot(items)

	s.render(w, "manage.html", managePage{
		Flash:  f,
		Items:  items,
		EditID: r.URL.Query().Get("edit"),
	})
}

// handleManageCreate creates a menu item from the form and re-fetches via
// redirect. No optimistic update.
func (s *Server) handleManageCreate(w http.ResponseWriter, r *http.Request) {
	fields, err := parseItemForm(r)
	if err != nil {
		redirect(w, r, "/manage", flash{Error: err.Error()})
		return
	}
	if err := s.menuSrc.CreateMenuItem(r.Context(), fields); err != nil {
		redirect(w, r, "/manage", flash{Error: "Failed to add item: " + upstream.Detail(err)})
		return
	}
	redirect(w, r, "/manage", flash{Notice: "Menu item added."})
}

// handleManageUpdate updates one item and leaves edit mode via redirect.
func (s *Server) handleManageUpdate(w http.ResponseWriter, r *http.Request) {
	fields, err := parseItemForm(r)
	if err != nil {
		redirect(w, r, "/manage", flash{Error: err.Error()})
		return
	}
	id := r.PostFormValue("id")
	if id == "" {
		redirect(w, r, "/manage", flash{Error: "Missing item id."})
		return
	}
	if err := s.menuSrc.UpdateMenuItem(r.Context(), id, fields); err != nil {
		redirect(w, r, "/manage", flash{Error: "Failed to update item: " + upstream.Detail(err)})
		return
	}
	redirect(w, r, "/manage", flash{Notice: "Menu item updated."})
}

// handleManageDeleteConfirm shows the explicit confirmation step; no request
// is issued until the confirmed POST.
func (s *Server) handleManageDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	item, ok := s.menuFromSnapshot(id)
	if !ok {
		item = menu.Item{ID: id}
	}
	s.render(w, "manage_delete.html", manageDeletePage{Item: item})
}

func (s *Server) handleManageDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PostFormValue("id")
	if err := s.menuSrc.DeleteMenuItem(r.Context(), id); err != nil {
		redirect(w, r, "/manage", flash{Error: "Failed to delete item: " + upstream.Detail(err)})
		return
	}
	redirect(w, r, "/manage", flash{Notice: "Menu item deleted."})
}

// parseItemForm reads the shared create/update form: name, description,
// price, optional image upload, optional image URL.
func parseItemForm(r *http.Request) (menu.ItemFields, error) {
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		return menu.ItemFields{}, errInvalidForm
	}

	price, err := decimal.NewFromString(r.PostFormValue("price"))
	if err != nil || price.IsNegative() {
		return menu.ItemFields{}, errInvalidPrice
	}

	fields := menu.ItemFields{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       price,
		ImageURL:    r.PostFormValue("image_url"),
	}
	if fields.Name == "" {
		return menu.ItemFields{}, errMissingName
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer func() { _ = file.Close() }()
		data, err := io.ReadAll(io.LimitReader(file, maxImageUpload))
		if err != nil {
			return menu.ItemFields{}, errInvalidForm
		}
		fields.ImageFile = data
		fields.ImageFilename = header.Filename
	}

	return fields, nil
}
