package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/bistro-front/internal/domain/menu"
)

var _ menu.Source = (*Client)(nil)

// menuItemWire mirrors the upstream menu item JSON. IDs arrive as numbers or
// strings depending on the backend, so wireID absorbs both.
type menuItemWire struct {
	ID          wireID          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

func (w menuItemWire) toDomain() menu.Item {
	return menu.Item{
		ID:          string(w.ID),
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		ImageURL:    w.ImageURL,
	}
}

// ListMenu fetches the full menu. The response may be a bare array or an
// envelope {"data": [...]}. A shape mismatch degrades to an empty list with
// a logged warning so the menu view renders rather than breaks.
func (c *Client) ListMenu(ctx context.Context) ([]menu.Item, error) {
	data, err := c.request(ctx, http.MethodGet, "/menu", nil, "")
	if err != nil {
		return nil, err
	}

	payload, err := listPayload(data, "data")
	if err != nil {
		zctx.From(ctx).Warn("Unexpected menu payload shape", zap.Error(err))
		return nil, nil
	}

	var items []menuItemWire
	if err := json.Unmarshal(payload, &items); err != nil {
		zctx.From(ctx).Warn("Malformed menu items", zap.Error(err))
		return nil, nil
	}

	out := make([]menu.Item, len(items))
	for i, it := range items {
		out[i] = it.toDomain()
	}
	return out, nil
}

// CreateMenuItem creates a menu item via a multipart form POST.
func (c *Client) CreateMenuItem(ctx context.Context, fields menu.ItemFields) error {
	body, contentType, err := encodeMenuForm(fields)
	if err != nil {
		return err
	}
	_, err = c.request(ctx, http.MethodPost, "/menu", body, contentType)
	return err
}

// UpdateMenuItem partially updates a menu item via a multipart form PATCH.
func (c *Client) UpdateMenuItem(ctx context.Context, id string, fields menu.ItemFields) error {
	body, contentType, err := encodeMenuForm(fields)
	if err != nil {
		return err
	}
	_, err = c.request(ctx, http.MethodPatch, "/menu/"+id, body, contentType)
	return err
}

// DeleteMenuItem removes a menu item.
func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, "/menu/"+id, nil, "")
	return err
}

// encodeMenuForm builds the multipart body shared by create and update:
// name, description, price, then the optional image file and image_url.
func encodeMenuForm(fields menu.ItemFields) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("name", fields.Name); err != nil {
		return nil, "", errors.Wrap(err, "write name")
	}
	if err := w.WriteField("description", fields.Description); err != nil {
		return nil, "", errors.Wrap(err, "write description")
	}
	if err := w.WriteField("price", fields.Price.String()); err != nil {
		return nil, "", errors.Wrap(err, "write price")
	}
	if len(fields.ImageFile) > 0 {
		part, err := w.CreateFormFile("image", fields.ImageFilename)
		if err != nil {
			return nil, "", errors.Wrap(err, "create image part")
		}
		if _, err := part.Write(fields.ImageFile); err != nil {
			return nil, "", errors.Wrap(err, "write image")
		}
	}
	if fields.ImageURL != "" {
		if err := w.WriteField("image_url", fields.ImageURL); err != nil {
			return nil, "", errors.Wrap(err, "write image_url")
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close form")
	}
	return &buf, w.FormDataContentType(), nil
}
