package menu

import (
	"context"

	"github.com/shopspring/decimal"
)

// Item represents a sellable dish in the restaurant catalog.
// The catalog is owned by the external API; this process holds read copies.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

// ItemFields carries the mutable fields for create and partial-update calls.
// Zero-value fields are still sent; the upstream API treats the request as a
// full form submission, matching the management UI.
type ItemFields struct {
	Name        string
	Description string
	Price       decimal.Decimal
	// ImageURL is an externally hosted image reference.
	ImageURL string
	// ImageFile, when non-nil, is uploaded as a multipart file part named
	// "image" with ImageFilename as its name.
	ImageFile     []byte
	ImageFilename string
}

// Source defines the catalog operations the front-end needs from the
// external API.
type Source interface {
	ListMenu(ctx context.Context) ([]Item, error)
	CreateMenuItem(ctx context.Context, fields ItemFields) error
	UpdateMenuItem(ctx context.Context, id string, fields ItemFields) error
	DeleteMenuItem(ctx context.Context, id string) error
}
