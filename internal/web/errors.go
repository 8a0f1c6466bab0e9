package web

import "github.com/go-faster/errors"

// Form validation errors surfaced as notice banners.
var (
	errInvalidForm  = errors.New("could not read the submitted form")
	errInvalidPrice = errors.New("price must be a non-negative number")
	errMissingName  = errors.New("name is required")
)
