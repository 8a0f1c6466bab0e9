package upstream

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Kind classifies an upstream API failure.
type Kind int

const (
	// KindTimeout is a client-side timeout or cancelled request.
	KindTimeout Kind = iota
	// KindClient is an HTTP 4xx response.
	KindClient
	// KindServer is an HTTP 5xx response.
	KindServer
	// KindDecode is an unexpected payload shape.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// Error is a classified upstream API failure. Detail carries the
// server-provided message when one was present in the response body.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream %s error (status %d): %s", e.Kind, e.StatusCode, e.Detail)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s error (status %d)", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s error", e.Kind)
}

// AsError unwraps err into *Error when it carries one.
func AsError(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// Detail extracts a user-facing message from err: the server-provided detail
// when available, otherwise the error text itself.
func Detail(err error) string {
	if ue, ok := AsError(err); ok && ue.Detail != "" {
		return ue.Detail
	}
	return err.Error()
}

// extractDetail pulls a human-readable message out of a JSON error body.
// Both {"message": "..."} and {"error": "..."} shapes are recognized; any
// other payload yields "".
func extractDetail(body []byte) string {
	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return ""
	}
	var detail string
	_ = d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "message", "error":
			if d.Next() == jx.String {
				s, err := d.Str()
				if err != nil {
					return err
				}
				if detail == "" {
					detail = s
				}
				return nil
			}
		}
		return d.Skip()
	})
	return detail
}
