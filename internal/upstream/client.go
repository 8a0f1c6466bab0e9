// Package upstream implements the REST client for the external restaurant
// API. All pricing, persistence, and order lifecycle authority lives in that
// API; this client issues calls and classifies failures so views can surface
// them without crashing.
package upstream

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every upstream call unless configured otherwise.
const DefaultTimeout = 10 * time.Second

// Options configures a Client.
type Options struct {
	// Timeout bounds each request; DefaultTimeout when zero.
	Timeout time.Duration
	// TracerProvider instruments the transport when non-nil.
	TracerProvider trace.TracerProvider
}

// Client issues REST calls against a single base URL with a fixed timeout.
type Client struct {
	base *url.URL
	http *http.Client
}

// New creates a Client for the given base URL, e.g. "http://api.local/api".
func New(baseURL string, opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base URL")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("base URL %q must be absolute", baseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport
	if opts.TracerProvider != nil {
		transport = otelhttp.NewTransport(transport,
			otelhttp.WithTracerProvider(opts.TracerProvider),
		)
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// Ping probes the upstream API. Used by the readiness check.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodGet, "/menu", nil, "")
	return err
}

// request performs one round trip and returns the response body. Non-2xx
// statuses, timeouts, and transport failures come back as *Error, logged by
// status class at this boundary and propagated for per-view handling.
func (c *Client) request(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	return c.requestHeader(ctx, method, path, body, contentType, nil)
}

func (c *Client) requestHeader(ctx context.Context, method, path string, body io.Reader, contentType string, hdr http.Header) ([]byte, error) {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	for name, values := range hdr {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	lg := zctx.From(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			lg.Error("Upstream request timeout", zap.Error(err))
		} else {
			lg.Error("Upstream request failed", zap.Error(err))
		}
		return nil, &Error{Kind: KindTimeout, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		lg.Warn("Upstream response read failed", zap.Error(err))
		return nil, &Error{Kind: KindDecode, StatusCode: resp.StatusCode, Detail: err.Error()}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusNotFound:
		lg.Error("Upstream endpoint not found", zap.Int("status", resp.StatusCode))
		return nil, &Error{Kind: KindClient, StatusCode: resp.StatusCode, Detail: extractDetail(data)}
	case resp.StatusCode >= 500:
		lg.Error("Upstream server error", zap.Int("status", resp.StatusCode))
		return nil, &Error{Kind: KindServer, StatusCode: resp.StatusCode, Detail: extractDetail(data)}
	default:
		lg.Warn("Upstream request rejected", zap.Int("status", resp.StatusCode))
		return nil, &Error{Kind: KindClient, StatusCode: resp.StatusCode, Detail: extractDetail(data)}
	}
}

// postOrder POSTs a JSON payload to /orders with a client-generated
// Idempotency-Key header.
func (c *Client) postOrder(ctx context.Context, payload []byte) ([]byte, error) {
	hdr := http.Header{}
	hdr.Set("Idempotency-Key", uuid.New().String())
	return c.requestHeader(ctx, http.MethodPost, "/orders", bytes.NewReader(payload), "application/json", hdr)
}

// patchJSON PATCHes a JSON payload to path.
func (c *Client) patchJSON(ctx context.Context, path string, payload []byte) ([]byte, error) {
	return c.request(ctx, http.MethodPatch, path, bytes.NewReader(payload), "application/json")
}

// listPayload returns the JSON array carried by data: either data itself
// when it is a bare array, or the value under envelopeKey when data is an
// envelope object. Any other shape is a decode error; list callers degrade
// that to an empty collection.
func listPayload(data []byte, envelopeKey string) ([]byte, error) {
	d := jx.DecodeBytes(data)
	switch d.Next() {
	case jx.Array:
		return data, nil
	case jx.Object:
		var arr []byte
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			if key == envelopeKey && d.Next() == jx.Array {
				raw, err := d.Raw()
				if err != nil {
					return err
				}
				arr = raw
				return nil
			}
			return d.Skip()
		}); err != nil {
			return nil, &Error{Kind: KindDecode, Detail: err.Error()}
		}
		if arr == nil {
			return nil, &Error{Kind: KindDecode, Detail: "envelope missing " + envelopeKey + " array"}
		}
		return arr, nil
	default:
		return nil, &Error{Kind: KindDecode, Detail: "expected array or envelope object"}
	}
}
