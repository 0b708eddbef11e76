package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultBaseURL = "https://api.stripe.com/v1"

// requestTimeout bounds a single call; the polling budget is managed by the
// caller and must not be consumed by one hung request.
const requestTimeout = 30 * time.Second

// Client performs authenticated calls against the Stripe REST API. It makes a
// single best-effort attempt per call; retry policy lives with the callers.
type Client struct {
	http *resty.Client
}

func NewClient(apiKey string) *Client {
	rc := resty.NewWithClient(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}).
		SetBaseURL(defaultBaseURL).
		SetBasicAuth(apiKey, "").
		SetTimeout(requestTimeout).
		SetHeader("User-Agent", "stripe-testbed-go/0.1")
	return &Client{http: rc}
}

// WithBaseURL points the client at a different API host, e.g. a test server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.http.SetBaseURL(baseURL)
	return c
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(path)
	return c.decode(resp, err, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, headers map[string]string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetFormDataFromValues(form).
		Post(path)
	return c.decode(resp, err, out)
}

func (c *Client) decode(resp *resty.Response, err error, out any) error {
	if err != nil {
		return fmt.Errorf("call stripe: %w", err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
