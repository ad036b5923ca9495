// Package backend is the client for the store's REST API. It is the only
// place that knows the wire envelope, the endpoint table, and how transport
// failures map onto the error taxonomy; raw HTTP errors never leave it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/furnimart/storefront/internal/entity"
	"github.com/furnimart/storefront/internal/metrics"
)

func init() {
	// The backend speaks plain JSON numbers for prices.
	decimal.MarshalJSONWithoutQuotes = true
}

// Doer is the transport the client runs on. *http.Client satisfies it;
// tests substitute their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the store backend. All responses other than the payment
// intent are wrapped in a {code, message, content} envelope where code "00"
// means success.
type Client struct {
	baseURL string
	http    Doer
	token   string
}

// New creates a backend client. token may be empty for anonymous browsing.
func New(baseURL string, timeout time.Duration, token string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}
}

// NewWithDoer creates a client on a caller-supplied transport.
func NewWithDoer(baseURL string, doer Doer, token string) *Client {
	return &Client{baseURL: baseURL, http: doer, token: token}
}

// RejectionError is a well-formed backend response with a non-success code.
// It is distinct from a transport failure: the backend received the request
// and said no.
type RejectionError struct {
	Code    string
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("backend rejected request (code %s): %s", e.Code, e.Message)
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Content json.RawMessage `json:"content"`
}

// call performs one enveloped request. endpoint is the stable metric label,
// out (if non-nil) receives the decoded content on success. headers may be
// nil.
func (c *Client) call(ctx context.Context, method, path, endpoint string, headers map[string]string, body, out any) error {
	start := time.Now()
	err := c.doCall(ctx, method, path, headers, body, out)
	metrics.ObserveBackendRequest(endpoint, err, time.Since(start))
	if err != nil {
		slog.Debug("Backend call failed", "endpoint", endpoint, "err", err)
	}
	return err
}

func (c *Client) doCall(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	resp, err := c.roundTrip(ctx, method, path, headers, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", entity.ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: backend returned HTTP %d", entity.ErrNetwork, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: malformed response envelope: %v", entity.ErrNetwork, err)
	}
	if env.Code != "00" {
		return &RejectionError{Code: env.Code, Message: env.Message}
	}
	if out != nil && len(env.Content) > 0 {
		if err := json.Unmarshal(env.Content, out); err != nil {
			return fmt.Errorf("%w: malformed response content: %v", entity.ErrNetwork, err)
		}
	}
	return nil
}

// roundTrip builds and sends one request. The returned error already wraps
// ErrNetwork; the response body is the caller's to close.
func (c *Client) roundTrip(ctx context.Context, method, path string, headers map[string]string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrNetwork, err)
	}
	return resp, nil
}
