// Package restclient wraps outbound HTTP dispatch against the Eleve.ia API
// (and the WhatsApp gateway): auth header injection, JSON content type,
// request IDs, fixed timeout and error normalization. Requests are never
// retried automatically; a 401 is surfaced as-is for the caller to route
// back to login.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/eleveia/eleve-go/core"
)

// TokenSource yields the credential attached to outgoing requests. When no
// token exists the Authorization header is omitted entirely. Sources that
// fetch their token remotely derive from the request context, so a
// cancelled request does not leave a token lookup running.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// TokenSourceFunc adapts a func to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) (string, bool)

func (f TokenSourceFunc) Token(ctx context.Context) (string, bool) { return f(ctx) }

type (
	Options struct {
		BaseURL string
		Timeout time.Duration
		Tokens  TokenSource
		Logger  core.Logger
		Metrics *Metrics

		// HTTPClient overrides the underlying client; mainly for tests.
		HTTPClient *http.Client
	}

	Client struct {
		base    string
		http    *http.Client
		tokens  TokenSource
		log     core.Logger
		metrics *Metrics
	}
)

const defaultTimeout = 30 * time.Second

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Timeout == 0 {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient.Timeout = timeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		tokens:  opts.Tokens,
		log:     logger,
		metrics: opts.Metrics,
	}
}

func (c *Client) Get(ctx context.Context, path string, params url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) Patch(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// GetRaw fetches a non-JSON payload (e.g. a CSV export) as-is.
func (c *Client) GetRaw(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, path, params, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, in, out interface{}) error {
	body, err := c.doRaw(ctx, method, path, params, in)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "restclient: decoding %s %s response", method, path)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, params url.Values, in interface{}) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, errors.Wrapf(err, "restclient: encoding %s %s request", method, path)
		}
		reqBody = bytes.NewReader(data)
	}

	reqURL := c.base + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "restclient: building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok && token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(method, path, 0, time.Since(start))
		c.log.Warn("restclient: request failed", map[string]interface{}{"method": method, "path": path, "error": err.Error()})
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	c.metrics.observe(method, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newAPIError(resp.StatusCode, respBody)
		c.log.Debug("restclient: request rejected", map[string]interface{}{
			"method": method, "path": path, "status": resp.StatusCode, "message": apiErr.Message,
		})
		return nil, apiErr
	}
	return respBody, nil
}
