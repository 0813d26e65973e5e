package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Skotchmaster/storefront/internal/logging"
)

const (
	HeaderRequestID = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// TokenSource supplies the bearer token; ok is false for anonymous shoppers.
type TokenSource interface {
	Token(ctx context.Context) (token string, ok bool, err error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(&http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}),
	}
}

func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(10 * time.Second)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
	}
}

type Options struct {
	Headers http.Header
}

// Request sends body as JSON to path and decodes the response into out (when non-nil).
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	return c.RequestWithOptions(ctx, method, path, body, out, Options{})
}

func (c *Client) RequestWithOptions(ctx context.Context, method, path string, body, out any, opts Options) error {
	l := logging.FromContext(ctx)
	if l == slog.Default() {
		l = c.logger
	}
	requestID := uuid.NewString()
	l = l.With("component", "apiclient", "method", method, "path", path, "request_id", requestID)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, vv := range opts.Headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	if c.tokens != nil {
		token, ok, err := c.tokens.Token(ctx)
		if err != nil {
			l.Error("api_request_error", "reason", "cannot read session token", "error", err)
			return fmt.Errorf("read session token: %w", err)
		}
		if ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Error("api_request_error", "status", 0, "error", err)
		return &RequestError{Method: method, Path: path, Message: DefaultErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		rerr := &RequestError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: messageFromBody(raw),
		}
		l.Warn("api_request_error", "status", resp.StatusCode, "error", rerr.Message)
		return rerr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		l.Debug("api request completed", "status", resp.StatusCode)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		l.Error("api_request_error", "status", resp.StatusCode, "reason", "cannot decode response", "error", err)
		return fmt.Errorf("decode response: %w", err)
	}

	l.Debug("api request completed", "status", resp.StatusCode)
	return nil
}
