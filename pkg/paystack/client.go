package paystack

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/paystack/paystack-cli/internal/debug"
)

const (
	// DefaultBaseURL is the Paystack API root.
	DefaultBaseURL = "https://api.paystack.co"
	DefaultTimeout = 30 * time.Second
)

// ErrMissingSecretKey is returned when a request is attempted without a secret key.
var ErrMissingSecretKey = errors.New("paystack: secret key is not set")

// Client is the Paystack API client and the entry point to every resource.
//
// A Client is built once from a secret key and is safe for concurrent use.
// The circuit breaker state lives for the lifetime of the client; call
// ResetCircuitBreaker when reusing a client across unrelated sessions.
type Client struct {
	BaseURL            string
	SecretKey          string
	HTTP               *http.Client
	UserAgent          string
	IdempotencyKey     string
	IdempotencyKeyFunc func() string
	RetryConfig        RetryConfig

	circuitBreaker *circuitBreaker
	rateLimitMu    sync.Mutex
	lastRateLimit  *RateLimitInfo
}

var (
	_ Requester    = (*Client)(nil)
	_ PathResolver = (*Client)(nil)
	_ HTTPExecutor = (*Client)(nil)
)

// New creates a client for the live Paystack API authenticated with secretKey.
func New(secretKey string) *Client {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12

	retryCfg := DefaultRetryConfig()
	return &Client{
		BaseURL:     DefaultBaseURL,
		SecretKey:   strings.TrimSpace(secretKey),
		RetryConfig: retryCfg,
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
		circuitBreaker: &circuitBreaker{
			threshold: retryCfg.CircuitBreakerThreshold,
			resetTime: retryCfg.CircuitBreakerResetTime,
		},
	}
}

// NewWithBaseURL creates a client that talks to baseURL instead of the live API.
func NewWithBaseURL(baseURL, secretKey string) *Client {
	c := New(secretKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		c.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return c
}

// ResetCircuitBreaker clears failure counts and closes the circuit.
func (c *Client) ResetCircuitBreaker() {
	if c.circuitBreaker != nil {
		c.circuitBreaker.reset()
	}
}

// SetRetryConfig updates the retry configuration and aligns circuit breaker settings.
func (c *Client) SetRetryConfig(cfg RetryConfig) {
	c.RetryConfig = cfg
	if c.circuitBreaker != nil {
		c.circuitBreaker.mu.Lock()
		c.circuitBreaker.threshold = cfg.CircuitBreakerThreshold
		c.circuitBreaker.resetTime = cfg.CircuitBreakerResetTime
		c.circuitBreaker.mu.Unlock()
	}
}

// apiPath joins path onto the base URL.
func (c *Client) apiPath(path string) string {
	if path != "" && path[0] != '/' {
		path = "/" + path
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimSuffix(base, "/") + path
}

// withQuery appends an encoded query string to path when query has values.
func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + query.Encode()
}

// do sends a request to url and decodes the Paystack envelope.
func (c *Client) do(ctx context.Context, method, url string, body any) (*Response, error) {
	respBody, header, status, err := c.executeRequest(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(respBody, status, requestIDFromHeader(header))
}

// Do performs a request against an arbitrary API path. query is encoded onto
// the URL and body, when non-nil, is sent as JSON.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	return c.do(ctx, method, c.apiPath(withQuery(path, query)), body)
}

// DoRaw performs a request and returns the raw body, headers, and status code.
// API errors still carry the body so callers can print it.
func (c *Client) DoRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, http.Header, int, error) {
	return c.executeRequest(ctx, method, c.apiPath(withQuery(path, query)), body)
}

func decodeEnvelope(body []byte, status int, requestID string) (*Response, error) {
	var resp Response
	if len(bytes.TrimSpace(body)) == 0 {
		return &resp, nil
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
	}
	// Bodies without a status key (raw paths, empty objects) pass through.
	var envelope struct {
		Status *bool `json:"status"`
	}
	_ = json.Unmarshal(body, &envelope)
	if envelope.Status != nil && !*envelope.Status {
		msg := resp.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return nil, &APIError{
			StatusCode: status,
			Message:    msg,
			RequestID:  requestID,
		}
	}
	resp.raw = body
	return &resp, nil
}

// executeRequest marshals body once and runs the retrying request loop.
func (c *Client) executeRequest(ctx context.Context, method, url string, body any) ([]byte, http.Header, int, error) {
	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}
	return c.executeRequestWithBody(ctx, method, url, jsonBody)
}

func (c *Client) executeRequestWithBody(ctx context.Context, method, url string, body []byte) ([]byte, http.Header, int, error) {
	if c.SecretKey == "" {
		return nil, nil, 0, ErrMissingSecretKey
	}
	if c.circuitBreaker != nil {
		ok, trial := c.circuitBreaker.allow()
		if !ok {
			return nil, nil, 0, &CircuitBreakerError{}
		}
		if trial {
			defer c.circuitBreaker.endTrial()
		}
	}

	idempotencyKey := c.IdempotencyKey
	if idempotencyKey == "" && c.IdempotencyKeyFunc != nil {
		idempotencyKey = c.IdempotencyKeyFunc()
	}

	safeMethod := method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
	isIdempotent := safeMethod || idempotencyKey != ""

	var retries429, retries5xx int
	attempt := 0

	for {
		attempt++
		start := time.Now()
		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+c.SecretKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}
		if idempotencyKey != "" && !safeMethod {
			req.Header.Set("Idempotency-Key", idempotencyKey)
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			if debug.IsEnabled(ctx) {
				slog.Debug("request failed", "method", method, "url", redactURL(url), "attempt", attempt, "error", err)
			}
			return nil, nil, 0, fmt.Errorf("request failed: %w", err)
		}

		respBody, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, nil, 0, fmt.Errorf("failed to read response: %w", err)
		}
		c.recordRateLimit(resp.Header)
		if debug.IsEnabled(ctx) {
			slog.Debug("request complete", "method", method, "url", redactURL(url), "status", resp.StatusCode, "attempt", attempt, "duration", time.Since(start))
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter, hasRetryAfter := retryAfterDuration(resp.Header)
			if !hasRetryAfter {
				retryAfter = c.RetryConfig.RateLimitBaseDelay * time.Duration(1<<retries429)
			}
			if !isIdempotent || retries429 >= c.RetryConfig.MaxRateLimitRetries {
				return respBody, resp.Header, resp.StatusCode, &RateLimitError{RetryAfter: retryAfter}
			}
			slog.Info("rate limited, retrying", "delay", retryAfter, "attempt", retries429+1)
			if err := sleepWithContext(ctx, retryAfter); err != nil {
				return nil, nil, 0, err
			}
			retries429++
			continue
		}

		if resp.StatusCode >= 500 {
			if c.circuitBreaker != nil {
				c.circuitBreaker.recordFailure()
			}
			if isIdempotent && retries5xx < c.RetryConfig.Max5xxRetries {
				slog.Info("server error, retrying", "status", resp.StatusCode)
				if err := sleepWithContext(ctx, c.RetryConfig.ServerErrorRetryDelay); err != nil {
					return nil, nil, 0, err
				}
				retries5xx++
				continue
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return respBody, resp.Header, resp.StatusCode, newAPIError(resp.StatusCode, respBody, resp.Header)
		}

		if c.circuitBreaker != nil {
			c.circuitBreaker.recordSuccess()
		}
		return respBody, resp.Header, resp.StatusCode, nil
	}
}

func requestIDFromHeader(header http.Header) string {
	if header == nil {
		return ""
	}
	for _, key := range []string{"X-Request-Id", "X-Paystack-Request-Id", "Cf-Ray"} {
		if id := strings.TrimSpace(header.Get(key)); id != "" {
			return id
		}
	}
	return ""
}

// redactURL strips query values that could carry customer data from debug logs.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}
	q := u.Query()
	for key := range q {
		switch key {
		case "customer", "account_number", "email":
			q.Set(key, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
