package paystack

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

const redactedBody = "API request failed (response body redacted)"

// APIError is a non-success response from Paystack.
type APIError struct {
	StatusCode int
	Message    string
	// Code and Type are set by newer Paystack endpoints, e.g. "invalid_params" / "validation_error".
	Code      string
	Type      string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// newAPIError builds an APIError from a failed response body without echoing
// arbitrary payload content back to the caller.
func newAPIError(status int, body []byte, header http.Header) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    redactedBody,
		RequestID:  requestIDFromHeader(header),
	}

	var errResp struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Type    string `json:"type"`
		Errors  any    `json:"errors"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		if status >= 500 {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	apiErr.Code = errResp.Code
	apiErr.Type = errResp.Type
	msg := strings.TrimSpace(errResp.Message)
	if fieldErrors := formatValidationErrors(errResp.Errors); fieldErrors != "" {
		if msg == "" {
			msg = "Validation errors:\n" + fieldErrors
		} else {
			msg += "\nValidation errors:\n" + fieldErrors
		}
	}
	if msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}

// formatValidationErrors flattens an "errors" object of field -> message(s).
func formatValidationErrors(raw any) string {
	errMap, ok := raw.(map[string]any)
	if !ok || len(errMap) == 0 {
		return ""
	}

	var lines []string
	for field, value := range errMap {
		switch v := value.(type) {
		case string:
			lines = append(lines, fmt.Sprintf("  %s: %s", field, v))
		case []any:
			for _, item := range v {
				switch msg := item.(type) {
				case string:
					lines = append(lines, fmt.Sprintf("  %s: %s", field, msg))
				case map[string]any:
					if m, ok := msg["message"].(string); ok {
						lines = append(lines, fmt.Sprintf("  %s: %s", field, m))
					}
				}
			}
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// RateLimitError is returned when Paystack keeps answering 429.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// AuthError represents a local authentication problem, such as a malformed key.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Reason)
}

// CircuitBreakerError indicates the circuit breaker is open.
type CircuitBreakerError struct{}

func (e *CircuitBreakerError) Error() string {
	return "circuit breaker is open, too many recent failures"
}

// IsRateLimitError reports whether err is a rate limit error.
func IsRateLimitError(err error) bool {
	var e *RateLimitError
	return errors.As(err, &e)
}

// IsAuthError reports whether err is an authentication failure, either local
// or a 401 from the API.
func IsAuthError(err error) bool {
	var e *AuthError
	if errors.As(err, &e) {
		return true
	}
	if errors.Is(err, ErrMissingSecretKey) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsCircuitBreakerError reports whether err is a circuit breaker error.
func IsCircuitBreakerError(err error) bool {
	var e *CircuitBreakerError
	return errors.As(err, &e)
}

// IsNotFoundError reports whether err indicates a missing resource.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound ||
			strings.Contains(strings.ToLower(apiErr.Message), "not found")
	}
	return false
}

// ValidateSecretKey checks the shape of a Paystack secret key.
func ValidateSecretKey(key string) error {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return &AuthError{Reason: "secret key is empty"}
	case strings.HasPrefix(key, "pk_"):
		return &AuthError{Reason: "a public key (pk_...) was given; use the secret key (sk_...)"}
	case !strings.HasPrefix(key, "sk_test_") && !strings.HasPrefix(key, "sk_live_"):
		return &AuthError{Reason: "secret key must start with sk_test_ or sk_live_"}
	}
	return nil
}

// IsLiveKey reports whether key authenticates against live mode.
func IsLiveKey(key string) bool {
	return strings.HasPrefix(strings.TrimSpace(key), "sk_live_")
}
