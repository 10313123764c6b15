package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paystack/paystack-cli/internal/config"
	"github.com/paystack/paystack-cli/internal/resolve"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

// HandleError renders err as a user-facing message with suggestions.
func HandleError(err error) string {
	if err == nil {
		return ""
	}

	var msg strings.Builder

	var apiErr *paystack.APIError
	var rateLimitErr *paystack.RateLimitError
	var circuitBreakerErr *paystack.CircuitBreakerError
	var authErr *paystack.AuthError
	var ambiguous *resolve.AmbiguousError
	var structured *paystack.StructuredError

	switch {
	case errors.Is(err, config.ErrNotConfigured):
		msg.WriteString("No Paystack credentials found.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Run: paystack auth login\n")
		msg.WriteString("  - Or export PAYSTACK_SECRET_KEY=sk_test_...\n")

	case errors.As(err, &rateLimitErr):
		msg.WriteString("Rate limit exceeded.\n\n")
		msg.WriteString("Suggestions:\n")
		fmt.Fprintf(&msg, "  - Wait %s and retry\n", rateLimitErr.RetryAfter)
		msg.WriteString("  - Reduce request frequency or --concurrency\n")

	case errors.As(err, &circuitBreakerErr):
		msg.WriteString("Requests paused (circuit breaker open).\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - The API has failed several times in a row\n")
		msg.WriteString("  - Wait 30 seconds and retry\n")
		msg.WriteString("  - Check https://status.paystack.com\n")

	case errors.As(err, &authErr):
		fmt.Fprintf(&msg, "Authentication failed: %s\n\n", authErr.Reason)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Run: paystack auth login\n")
		msg.WriteString("  - Copy the secret key from Settings > API Keys & Webhooks on the dashboard\n")

	case errors.As(err, &apiErr):
		fmt.Fprintf(&msg, "API error (HTTP %d): %s\n\n", apiErr.StatusCode, apiErr.Message)
		msg.WriteString(suggestionsForStatusCode(apiErr.StatusCode))
		if apiErr.RequestID != "" {
			fmt.Fprintf(&msg, "\nRequest ID: %s\n", apiErr.RequestID)
		}

	case errors.As(err, &ambiguous):
		fmt.Fprintf(&msg, "Error: %s\n\n", ambiguous.Error())
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Pass the bank code instead, e.g. --bank-code 058\n")
		msg.WriteString("  - Run: paystack banks resolve <name>\n")

	case errors.As(err, &structured):
		fmt.Fprintf(&msg, "Error: %s\n", structured.Message)
		if structured.Suggestion != "" {
			fmt.Fprintf(&msg, "\nSuggestion: %s\n", structured.Suggestion)
		}

	case strings.Contains(err.Error(), "connection refused"):
		msg.WriteString("Connection refused.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the base URL: paystack auth status\n")
		msg.WriteString("  - Check your network connection\n")

	case strings.Contains(err.Error(), "no such host"):
		msg.WriteString("DNS resolution failed.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the base URL spelling\n")
		msg.WriteString("  - Verify your DNS settings\n")

	default:
		fmt.Fprintf(&msg, "Error: %s\n", err.Error())
	}

	return msg.String()
}

func suggestionsForStatusCode(code int) string {
	var s strings.Builder
	s.WriteString("Suggestions:\n")

	switch code {
	case 400:
		s.WriteString("  - Check your request parameters\n")
		s.WriteString("  - Use --dry-run to see the request body\n")
	case 401:
		s.WriteString("  - Your secret key may be invalid or revoked\n")
		s.WriteString("  - Run: paystack auth login\n")
	case 403:
		s.WriteString("  - This feature may not be enabled on your integration\n")
		s.WriteString("  - Contact Paystack support to enable it\n")
	case 404:
		s.WriteString("  - The resource doesn't exist\n")
		s.WriteString("  - Check you are using the right key (test vs live)\n")
	case 422:
		s.WriteString("  - Validation failed; check your input values\n")
	case 429:
		s.WriteString("  - Too many requests; wait and retry\n")
	case 500, 502, 503, 504:
		s.WriteString("  - Server error; not your fault\n")
		s.WriteString("  - Wait and retry\n")
	default:
		s.WriteString("  - Use --debug for more details\n")
	}

	return s.String()
}
