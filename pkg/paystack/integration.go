package paystack

import (
	"context"
	"fmt"
	"net/http"
)

// PaymentSessionTimeout returns how long a checkout session stays open, in seconds.
func (s IntegrationService) PaymentSessionTimeout(ctx context.Context) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/integration/payment_session_timeout", nil)
}

// UpdatePaymentSessionTimeout sets the checkout session timeout in seconds. Zero disables it.
func (s IntegrationService) UpdatePaymentSessionTimeout(ctx context.Context, timeout int) (*Response, error) {
	if timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative")
	}
	return call(ctx, s, http.MethodPut, "/integration/payment_session_timeout", map[string]int{"timeout": timeout})
}
