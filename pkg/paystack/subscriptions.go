package paystack

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CreateSubscriptionRequest subscribes a customer to a plan.
type CreateSubscriptionRequest struct {
	Customer      string    `json:"customer"`
	Plan          string    `json:"plan"`
	Authorization string    `json:"authorization,omitempty"`
	StartDate     time.Time `json:"start_date,omitzero"`
}

// ListSubscriptionsParams filters GET /subscription.
type ListSubscriptionsParams struct {
	ListOptions
	Customer int64 `json:"customer,omitempty"`
	Plan     int64 `json:"plan,omitempty"`
}

// SubscriptionToggleRequest enables or disables a subscription.
type SubscriptionToggleRequest struct {
	Code  string `json:"code"`
	Token string `json:"token"`
}

// Create creates a subscription.
func (s SubscriptionsService) Create(ctx context.Context, req CreateSubscriptionRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/subscription", req)
}

// List returns subscriptions on the integration.
func (s SubscriptionsService) List(ctx context.Context, params ListSubscriptionsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	setInt64(q, "customer", params.Customer)
	setInt64(q, "plan", params.Plan)
	return call(ctx, s, http.MethodGet, withQuery("/subscription", q), nil)
}

// Fetch returns a subscription by ID or code.
func (s SubscriptionsService) Fetch(ctx context.Context, idOrCode string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/subscription/"+url.PathEscape(idOrCode), nil)
}

// Enable enables a subscription.
func (s SubscriptionsService) Enable(ctx context.Context, req SubscriptionToggleRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/subscription/enable", req)
}

// Disable disables a subscription.
func (s SubscriptionsService) Disable(ctx context.Context, req SubscriptionToggleRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/subscription/disable", req)
}

// GenerateUpdateLink returns a link the customer can use to update their card.
func (s SubscriptionsService) GenerateUpdateLink(ctx context.Context, code string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/subscription/"+url.PathEscape(code)+"/manage/link", nil)
}

// SendUpdateLink emails the card update link to the customer.
func (s SubscriptionsService) SendUpdateLink(ctx context.Context, code string) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/subscription/"+url.PathEscape(code)+"/manage/email", nil)
}
