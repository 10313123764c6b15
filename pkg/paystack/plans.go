package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
)

// Interval is how often a plan bills its subscribers.
type Interval string

const (
	Hourly     Interval = "hourly"
	Daily      Interval = "daily"
	Weekly     Interval = "weekly"
	Monthly    Interval = "monthly"
	Quarterly  Interval = "quarterly"
	Biannually Interval = "biannually"
	Annually   Interval = "annually"
)

// Intervals lists the supported billing intervals.
var Intervals = []string{
	string(Hourly), string(Daily), string(Weekly), string(Monthly),
	string(Quarterly), string(Biannually), string(Annually),
}

// CreatePlanRequest creates a subscription plan.
type CreatePlanRequest struct {
	Name         string   `json:"name"`
	Amount       int64    `json:"amount"`
	Interval     Interval `json:"interval"`
	Description  string   `json:"description,omitempty"`
	SendInvoices *bool    `json:"send_invoices,omitempty"`
	SendSMS      *bool    `json:"send_sms,omitempty"`
	Currency     Currency `json:"currency,omitempty"`
	InvoiceLimit int      `json:"invoice_limit,omitempty"`
}

// ListPlansParams filters GET /plan.
type ListPlansParams struct {
	ListOptions
	Status   string   `json:"status,omitempty"`
	Interval Interval `json:"interval,omitempty"`
	Amount   int64    `json:"amount,omitempty"`
}

// UpdatePlanRequest changes a plan. Existing subscriptions keep their terms
// unless UpdateExistingSubscriptions is set.
type UpdatePlanRequest struct {
	Name                        string   `json:"name,omitempty"`
	Amount                      int64    `json:"amount,omitempty"`
	Interval                    Interval `json:"interval,omitempty"`
	Description                 string   `json:"description,omitempty"`
	SendInvoices                *bool    `json:"send_invoices,omitempty"`
	SendSMS                     *bool    `json:"send_sms,omitempty"`
	Currency                    Currency `json:"currency,omitempty"`
	InvoiceLimit                int      `json:"invoice_limit,omitempty"`
	UpdateExistingSubscriptions *bool    `json:"update_existing_subscriptions,omitempty"`
}

func validInterval(i Interval) bool {
	return slices.Contains(Intervals, string(i))
}

// Create creates a plan.
func (s PlansService) Create(ctx context.Context, req CreatePlanRequest) (*Response, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !validInterval(req.Interval) {
		return nil, NewValidationError("interval", string(req.Interval), Intervals)
	}
	return call(ctx, s, http.MethodPost, "/plan", req)
}

// List returns plans on the integration.
func (s PlansService) List(ctx context.Context, params ListPlansParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	setString(q, "status", params.Status)
	setString(q, "interval", string(params.Interval))
	setInt64(q, "amount", params.Amount)
	return call(ctx, s, http.MethodGet, withQuery("/plan", q), nil)
}

// Fetch returns a plan by ID or code.
func (s PlansService) Fetch(ctx context.Context, idOrCode string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/plan/"+url.PathEscape(idOrCode), nil)
}

// Update changes a plan.
func (s PlansService) Update(ctx context.Context, idOrCode string, req UpdatePlanRequest) (*Response, error) {
	if req.Interval != "" && !validInterval(req.Interval) {
		return nil, NewValidationError("interval", string(req.Interval), Intervals)
	}
	return call(ctx, s, http.MethodPut, "/plan/"+url.PathEscape(idOrCode), req)
}
