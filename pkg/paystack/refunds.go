package paystack

import (
	"context"
	"net/http"
	"net/url"
)

// CreateRefundRequest refunds all or part of a transaction.
type CreateRefundRequest struct {
	// Transaction is the reference or ID of the transaction to refund.
	Transaction  string   `json:"transaction"`
	Amount       int64    `json:"amount,omitempty"`
	Currency     Currency `json:"currency,omitempty"`
	CustomerNote string   `json:"customer_note,omitempty"`
	MerchantNote string   `json:"merchant_note,omitempty"`
}

// ListRefundsParams filters GET /refund.
type ListRefundsParams struct {
	ListOptions
	Reference string   `json:"reference,omitempty"`
	Currency  Currency `json:"currency,omitempty"`
}

// Create initiates a refund.
func (s RefundsService) Create(ctx context.Context, req CreateRefundRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/refund", req)
}

// List returns refunds on the integration.
func (s RefundsService) List(ctx context.Context, params ListRefundsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	setString(q, "reference", params.Reference)
	setString(q, "currency", string(params.Currency))
	return call(ctx, s, http.MethodGet, withQuery("/refund", q), nil)
}

// Fetch returns a refund by reference.
func (s RefundsService) Fetch(ctx context.Context, reference string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/refund/"+url.PathEscape(reference), nil)
}
