package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// BulkChargeItem is one authorization to charge in a batch.
type BulkChargeItem struct {
	Authorization string `json:"authorization"`
	Amount        int64  `json:"amount"`
	Reference     string `json:"reference,omitempty"`
}

// ListBulkChargesParams filters GET /bulkcharge.
type ListBulkChargesParams struct {
	ListOptions
}

// BulkChargeChargesParams filters the charges in a batch.
type BulkChargeChargesParams struct {
	ListOptions
	// Status is pending, success, or failed.
	Status string `json:"status,omitempty"`
}

// Initiate queues a batch of authorization charges.
func (s BulkChargesService) Initiate(ctx context.Context, items []BulkChargeItem) (*Response, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one charge is required")
	}
	return call(ctx, s, http.MethodPost, "/bulkcharge", items)
}

// List returns bulk charge batches.
func (s BulkChargesService) List(ctx context.Context, params ListBulkChargesParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	return call(ctx, s, http.MethodGet, withQuery("/bulkcharge", q), nil)
}

// Fetch returns a batch by ID or code.
func (s BulkChargesService) Fetch(ctx context.Context, idOrCode string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/bulkcharge/"+url.PathEscape(idOrCode), nil)
}

// Charges returns the charges in a batch.
func (s BulkChargesService) Charges(ctx context.Context, idOrCode string, params BulkChargeChargesParams) (*Response, error) {
	switch params.Status {
	case "", "pending", "success", "failed":
	default:
		return nil, NewValidationError("status", params.Status, []string{"pending", "success", "failed"})
	}
	q := url.Values{}
	params.apply(q)
	setString(q, "status", params.Status)
	return call(ctx, s, http.MethodGet, withQuery("/bulkcharge/"+url.PathEscape(idOrCode)+"/charges", q), nil)
}

// Pause pauses processing of a batch.
func (s BulkChargesService) Pause(ctx context.Context, code string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/bulkcharge/pause/"+url.PathEscape(code), nil)
}

// Resume resumes a paused batch.
func (s BulkChargesService) Resume(ctx context.Context, code string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/bulkcharge/resume/"+url.PathEscape(code), nil)
}
