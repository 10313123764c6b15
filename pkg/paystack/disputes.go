package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DisputeStatus is the state of a dispute.
type DisputeStatus string

const (
	DisputeAwaitingMerchantFeedback DisputeStatus = "awaiting-merchant-feedback"
	DisputeAwaitingBankFeedback     DisputeStatus = "awaiting-bank-feedback"
	DisputePending                  DisputeStatus = "pending"
	DisputeResolved                 DisputeStatus = "resolved"
)

// ListDisputesParams filters GET /dispute and GET /dispute/export.
type ListDisputesParams struct {
	ListOptions
	Transaction string        `json:"transaction,omitempty"`
	Status      DisputeStatus `json:"status,omitempty"`
}

// UpdateDisputeRequest records a refund amount on a dispute.
type UpdateDisputeRequest struct {
	RefundAmount     int64  `json:"refund_amount"`
	UploadedFilename string `json:"uploaded_filename,omitempty"`
}

// DisputeEvidenceRequest supplies the merchant's evidence for a dispute.
type DisputeEvidenceRequest struct {
	CustomerEmail   string    `json:"customer_email"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	ServiceDetails  string    `json:"service_details"`
	DeliveryAddress string    `json:"delivery_address,omitempty"`
	DeliveryDate    time.Time `json:"delivery_date,omitzero"`
}

// ResolveDisputeRequest closes a dispute.
type ResolveDisputeRequest struct {
	// Resolution is merchant-accepted or declined.
	Resolution       string `json:"resolution"`
	Message          string `json:"message"`
	RefundAmount     int64  `json:"refund_amount"`
	UploadedFilename string `json:"uploaded_filename"`
	Evidence         int64  `json:"evidence,omitempty"`
}

func (p ListDisputesParams) query() url.Values {
	q := url.Values{}
	p.apply(q)
	setString(q, "transaction", p.Transaction)
	setString(q, "status", string(p.Status))
	return q
}

// List returns disputes filed against the integration.
func (s DisputesService) List(ctx context.Context, params ListDisputesParams) (*Response, error) {
	return call(ctx, s, http.MethodGet, withQuery("/dispute", params.query()), nil)
}

// Fetch returns a dispute by ID.
func (s DisputesService) Fetch(ctx context.Context, id string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/dispute/"+url.PathEscape(id), nil)
}

// ListTransactionDisputes returns the disputes on one transaction.
func (s DisputesService) ListTransactionDisputes(ctx context.Context, transactionID string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/dispute/transaction/"+url.PathEscape(transactionID), nil)
}

// Update changes the refund amount on a dispute.
func (s DisputesService) Update(ctx context.Context, id string, req UpdateDisputeRequest) (*Response, error) {
	return call(ctx, s, http.MethodPut, "/dispute/"+url.PathEscape(id), req)
}

// AddEvidence submits evidence for a dispute.
func (s DisputesService) AddEvidence(ctx context.Context, id string, req DisputeEvidenceRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/dispute/"+url.PathEscape(id)+"/evidence", req)
}

// UploadURL returns a signed URL for uploading a dispute document.
func (s DisputesService) UploadURL(ctx context.Context, id, filename string) (*Response, error) {
	if filename == "" {
		return nil, fmt.Errorf("upload filename is required")
	}
	q := url.Values{}
	q.Set("upload_filename", filename)
	return call(ctx, s, http.MethodGet, withQuery("/dispute/"+url.PathEscape(id)+"/upload_url", q), nil)
}

// Resolve resolves a dispute.
func (s DisputesService) Resolve(ctx context.Context, id string, req ResolveDisputeRequest) (*Response, error) {
	switch req.Resolution {
	case "merchant-accepted", "declined":
	default:
		return nil, NewValidationError("resolution", req.Resolution, []string{"merchant-accepted", "declined"})
	}
	return call(ctx, s, http.MethodPut, "/dispute/"+url.PathEscape(id)+"/resolve", req)
}

// Export returns a download link for a CSV of disputes.
func (s DisputesService) Export(ctx context.Context, params ListDisputesParams) (*Response, error) {
	return call(ctx, s, http.MethodGet, withQuery("/dispute/export", params.query()), nil)
}
