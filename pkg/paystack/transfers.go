package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// InitiateTransferRequest sends money from the balance to a recipient.
type InitiateTransferRequest struct {
	// Source is always "balance".
	Source    string   `json:"source"`
	Amount    int64    `json:"amount"`
	Recipient string   `json:"recipient"`
	Reason    string   `json:"reason,omitempty"`
	Currency  Currency `json:"currency,omitempty"`
	Reference string   `json:"reference,omitempty"`
}

// FinalizeTransferRequest completes a transfer that is waiting on an OTP.
type FinalizeTransferRequest struct {
	TransferCode string `json:"transfer_code"`
	OTP          string `json:"otp"`
}

// BulkTransferItem is one transfer in a bulk transfer.
type BulkTransferItem struct {
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// BulkTransferRequest queues several transfers at once.
type BulkTransferRequest struct {
	Source    string             `json:"source"`
	Currency  Currency           `json:"currency,omitempty"`
	Transfers []BulkTransferItem `json:"transfers"`
}

// ListTransfersParams filters GET /transfer.
type ListTransfersParams struct {
	ListOptions
	Customer string `json:"customer,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Initiate starts a transfer. An empty source defaults to the balance.
func (s TransfersService) Initiate(ctx context.Context, req InitiateTransferRequest) (*Response, error) {
	if req.Source == "" {
		req.Source = "balance"
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	if strings.TrimSpace(req.Recipient) == "" {
		return nil, fmt.Errorf("recipient is required")
	}
	return call(ctx, s, http.MethodPost, "/transfer", req)
}

// Finalize completes a transfer with the OTP sent to the business phone.
func (s TransfersService) Finalize(ctx context.Context, req FinalizeTransferRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/transfer/finalize_transfer", req)
}

// Bulk initiates a batch of transfers.
func (s TransfersService) Bulk(ctx context.Context, req BulkTransferRequest) (*Response, error) {
	if req.Source == "" {
		req.Source = "balance"
	}
	if len(req.Transfers) == 0 {
		return nil, fmt.Errorf("at least one transfer is required")
	}
	return call(ctx, s, http.MethodPost, "/transfer/bulk", req)
}

// List returns transfers on the integration.
func (s TransfersService) List(ctx context.Context, params ListTransfersParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	setString(q, "customer", params.Customer)
	setString(q, "status", params.Status)
	return call(ctx, s, http.MethodGet, withQuery("/transfer", q), nil)
}

// Fetch returns a transfer by ID or code.
func (s TransfersService) Fetch(ctx context.Context, idOrCode string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/transfer/"+url.PathEscape(idOrCode), nil)
}

// Verify returns the status of a transfer by reference.
func (s TransfersService) Verify(ctx context.Context, reference string) (*Response, error) {
	return verifyTransfer(ctx, s, reference)
}

func verifyTransfer(ctx context.Context, r Requester, reference string) (*Response, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, fmt.Errorf("reference is required")
	}
	return call(ctx, r, http.MethodGet, "/transfer/verify/"+url.PathEscape(reference), nil)
}
