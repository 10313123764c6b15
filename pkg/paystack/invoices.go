package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// LineItem is a priced line on an invoice.
type LineItem struct {
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Quantity int    `json:"quantity,omitempty"`
}

// Tax is a tax line on an invoice.
type Tax struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// CreateInvoiceRequest creates a payment request.
type CreateInvoiceRequest struct {
	Customer         string     `json:"customer"`
	Amount           int64      `json:"amount,omitempty"`
	DueDate          time.Time  `json:"due_date,omitzero"`
	Description      string     `json:"description,omitempty"`
	LineItems        []LineItem `json:"line_items,omitempty"`
	Tax              []Tax      `json:"tax,omitempty"`
	Currency         Currency   `json:"currency,omitempty"`
	SendNotification *bool      `json:"send_notification,omitempty"`
	Draft            *bool      `json:"draft,omitempty"`
	HasInvoice       *bool      `json:"has_invoice,omitempty"`
	InvoiceNumber    int        `json:"invoice_number,omitempty"`
	SplitCode        string     `json:"split_code,omitempty"`
}

// ListInvoicesParams filters GET /paymentrequest.
type ListInvoicesParams struct {
	ListOptions
	Customer       string   `json:"customer,omitempty"`
	Status         string   `json:"status,omitempty"`
	Currency       Currency `json:"currency,omitempty"`
	IncludeArchive *bool    `json:"include_archive,omitempty"`
}

// UpdateInvoiceRequest changes a draft or pending payment request.
type UpdateInvoiceRequest struct {
	Customer         string     `json:"customer,omitempty"`
	Amount           int64      `json:"amount,omitempty"`
	DueDate          time.Time  `json:"due_date,omitzero"`
	Description      string     `json:"description,omitempty"`
	LineItems        []LineItem `json:"line_items,omitempty"`
	Tax              []Tax      `json:"tax,omitempty"`
	Currency         Currency   `json:"currency,omitempty"`
	SendNotification *bool      `json:"send_notification,omitempty"`
	Draft            *bool      `json:"draft,omitempty"`
	InvoiceNumber    int        `json:"invoice_number,omitempty"`
	SplitCode        string     `json:"split_code,omitempty"`
}

// Create creates an invoice.
func (s InvoicesService) Create(ctx context.Context, req CreateInvoiceRequest) (*Response, error) {
	if req.Customer == "" {
		return nil, fmt.Errorf("customer is required")
	}
	if req.Amount <= 0 && len(req.LineItems) == 0 {
		return nil, fmt.Errorf("amount or line items are required")
	}
	return call(ctx, s, http.MethodPost, "/paymentrequest", req)
}

// List returns invoices on the integration.
func (s InvoicesService) List(ctx context.Context, params ListInvoicesParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	setString(q, "customer", params.Customer)
	setString(q, "status", params.Status)
	setString(q, "currency", string(params.Currency))
	setBool(q, "include_archive", params.IncludeArchive)
	return call(ctx, s, http.MethodGet, withQuery("/paymentrequest", q), nil)
}

// Fetch returns an invoice by ID or request code.
func (s InvoicesService) Fetch(ctx context.Context, idOrCode string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/paymentrequest/"+url.PathEscape(idOrCode), nil)
}

// Verify returns an invoice along with its payment status.
func (s InvoicesService) Verify(ctx context.Context, code string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/paymentrequest/verify/"+url.PathEscape(code), nil)
}

// Notify sends a reminder for an invoice to the customer.
func (s InvoicesService) Notify(ctx context.Context, code string) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/paymentrequest/notify/"+url.PathEscape(code), nil)
}

// Totals returns invoice totals grouped by status and currency.
func (s InvoicesService) Totals(ctx context.Context) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/paymentrequest/totals", nil)
}

// Finalize finalizes a draft invoice.
func (s InvoicesService) Finalize(ctx context.Context, code string) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/paymentrequest/finalize/"+url.PathEscape(code), nil)
}

// Update changes an invoice.
func (s InvoicesService) Update(ctx context.Context, idOrCode string, req UpdateInvoiceRequest) (*Response, error) {
	return call(ctx, s, http.MethodPut, "/paymentrequest/"+url.PathEscape(idOrCode), req)
}

// Archive hides an invoice from listings.
func (s InvoicesService) Archive(ctx context.Context, code string) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/paymentrequest/archive/"+url.PathEscape(code), nil)
}
