package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// RecipientType is the kind of account a transfer recipient holds.
type RecipientType string

const (
	RecipientNUBAN         RecipientType = "nuban"
	RecipientGhIPSS        RecipientType = "ghipss"
	RecipientMobileMoney   RecipientType = "mobile_money"
	RecipientBasa          RecipientType = "basa"
	RecipientAuthorization RecipientType = "authorization"
)

// CreateRecipientRequest registers a transfer recipient.
type CreateRecipientRequest struct {
	Type              RecipientType `json:"type"`
	Name              string        `json:"name"`
	AccountNumber     string        `json:"account_number,omitempty"`
	BankCode          string        `json:"bank_code,omitempty"`
	Description       string        `json:"description,omitempty"`
	Currency          Currency      `json:"currency,omitempty"`
	AuthorizationCode string        `json:"authorization_code,omitempty"`
	Metadata          Metadata      `json:"metadata,omitempty"`
}

// BulkCreateRecipientsRequest registers several recipients in one call.
type BulkCreateRecipientsRequest struct {
	Batch []CreateRecipientRequest `json:"batch"`
}

// ListRecipientsParams filters GET /transferrecipient.
type ListRecipientsParams struct {
	ListOptions
}

// UpdateRecipientRequest changes a recipient's name or email.
type UpdateRecipientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Create creates a transfer recipient.
func (s RecipientsService) Create(ctx context.Context, req CreateRecipientRequest) (*Response, error) {
	if req.Type == "" {
		return nil, fmt.Errorf("recipient type is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	return call(ctx, s, http.MethodPost, "/transferrecipient", req)
}

// BulkCreate creates multiple transfer recipients.
func (s RecipientsService) BulkCreate(ctx context.Context, req BulkCreateRecipientsRequest) (*Response, error) {
	if len(req.Batch) == 0 {
		return nil, fmt.Errorf("batch is empty")
	}
	return call(ctx, s, http.MethodPost, "/transferrecipient/bulk", req)
}

// List returns transfer recipients.
func (s RecipientsService) List(ctx context.Context, params ListRecipientsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	return call(ctx, s, http.MethodGet, withQuery("/transferrecipient", q), nil)
}

// Fetch returns a recipient by ID or code.
func (s RecipientsService) Fetch(ctx context.Context, idOrCode string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/transferrecipient/"+url.PathEscape(idOrCode), nil)
}

// Update changes a recipient.
func (s RecipientsService) Update(ctx context.Context, idOrCode string, req UpdateRecipientRequest) (*Response, error) {
	return call(ctx, s, http.MethodPut, "/transferrecipient/"+url.PathEscape(idOrCode), req)
}

// Delete sets a recipient inactive.
func (s RecipientsService) Delete(ctx context.Context, idOrCode string) (*Response, error) {
	return call(ctx, s, http.MethodDelete, "/transferrecipient/"+url.PathEscape(idOrCode), nil)
}
