package paystack

import (
	"context"
	"net/http"
	"net/url"
)

// CreateSubaccountRequest creates a settlement subaccount.
type CreateSubaccountRequest struct {
	BusinessName        string   `json:"business_name"`
	SettlementBank      string   `json:"settlement_bank"`
	AccountNumber       string   `json:"account_number"`
	PercentageCharge    float64  `json:"percentage_charge"`
	Description         string   `json:"description,omitempty"`
	PrimaryContactEmail string   `json:"primary_contact_email,omitempty"`
	PrimaryContactName  string   `json:"primary_contact_name,omitempty"`
	PrimaryContactPhone string   `json:"primary_contact_phone,omitempty"`
	Metadata            Metadata `json:"metadata,omitempty"`
}

// ListSubaccountsParams filters GET /subaccount.
type ListSubaccountsParams struct {
	ListOptions
}

// UpdateSubaccountRequest changes a subaccount.
type UpdateSubaccountRequest struct {
	BusinessName        string   `json:"business_name,omitempty"`
	SettlementBank      string   `json:"settlement_bank,omitempty"`
	AccountNumber       string   `json:"account_number,omitempty"`
	Active              *bool    `json:"active,omitempty"`
	PercentageCharge    float64  `json:"percentage_charge,omitempty"`
	Description         string   `json:"description,omitempty"`
	PrimaryContactEmail string   `json:"primary_contact_email,omitempty"`
	PrimaryContactName  string   `json:"primary_contact_name,omitempty"`
	PrimaryContactPhone string   `json:"primary_contact_phone,omitempty"`
	SettlementSchedule  string   `json:"settlement_schedule,omitempty"`
	Metadata            Metadata `json:"metadata,omitempty"`
}

// Create creates a subaccount.
func (s SubaccountsService) Create(ctx context.Context, req CreateSubaccountRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/subaccount", req)
}

// List returns subaccounts on the integration.
func (s SubaccountsService) List(ctx context.Context, params ListSubaccountsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	return call(ctx, s, http.MethodGet, withQuery("/subaccount", q), nil)
}

// Fetch returns a subaccount by ID or code.
func (s SubaccountsService) Fetch(ctx context.Context, idOrCode string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/subaccount/"+url.PathEscape(idOrCode), nil)
}

// Update changes a subaccount.
func (s SubaccountsService) Update(ctx context.Context, idOrCode string, req UpdateSubaccountRequest) (*Response, error) {
	return call(ctx, s, http.MethodPut, "/subaccount/"+url.PathEscape(idOrCode), req)
}
