package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CreateDedicatedAccountRequest assigns a dedicated virtual account to a customer.
type CreateDedicatedAccountRequest struct {
	// Customer is the customer ID or code.
	Customer      string `json:"customer"`
	PreferredBank string `json:"preferred_bank,omitempty"`
	Subaccount    string `json:"subaccount,omitempty"`
	SplitCode     string `json:"split_code,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// ListDedicatedAccountsParams filters GET /dedicated_account.
type ListDedicatedAccountsParams struct {
	Active       *bool    `json:"active,omitempty"`
	Currency     Currency `json:"currency,omitempty"`
	ProviderSlug string   `json:"provider_slug,omitempty"`
	BankID       string   `json:"bank_id,omitempty"`
	Customer     string   `json:"customer,omitempty"`
}

// SplitDedicatedAccountRequest attaches a split or subaccount to a customer's dedicated account.
type SplitDedicatedAccountRequest struct {
	Customer      string `json:"customer"`
	Subaccount    string `json:"subaccount,omitempty"`
	SplitCode     string `json:"split_code,omitempty"`
	PreferredBank string `json:"preferred_bank,omitempty"`
}

// RemoveDedicatedAccountSplitRequest names the account whose split is removed.
type RemoveDedicatedAccountSplitRequest struct {
	AccountNumber string `json:"account_number"`
}

// RequeryDedicatedAccountParams asks Paystack to check a dedicated account for new transfers.
type RequeryDedicatedAccountParams struct {
	AccountNumber string    `json:"account_number"`
	ProviderSlug  string    `json:"provider_slug"`
	Date          time.Time `json:"date,omitzero"`
}

// Create creates a dedicated virtual account.
func (s DedicatedAccountsService) Create(ctx context.Context, req CreateDedicatedAccountRequest) (*Response, error) {
	if strings.TrimSpace(req.Customer) == "" {
		return nil, fmt.Errorf("customer is required")
	}
	return call(ctx, s, http.MethodPost, "/dedicated_account", req)
}

// List returns dedicated accounts on the integration.
func (s DedicatedAccountsService) List(ctx context.Context, params ListDedicatedAccountsParams) (*Response, error) {
	q := url.Values{}
	setBool(q, "active", params.Active)
	setString(q, "currency", string(params.Currency))
	setString(q, "provider_slug", params.ProviderSlug)
	setString(q, "bank_id", params.BankID)
	setString(q, "customer", params.Customer)
	return call(ctx, s, http.MethodGet, withQuery("/dedicated_account", q), nil)
}

// Fetch returns a dedicated account by ID.
func (s DedicatedAccountsService) Fetch(ctx context.Context, id int64) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/dedicated_account/"+strconv.FormatInt(id, 10), nil)
}

// Deactivate deactivates a dedicated account.
func (s DedicatedAccountsService) Deactivate(ctx context.Context, id int64) (*Response, error) {
	return call(ctx, s, http.MethodDelete, "/dedicated_account/"+strconv.FormatInt(id, 10), nil)
}

// SplitTransaction splits payments received on a dedicated account.
func (s DedicatedAccountsService) SplitTransaction(ctx context.Context, req SplitDedicatedAccountRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/dedicated_account/split", req)
}

// RemoveSplit removes the split from a dedicated account.
func (s DedicatedAccountsService) RemoveSplit(ctx context.Context, req RemoveDedicatedAccountSplitRequest) (*Response, error) {
	if strings.TrimSpace(req.AccountNumber) == "" {
		return nil, fmt.Errorf("account number is required")
	}
	return call(ctx, s, http.MethodDelete, "/dedicated_account/split", req)
}

// Providers returns the banks that can issue dedicated accounts.
func (s DedicatedAccountsService) Providers(ctx context.Context) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/dedicated_account/available_providers", nil)
}

// Requery checks a dedicated account for transfers that have not been reported yet.
func (s DedicatedAccountsService) Requery(ctx context.Context, params RequeryDedicatedAccountParams) (*Response, error) {
	q := url.Values{}
	setString(q, "account_number", params.AccountNumber)
	setString(q, "provider_slug", params.ProviderSlug)
	if !params.Date.IsZero() {
		q.Set("date", params.Date.Format(time.DateOnly))
	}
	return call(ctx, s, http.MethodGet, withQuery("/dedicated_account/requery", q), nil)
}
