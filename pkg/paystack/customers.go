package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// CreateCustomerRequest registers a customer.
type CreateCustomerRequest struct {
	Email     string   `json:"email"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Metadata  Metadata `json:"metadata,omitempty"`
}

// ListCustomersParams filters GET /customer.
type ListCustomersParams struct {
	ListOptions
}

// UpdateCustomerRequest changes a customer's profile.
type UpdateCustomerRequest struct {
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Metadata  Metadata `json:"metadata,omitempty"`
}

// ValidateCustomerRequest submits a customer's identity for validation.
type ValidateCustomerRequest struct {
	Country string `json:"country"`
	// Type is the identification type; bank_account and bvn are accepted.
	Type          string `json:"type"`
	Value         string `json:"value,omitempty"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	MiddleName    string `json:"middle_name,omitempty"`
	BVN           string `json:"bvn,omitempty"`
	BankCode      string `json:"bank_code,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
}

// RiskAction whitelists or blacklists a customer.
type RiskAction string

const (
	RiskActionDefault RiskAction = "default"
	RiskActionAllow   RiskAction = "allow"
	RiskActionDeny    RiskAction = "deny"
)

// SetRiskActionRequest changes a customer's risk action.
type SetRiskActionRequest struct {
	// Customer is a customer code or email address.
	Customer   string     `json:"customer"`
	RiskAction RiskAction `json:"risk_action,omitempty"`
}

// DeactivateAuthorizationRequest disables a saved card authorization.
type DeactivateAuthorizationRequest struct {
	AuthorizationCode string `json:"authorization_code"`
}

// Create creates a customer.
func (s CustomersService) Create(ctx context.Context, req CreateCustomerRequest) (*Response, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}
	return call(ctx, s, http.MethodPost, "/customer", req)
}

// List returns customers on the integration.
func (s CustomersService) List(ctx context.Context, params ListCustomersParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	return call(ctx, s, http.MethodGet, withQuery("/customer", q), nil)
}

// Fetch returns a customer by email or customer code.
func (s CustomersService) Fetch(ctx context.Context, emailOrCode string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/customer/"+url.PathEscape(emailOrCode), nil)
}

// Update changes a customer's details.
func (s CustomersService) Update(ctx context.Context, code string, req UpdateCustomerRequest) (*Response, error) {
	return call(ctx, s, http.MethodPut, "/customer/"+url.PathEscape(code), req)
}

// Validate submits identification for a customer.
func (s CustomersService) Validate(ctx context.Context, code string, req ValidateCustomerRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/customer/"+url.PathEscape(code)+"/identification", req)
}

// SetRiskAction whitelists or blacklists a customer.
func (s CustomersService) SetRiskAction(ctx context.Context, req SetRiskActionRequest) (*Response, error) {
	switch req.RiskAction {
	case "", RiskActionDefault, RiskActionAllow, RiskActionDeny:
	default:
		return nil, NewValidationError("risk_action", string(req.RiskAction), []string{"default", "allow", "deny"})
	}
	return call(ctx, s, http.MethodPost, "/customer/set_risk_action", req)
}

// DeactivateAuthorization deactivates a reusable authorization.
func (s CustomersService) DeactivateAuthorization(ctx context.Context, req DeactivateAuthorizationRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/customer/deactivate_authorization", req)
}
