package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// SplitShare assigns a share of a split payment to a subaccount.
type SplitShare struct {
	Subaccount string `json:"subaccount"`
	Share      int64  `json:"share"`
}

// CreateSplitRequest creates a multi-split configuration.
type CreateSplitRequest struct {
	Name string `json:"name"`
	// Type is percentage or flat.
	Type        string       `json:"type"`
	Currency    Currency     `json:"currency"`
	Subaccounts []SplitShare `json:"subaccounts"`
	// BearerType is subaccount, account, all-proportional, or all.
	BearerType       string `json:"bearer_type"`
	BearerSubaccount string `json:"bearer_subaccount,omitempty"`
}

// ListSplitsParams filters GET /split.
type ListSplitsParams struct {
	ListOptions
	Name   string `json:"name,omitempty"`
	Active *bool  `json:"active,omitempty"`
	SortBy string `json:"sort_by,omitempty"`
}

// UpdateSplitRequest changes the settings of a split.
type UpdateSplitRequest struct {
	Name             string `json:"name,omitempty"`
	Active           *bool  `json:"active,omitempty"`
	BearerType       string `json:"bearer_type,omitempty"`
	BearerSubaccount string `json:"bearer_subaccount,omitempty"`
}

// RemoveSplitSubaccountRequest names the subaccount to drop from a split.
type RemoveSplitSubaccountRequest struct {
	Subaccount string `json:"subaccount"`
}

// Create creates a transaction split.
func (s SplitsService) Create(ctx context.Context, req CreateSplitRequest) (*Response, error) {
	return createSplit(ctx, s, req)
}

func createSplit(ctx context.Context, r Requester, req CreateSplitRequest) (*Response, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Type != "percentage" && req.Type != "flat" {
		return nil, NewValidationError("type", req.Type, []string{"percentage", "flat"})
	}
	if len(req.Subaccounts) == 0 {
		return nil, fmt.Errorf("at least one subaccount is required")
	}
	return call(ctx, r, http.MethodPost, "/split", req)
}

// List returns the splits on the integration.
func (s SplitsService) List(ctx context.Context, params ListSplitsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	setString(q, "name", params.Name)
	setBool(q, "active", params.Active)
	setString(q, "sort_by", params.SortBy)
	return call(ctx, s, http.MethodGet, withQuery("/split", q), nil)
}

// Fetch returns a split by ID.
func (s SplitsService) Fetch(ctx context.Context, id string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/split/"+url.PathEscape(id), nil)
}

// Update changes a split's name, status, or fee bearer.
func (s SplitsService) Update(ctx context.Context, id string, req UpdateSplitRequest) (*Response, error) {
	return call(ctx, s, http.MethodPut, "/split/"+url.PathEscape(id), req)
}

// AddSubaccount adds a subaccount to a split, or updates its share.
func (s SplitsService) AddSubaccount(ctx context.Context, id string, share SplitShare) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/split/"+url.PathEscape(id)+"/subaccount/add", share)
}

// RemoveSubaccount removes a subaccount from a split.
func (s SplitsService) RemoveSubaccount(ctx context.Context, id string, req RemoveSplitSubaccountRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/split/"+url.PathEscape(id)+"/subaccount/remove", req)
}
