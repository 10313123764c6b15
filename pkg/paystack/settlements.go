package paystack

import (
	"context"
	"net/http"
	"net/url"
)

// ListSettlementsParams filters GET /settlement.
type ListSettlementsParams struct {
	ListOptions
	Status string `json:"status,omitempty"`
	// Subaccount restricts results to one subaccount. "none" returns only main account settlements.
	Subaccount string `json:"subaccount,omitempty"`
}

// SettlementTransactionsParams filters the transactions of one settlement.
type SettlementTransactionsParams struct {
	ListOptions
}

// List returns settlements made to the integration's bank accounts.
func (s SettlementsService) List(ctx context.Context, params ListSettlementsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	setString(q, "status", params.Status)
	setString(q, "subaccount", params.Subaccount)
	return call(ctx, s, http.MethodGet, withQuery("/settlement", q), nil)
}

// Transactions returns the transactions that make up a settlement.
func (s SettlementsService) Transactions(ctx context.Context, id string, params SettlementTransactionsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	return call(ctx, s, http.MethodGet, withQuery("/settlement/"+url.PathEscape(id)+"/transactions", q), nil)
}
