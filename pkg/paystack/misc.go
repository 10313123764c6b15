package paystack

import (
	"context"
	"net/http"
	"net/url"
)

// ListBanksParams filters GET /bank.
type ListBanksParams struct {
	Country             string   `json:"country,omitempty"`
	UseCursor           *bool    `json:"use_cursor,omitempty"`
	PerPage             int      `json:"perPage,omitempty"`
	Next                string   `json:"next,omitempty"`
	Previous            string   `json:"previous,omitempty"`
	Gateway             string   `json:"gateway,omitempty"`
	Type                string   `json:"type,omitempty"`
	Currency            Currency `json:"currency,omitempty"`
	PayWithBankTransfer *bool    `json:"pay_with_bank_transfer,omitempty"`
	PayWithBank         *bool    `json:"pay_with_bank,omitempty"`
}

func (p ListBanksParams) query() url.Values {
	q := url.Values{}
	setString(q, "country", p.Country)
	setBool(q, "use_cursor", p.UseCursor)
	setInt(q, "perPage", p.PerPage)
	setString(q, "next", p.Next)
	setString(q, "previous", p.Previous)
	setString(q, "gateway", p.Gateway)
	setString(q, "type", p.Type)
	setString(q, "currency", string(p.Currency))
	setBool(q, "pay_with_bank_transfer", p.PayWithBankTransfer)
	setBool(q, "pay_with_bank", p.PayWithBank)
	return q
}

// ListBanks returns the banks Paystack supports.
func (s MiscService) ListBanks(ctx context.Context, params ListBanksParams) (*Response, error) {
	return listBanks(ctx, s, params)
}

func listBanks(ctx context.Context, r Requester, params ListBanksParams) (*Response, error) {
	return call(ctx, r, http.MethodGet, withQuery("/bank", params.query()), nil)
}

// ListProviders returns the banks that support pay-with-transfer.
func (s MiscService) ListProviders(ctx context.Context) (*Response, error) {
	return listBanks(ctx, s, ListBanksParams{PayWithBankTransfer: Bool(true)})
}

// ListCountries returns the countries Paystack operates in.
func (s MiscService) ListCountries(ctx context.Context) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/country", nil)
}

// ListStates returns the states of a country for address verification.
func (s MiscService) ListStates(ctx context.Context, country string) (*Response, error) {
	q := url.Values{}
	setString(q, "country", country)
	return call(ctx, s, http.MethodGet, withQuery("/address_verification/states", q), nil)
}
