package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
)

// MatchBVNRequest checks a BVN against an account.
type MatchBVNRequest struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	BVN           string `json:"bvn"`
	FirstName     string `json:"first_name,omitempty"`
	MiddleName    string `json:"middle_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
}

var cardBINPattern = regexp.MustCompile(`^\d{6}$`)

// MatchBVN matches a BVN with an account number.
//
// Paystack has disabled this endpoint for most integrations and answers with an error.
func (s VerificationService) MatchBVN(ctx context.Context, req MatchBVNRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/bvn/match", req)
}

// ResolveAccount confirms an account number and returns the account name.
func (s VerificationService) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*Response, error) {
	return resolveAccount(ctx, s, accountNumber, bankCode)
}

func resolveAccount(ctx context.Context, r Requester, accountNumber, bankCode string) (*Response, error) {
	if accountNumber == "" || bankCode == "" {
		return nil, fmt.Errorf("account number and bank code are required")
	}
	q := url.Values{}
	q.Set("account_number", accountNumber)
	q.Set("bank_code", bankCode)
	return call(ctx, r, http.MethodGet, withQuery("/bank/resolve", q), nil)
}

// ResolveCardBIN returns details about a card from its first six digits.
func (s VerificationService) ResolveCardBIN(ctx context.Context, bin string) (*Response, error) {
	if !cardBINPattern.MatchString(bin) {
		return nil, fmt.Errorf("card BIN must be the first 6 digits of the card, got %q", bin)
	}
	return call(ctx, s, http.MethodGet, "/decision/bin/"+bin, nil)
}
