package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// InitializeTransactionRequest starts a checkout for a customer.
type InitializeTransactionRequest struct {
	Email             string    `json:"email"`
	Amount            int64     `json:"amount"`
	Currency          Currency  `json:"currency,omitempty"`
	Reference         string    `json:"reference,omitempty"`
	CallbackURL       string    `json:"callback_url,omitempty"`
	Plan              string    `json:"plan,omitempty"`
	InvoiceLimit      int       `json:"invoice_limit,omitempty"`
	Metadata          Metadata  `json:"metadata,omitempty"`
	Channels          []Channel `json:"channels,omitempty"`
	SplitCode         string    `json:"split_code,omitempty"`
	Subaccount        string    `json:"subaccount,omitempty"`
	TransactionCharge int64     `json:"transaction_charge,omitempty"`
	Bearer            Bearer    `json:"bearer,omitempty"`
}

// TransactionStatus is the outcome of a transaction.
type TransactionStatus string

const (
	TransactionSuccess   TransactionStatus = "success"
	TransactionFailed    TransactionStatus = "failed"
	TransactionAbandoned TransactionStatus = "abandoned"
)

// ListTransactionsParams filters GET /transaction.
type ListTransactionsParams struct {
	ListOptions
	Customer string            `json:"customer,omitempty"`
	Status   TransactionStatus `json:"status,omitempty"`
	Amount   int64             `json:"amount,omitempty"`
}

// ChargeAuthorizationRequest charges a previously saved authorization.
type ChargeAuthorizationRequest struct {
	Amount            int64     `json:"amount"`
	Email             string    `json:"email"`
	AuthorizationCode string    `json:"authorization_code"`
	Reference         string    `json:"reference,omitempty"`
	Currency          Currency  `json:"currency,omitempty"`
	Metadata          Metadata  `json:"metadata,omitempty"`
	Channels          []Channel `json:"channels,omitempty"`
	Subaccount        string    `json:"subaccount,omitempty"`
	TransactionCharge int64     `json:"transaction_charge,omitempty"`
	Bearer            Bearer    `json:"bearer,omitempty"`
	Queue             bool      `json:"queue,omitempty"`
}

// CheckAuthorizationRequest asks whether an authorization can cover an amount.
type CheckAuthorizationRequest struct {
	Amount            int64    `json:"amount"`
	Email             string   `json:"email"`
	AuthorizationCode string   `json:"authorization_code"`
	Currency          Currency `json:"currency,omitempty"`
}

// TransactionTotalsParams filters GET /transaction/totals.
type TransactionTotalsParams struct {
	ListOptions
}

// ExportTransactionsParams filters GET /transaction/export.
type ExportTransactionsParams struct {
	ListOptions
	Customer    string   `json:"customer,omitempty"`
	Status      string   `json:"status,omitempty"`
	Currency    Currency `json:"currency,omitempty"`
	Amount      int64    `json:"amount,omitempty"`
	Settled     *bool    `json:"settled,omitempty"`
	Settlement  string   `json:"settlement,omitempty"`
	PaymentPage string   `json:"payment_page,omitempty"`
}

// PartialDebitRequest debits whatever portion of an amount an authorization allows.
type PartialDebitRequest struct {
	AuthorizationCode string   `json:"authorization_code"`
	Currency          Currency `json:"currency"`
	Amount            int64    `json:"amount"`
	Email             string   `json:"email"`
	Reference         string   `json:"reference,omitempty"`
	AtLeast           int64    `json:"at_least,omitempty"`
}

// NewReference returns a unique transaction reference.
func NewReference() string {
	return "ps_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Initialize creates a checkout session and returns its authorization URL.
func (s TransactionsService) Initialize(ctx context.Context, req InitializeTransactionRequest) (*Response, error) {
	return initializeTransaction(ctx, s, req)
}

func initializeTransaction(ctx context.Context, r Requester, req InitializeTransactionRequest) (*Response, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	return r.do(ctx, http.MethodPost, r.apiPath("/transaction/initialize"), req)
}

// Verify confirms the status of a transaction by reference.
func (s TransactionsService) Verify(ctx context.Context, reference string) (*Response, error) {
	return verifyTransaction(ctx, s, reference)
}

func verifyTransaction(ctx context.Context, r Requester, reference string) (*Response, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, fmt.Errorf("reference is required")
	}
	return r.do(ctx, http.MethodGet, r.apiPath("/transaction/verify/"+url.PathEscape(reference)), nil)
}

// List returns transactions on the integration.
func (s TransactionsService) List(ctx context.Context, params ListTransactionsParams) (*Response, error) {
	return listTransactions(ctx, s, params)
}

func listTransactions(ctx context.Context, r Requester, params ListTransactionsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	setString(q, "customer", params.Customer)
	setString(q, "status", string(params.Status))
	setInt64(q, "amount", params.Amount)
	return r.do(ctx, http.MethodGet, r.apiPath(withQuery("/transaction", q)), nil)
}

// Fetch returns a single transaction by its numeric ID.
func (s TransactionsService) Fetch(ctx context.Context, id int64) (*Response, error) {
	return fetchTransaction(ctx, s, id)
}

func fetchTransaction(ctx context.Context, r Requester, id int64) (*Response, error) {
	return r.do(ctx, http.MethodGet, r.apiPath("/transaction/"+strconv.FormatInt(id, 10)), nil)
}

// ChargeAuthorization charges a reusable authorization.
func (s TransactionsService) ChargeAuthorization(ctx context.Context, req ChargeAuthorizationRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/transaction/charge_authorization", req)
}

// CheckAuthorization checks whether an authorization has enough funds.
func (s TransactionsService) CheckAuthorization(ctx context.Context, req CheckAuthorizationRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/transaction/check_authorization", req)
}

// Timeline returns the checkout timeline of a transaction.
func (s TransactionsService) Timeline(ctx context.Context, idOrReference string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/transaction/timeline/"+url.PathEscape(idOrReference), nil)
}

// Totals returns the total amount received on the integration.
func (s TransactionsService) Totals(ctx context.Context, params TransactionTotalsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	return call(ctx, s, http.MethodGet, withQuery("/transaction/totals", q), nil)
}

// Export requests a CSV export of transactions and returns its download path.
func (s TransactionsService) Export(ctx context.Context, params ExportTransactionsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	setString(q, "customer", params.Customer)
	setString(q, "status", params.Status)
	setString(q, "currency", string(params.Currency))
	setInt64(q, "amount", params.Amount)
	setBool(q, "settled", params.Settled)
	setString(q, "settlement", params.Settlement)
	setString(q, "payment_page", params.PaymentPage)
	return call(ctx, s, http.MethodGet, withQuery("/transaction/export", q), nil)
}

// PartialDebit retrieves part of a payment from a customer.
func (s TransactionsService) PartialDebit(ctx context.Context, req PartialDebitRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/transaction/partial_debit", req)
}
