package paystack

import "time"

// Amounts are in the currency's subunit (kobo, pesewas, cents).

// Authorization is a reusable card or bank authorization.
type Authorization struct {
	AuthorizationCode string `json:"authorization_code"`
	Bin               string `json:"bin"`
	Last4             string `json:"last4"`
	ExpMonth          string `json:"exp_month"`
	ExpYear           string `json:"exp_year"`
	Channel           string `json:"channel"`
	CardType          string `json:"card_type"`
	Bank              string `json:"bank"`
	CountryCode       string `json:"country_code"`
	Brand             string `json:"brand"`
	Reusable          bool   `json:"reusable"`
	Signature         string `json:"signature"`
	AccountName       string `json:"account_name,omitempty"`
}

// Customer is a Paystack customer record.
type Customer struct {
	ID             int64           `json:"id"`
	CustomerCode   string          `json:"customer_code"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Phone          string          `json:"phone"`
	RiskAction     RiskAction      `json:"risk_action"`
	Metadata       Metadata        `json:"metadata,omitempty"`
	Identified     bool            `json:"identified"`
	Authorizations []Authorization `json:"authorizations,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Transaction is a payment attempt.
type Transaction struct {
	ID              int64             `json:"id"`
	Domain          string            `json:"domain"`
	Status          TransactionStatus `json:"status"`
	Reference       string            `json:"reference"`
	Amount          Subunits          `json:"amount"`
	Currency        Currency          `json:"currency"`
	Channel         Channel           `json:"channel"`
	GatewayResponse string            `json:"gateway_response"`
	Fees            Subunits          `json:"fees"`
	PaidAt          *time.Time        `json:"paid_at"`
	CreatedAt       time.Time         `json:"created_at"`
	Customer        *Customer         `json:"customer,omitempty"`
	Authorization   *Authorization    `json:"authorization,omitempty"`
	Metadata        any               `json:"metadata,omitempty"`
}

// InitializedTransaction is returned by Transactions.Initialize.
type InitializedTransaction struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Bank is a bank Paystack can pay into or charge.
type Bank struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Code        string   `json:"code"`
	Longcode    string   `json:"longcode"`
	Gateway     string   `json:"gateway"`
	PayWithBank bool     `json:"pay_with_bank"`
	Active      bool     `json:"active"`
	Country     string   `json:"country"`
	Currency    Currency `json:"currency"`
	Type        string   `json:"type"`
}

// ResolvedAccount is the result of resolving an account number.
type ResolvedAccount struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankID        int64  `json:"bank_id"`
}

// Country is a country Paystack operates in.
type Country struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	ISOCode         string   `json:"iso_code"`
	DefaultCurrency Currency `json:"default_currency_code"`
	CallingCode     string   `json:"calling_code"`
	PilotMode       bool     `json:"pilot_mode"`
}

// State is a state or province used in address verification.
type State struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Abbreviation string `json:"abbreviation"`
}

// Balance is the available balance in one currency.
type Balance struct {
	Currency Currency `json:"currency"`
	Balance  Subunits `json:"balance"`
}

// Plan is a subscription plan.
type Plan struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	PlanCode           string    `json:"plan_code"`
	Description        string    `json:"description"`
	Amount             Subunits  `json:"amount"`
	Interval           Interval  `json:"interval"`
	Currency           Currency  `json:"currency"`
	SendInvoices       bool      `json:"send_invoices"`
	SendSMS            bool      `json:"send_sms"`
	InvoiceLimit       FlexInt   `json:"invoice_limit"`
	TotalSubscriptions FlexInt   `json:"total_subscriptions"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Recipient is a transfer recipient.
type Recipient struct {
	ID            int64         `json:"id"`
	RecipientCode string        `json:"recipient_code"`
	Type          RecipientType `json:"type"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Description   string        `json:"description"`
	Currency      Currency      `json:"currency"`
	Active        bool          `json:"active"`
	Details       struct {
		AccountNumber string `json:"account_number"`
		AccountName   string `json:"account_name"`
		BankCode      string `json:"bank_code"`
		BankName      string `json:"bank_name"`
	} `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

// Transfer is a payout from the balance.
type Transfer struct {
	ID            int64      `json:"id"`
	TransferCode  string     `json:"transfer_code"`
	Reference     string     `json:"reference"`
	Amount        Subunits   `json:"amount"`
	Currency      Currency   `json:"currency"`
	Source        string     `json:"source"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	Recipient     any        `json:"recipient"`
	TransferredAt *time.Time `json:"transferred_at"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Subaccount is a settlement subaccount.
type Subaccount struct {
	ID                  int64   `json:"id"`
	SubaccountCode      string  `json:"subaccount_code"`
	BusinessName        string  `json:"business_name"`
	Description         string  `json:"description"`
	SettlementBank      string  `json:"settlement_bank"`
	AccountNumber       string  `json:"account_number"`
	PercentageCharge    float64 `json:"percentage_charge"`
	SettlementSchedule  string  `json:"settlement_schedule"`
	Active              bool    `json:"active"`
	IsVerified          bool    `json:"is_verified"`
	PrimaryContactEmail string  `json:"primary_contact_email"`
}

// Refund is a full or partial refund of a transaction.
type Refund struct {
	ID             int64      `json:"id"`
	Transaction    any        `json:"transaction"`
	Amount         Subunits   `json:"amount"`
	DeductedAmount Subunits   `json:"deducted_amount"`
	Currency       Currency   `json:"currency"`
	Channel        string     `json:"channel"`
	Status         string     `json:"status"`
	RefundedBy     string     `json:"refunded_by"`
	CustomerNote   string     `json:"customer_note"`
	MerchantNote   string     `json:"merchant_note"`
	ExpectedAt     *time.Time `json:"expected_at"`
	CreatedAt      time.Time  `json:"createdAt"`
}
