package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// BankDetails charges a bank account directly.
type BankDetails struct {
	Code          string `json:"code"`
	AccountNumber string `json:"account_number"`
}

// USSDDetails selects the bank USSD code to charge through.
type USSDDetails struct {
	Type string `json:"type"`
}

// MobileMoneyDetails charges a mobile money wallet.
type MobileMoneyDetails struct {
	Phone    string `json:"phone"`
	Provider string `json:"provider"`
}

// CreateChargeRequest starts a charge on the channel selected by the populated fields.
type CreateChargeRequest struct {
	Email             string              `json:"email"`
	Amount            int64               `json:"amount"`
	Bank              *BankDetails        `json:"bank,omitempty"`
	AuthorizationCode string              `json:"authorization_code,omitempty"`
	PIN               string              `json:"pin,omitempty"`
	Metadata          Metadata            `json:"metadata,omitempty"`
	Reference         string              `json:"reference,omitempty"`
	USSD              *USSDDetails        `json:"ussd,omitempty"`
	MobileMoney       *MobileMoneyDetails `json:"mobile_money,omitempty"`
	DeviceID          string              `json:"device_id,omitempty"`
	Birthday          string              `json:"birthday,omitempty"`
	Currency          Currency            `json:"currency,omitempty"`
}

// SubmitPINRequest answers a send_pin charge status.
type SubmitPINRequest struct {
	PIN       string `json:"pin"`
	Reference string `json:"reference"`
}

// SubmitOTPRequest answers a send_otp charge status.
type SubmitOTPRequest struct {
	OTP       string `json:"otp"`
	Reference string `json:"reference"`
}

// SubmitPhoneRequest answers a send_phone charge status.
type SubmitPhoneRequest struct {
	Phone     string `json:"phone"`
	Reference string `json:"reference"`
}

// SubmitBirthdayRequest answers a send_birthday charge status.
type SubmitBirthdayRequest struct {
	// Birthday is formatted YYYY-MM-DD.
	Birthday  string `json:"birthday"`
	Reference string `json:"reference"`
}

// SubmitAddressRequest answers a send_address charge status.
type SubmitAddressRequest struct {
	Address   string `json:"address"`
	Reference string `json:"reference"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipcode"`
}

// Create initiates a charge.
func (s ChargesService) Create(ctx context.Context, req CreateChargeRequest) (*Response, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	return call(ctx, s, http.MethodPost, "/charge", req)
}

// SubmitPIN submits the card PIN for a pending charge.
func (s ChargesService) SubmitPIN(ctx context.Context, req SubmitPINRequest) (*Response, error) {
	return submitCharge(ctx, s, "pin", req.Reference, req)
}

// SubmitOTP submits the OTP for a pending charge.
func (s ChargesService) SubmitOTP(ctx context.Context, req SubmitOTPRequest) (*Response, error) {
	return submitCharge(ctx, s, "otp", req.Reference, req)
}

// SubmitPhone submits the customer's phone number for a pending charge.
func (s ChargesService) SubmitPhone(ctx context.Context, req SubmitPhoneRequest) (*Response, error) {
	return submitCharge(ctx, s, "phone", req.Reference, req)
}

// SubmitBirthday submits the customer's birthday for a pending charge.
func (s ChargesService) SubmitBirthday(ctx context.Context, req SubmitBirthdayRequest) (*Response, error) {
	return submitCharge(ctx, s, "birthday", req.Reference, req)
}

// SubmitAddress submits the customer's address for a pending charge.
func (s ChargesService) SubmitAddress(ctx context.Context, req SubmitAddressRequest) (*Response, error) {
	return submitCharge(ctx, s, "address", req.Reference, req)
}

func submitCharge(ctx context.Context, r Requester, step, reference string, body any) (*Response, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, fmt.Errorf("reference is required")
	}
	return call(ctx, r, http.MethodPost, "/charge/submit_"+step, body)
}

// CheckPending polls a charge that returned pending.
func (s ChargesService) CheckPending(ctx context.Context, reference string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/charge/"+url.PathEscape(reference), nil)
}
