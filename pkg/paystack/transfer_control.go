package paystack

import (
	"context"
	"net/http"
	"net/url"
)

// OTPReason is why an OTP is being resent.
type OTPReason string

const (
	OTPReasonResend   OTPReason = "resend_otp"
	OTPReasonTransfer OTPReason = "transfer"
)

// ResendOTPRequest asks for a new transfer OTP.
type ResendOTPRequest struct {
	TransferCode string    `json:"transfer_code"`
	Reason       OTPReason `json:"reason"`
}

// FinalizeDisableOTPRequest confirms turning off transfer OTPs.
type FinalizeDisableOTPRequest struct {
	OTP string `json:"otp"`
}

// LedgerParams filters GET /balance/ledger.
type LedgerParams struct {
	ListOptions
}

// Balance returns the available balance per currency.
func (s TransferControlService) Balance(ctx context.Context) (*Response, error) {
	return fetchBalance(ctx, s)
}

func fetchBalance(ctx context.Context, r Requester) (*Response, error) {
	return call(ctx, r, http.MethodGet, "/balance", nil)
}

// Ledger returns the balance history.
func (s TransferControlService) Ledger(ctx context.Context, params LedgerParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	return call(ctx, s, http.MethodGet, withQuery("/balance/ledger", q), nil)
}

// ResendOTP resends the OTP for a transfer.
func (s TransferControlService) ResendOTP(ctx context.Context, req ResendOTPRequest) (*Response, error) {
	if req.Reason != OTPReasonResend && req.Reason != OTPReasonTransfer {
		return nil, NewValidationError("reason", string(req.Reason), []string{string(OTPReasonResend), string(OTPReasonTransfer)})
	}
	return call(ctx, s, http.MethodPost, "/transfer/resend_otp", req)
}

// DisableOTP starts turning off OTP for transfers. Paystack sends an OTP to confirm.
func (s TransferControlService) DisableOTP(ctx context.Context) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/transfer/disable_otp", nil)
}

// FinalizeDisableOTP confirms turning off OTP for transfers.
func (s TransferControlService) FinalizeDisableOTP(ctx context.Context, req FinalizeDisableOTPRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/transfer/disable_otp_finalize", req)
}

// EnableOTP turns OTP for transfers back on.
func (s TransferControlService) EnableOTP(ctx context.Context) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/transfer/enable_otp", nil)
}
