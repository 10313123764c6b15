package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"slices"
	"strings"
)

// SignatureHeader carries the HMAC of a webhook body.
const SignatureHeader = "X-Paystack-Signature"

// WebhookIPs are the addresses Paystack sends webhooks from.
var WebhookIPs = []string{"52.31.139.75", "52.49.173.169", "52.214.14.220"}

// Event is a webhook notification.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Common event names.
const (
	EventChargeSuccess        = "charge.success"
	EventTransferSuccess      = "transfer.success"
	EventTransferFailed       = "transfer.failed"
	EventTransferReversed     = "transfer.reversed"
	EventSubscriptionCreate   = "subscription.create"
	EventSubscriptionDisable  = "subscription.disable"
	EventInvoiceCreate        = "invoice.create"
	EventInvoicePaymentFailed = "invoice.payment_failed"
	EventRefundProcessed      = "refund.processed"
	EventChargeDisputeCreate  = "charge.dispute.create"
)

// Sign returns the hex HMAC-SHA512 of body keyed with secret.
func Sign(secret string, body []byte) string {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature reports whether signature is the HMAC-SHA512 of the raw body
// keyed with the integration's secret key.
func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	want, _ := hex.DecodeString(Sign(secret, body))
	return hmac.Equal(got, want)
}

// ParseEvent decodes a webhook body.
func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	if ev.Event == "" {
		return nil, fmt.Errorf("invalid webhook payload: missing event name")
	}
	return &ev, nil
}

// IsPaystackIP reports whether addr (an IP, optionally with a port) is one of WebhookIPs.
func IsPaystackIP(addr string) bool {
	host := strings.TrimSpace(addr)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return slices.Contains(WebhookIPs, ip.String())
}
