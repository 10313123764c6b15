package paystack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Response is the envelope every Paystack endpoint answers with.
type Response struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Meta    *Meta           `json:"meta,omitempty"`

	raw []byte
}

// Decode unmarshals Data into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Data) == 0 || bytes.Equal(bytes.TrimSpace(r.Data), []byte("null")) {
		return fmt.Errorf("response has no data")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// Raw returns the response body exactly as received.
func (r *Response) Raw() []byte {
	if r == nil {
		return nil
	}
	return r.raw
}

// DecodeData decodes the Data of resp into a new T.
func DecodeData[T any](resp *Response) (T, error) {
	var out T
	err := resp.Decode(&out)
	return out, err
}

// Meta carries pagination details for list endpoints.
type Meta struct {
	Total     FlexInt `json:"total"`
	Skipped   FlexInt `json:"skipped"`
	PerPage   FlexInt `json:"perPage"`
	Page      FlexInt `json:"page"`
	PageCount FlexInt `json:"pageCount"`
	Next      *string `json:"next,omitempty"`
	Previous  *string `json:"previous,omitempty"`
}

// HasMore reports whether another page is available.
func (m *Meta) HasMore() bool {
	if m == nil {
		return false
	}
	if m.Next != nil && *m.Next != "" {
		return true
	}
	return m.PageCount > 0 && m.Page < m.PageCount
}

// FlexInt accepts JSON numbers encoded either as numbers or strings.
type FlexInt int

func (fi *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*fi = FlexInt(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*fi = 0
			return nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*fi = FlexInt(i)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexInt", data)
}

// Subunits is an amount in the currency's subunit. Some endpoints send
// amounts as numeric strings, and fees may be null.
type Subunits int64

func (s *Subunits) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	raw := data
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			*s = 0
			return nil
		}
		raw = []byte(str)
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(raw), 64)
		if ferr != nil {
			return fmt.Errorf("cannot unmarshal %s into Subunits", data)
		}
		n = int64(f)
	}
	*s = Subunits(n)
	return nil
}

// Metadata is free-form data attached to a resource.
type Metadata map[string]any

// ListOptions holds the pagination and date window shared by list endpoints.
type ListOptions struct {
	PerPage int       `json:"perPage,omitempty"`
	Page    int       `json:"page,omitempty"`
	From    time.Time `json:"from,omitzero"`
	To      time.Time `json:"to,omitzero"`
}

// Pagination exposes the embedded options so callers can set them generically.
func (o *ListOptions) Pagination() *ListOptions { return o }

func (o ListOptions) apply(q url.Values) {
	setInt(q, "perPage", o.PerPage)
	setInt(q, "page", o.Page)
	setTime(q, "from", o.From)
	setTime(q, "to", o.To)
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}

func setInt64(q url.Values, key string, value int64) {
	if value > 0 {
		q.Set(key, strconv.FormatInt(value, 10))
	}
}

func setBool(q url.Values, key string, value *bool) {
	if value != nil {
		q.Set(key, strconv.FormatBool(*value))
	}
}

func setTime(q url.Values, key string, value time.Time) {
	if !value.IsZero() {
		q.Set(key, value.UTC().Format(time.RFC3339))
	}
}

// Bool returns a pointer to v, for optional boolean fields.
func Bool(v bool) *bool { return &v }

// Currency is an ISO 4217 code supported by Paystack.
type Currency string

const (
	NGN Currency = "NGN"
	GHS Currency = "GHS"
	USD Currency = "USD"
	ZAR Currency = "ZAR"
	KES Currency = "KES"
)

// Currencies lists the supported currency codes.
var Currencies = []string{string(NGN), string(GHS), string(USD), string(ZAR), string(KES)}

// Channel is a payment channel offered on checkout.
type Channel string

const (
	ChannelCard         Channel = "card"
	ChannelBank         Channel = "bank"
	ChannelUSSD         Channel = "ussd"
	ChannelQR           Channel = "qr"
	ChannelMobileMoney  Channel = "mobile_money"
	ChannelBankTransfer Channel = "bank_transfer"
	ChannelEFT          Channel = "eft"
)

// Channels lists the payment channels.
var Channels = []string{
	string(ChannelCard), string(ChannelBank), string(ChannelUSSD), string(ChannelQR),
	string(ChannelMobileMoney), string(ChannelBankTransfer), string(ChannelEFT),
}

// Bearer decides who pays the Paystack fee on a split payment.
type Bearer string

const (
	BearerAccount    Bearer = "account"
	BearerSubaccount Bearer = "subaccount"
)
