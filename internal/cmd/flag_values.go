package cmd

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/paystack/paystack-cli/internal/dates"
	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

// amountValue parses major units ("150.50") into subunits (15050).
type amountValue struct{ p *int64 }

func (v amountValue) String() string {
	if v.p == nil || *v.p == 0 {
		return ""
	}
	return strconv.FormatInt(*v.p/100, 10) + "." + fmt.Sprintf("%02d", *v.p%100)
}

func (v amountValue) Set(s string) error {
	n, err := validation.ParseAmount(s)
	if err != nil {
		return err
	}
	*v.p = n
	return nil
}

func (amountValue) Type() string { return "amount" }

// optionalBool leaves the target nil until the flag is set.
type optionalBool struct{ p **bool }

func (v optionalBool) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return strconv.FormatBool(**v.p)
}

func (v optionalBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*v.p = &b
	return nil
}

func (optionalBool) Type() string { return "bool" }

func (optionalBool) IsBoolFlag() bool { return true }

// dateValue accepts YYYY-MM-DD, RFC 3339 and relative forms such as "7d ago".
type dateValue struct{ p *time.Time }

func (v dateValue) String() string {
	if v.p == nil || v.p.IsZero() {
		return ""
	}
	return v.p.Format(time.RFC3339)
}

func (v dateValue) Set(s string) error {
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	*v.p = t
	return nil
}

func (dateValue) Type() string { return "date" }

func parseDate(s string) (time.Time, error) {
	return dates.Parse(s, time.Now())
}

// metadataValue takes a JSON object.
type metadataValue struct{ p *paystack.Metadata }

func (v metadataValue) String() string {
	if v.p == nil || len(*v.p) == 0 {
		return ""
	}
	data, _ := json.Marshal(*v.p)
	return string(data)
}

func (v metadataValue) Set(s string) error {
	var m paystack.Metadata
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return fmt.Errorf("metadata must be a JSON object: %w", err)
	}
	*v.p = m
	return nil
}

func (metadataValue) Type() string { return "json" }

// listValue collects comma separated values into a slice of a string type.
type listValue[T ~string] struct{ p *[]T }

func (v listValue[T]) String() string {
	if v.p == nil {
		return ""
	}
	parts := make([]string, len(*v.p))
	for i, s := range *v.p {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func (v listValue[T]) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*v.p = append(*v.p, T(part))
		}
	}
	return nil
}

func (listValue[T]) Type() string { return "strings" }

func amountFlag(fs *pflag.FlagSet, p *int64, name, usage string) {
	fs.Var(amountValue{p}, name, usage+" (major units, e.g. 150.50)")
}

func optionalBoolFlag(fs *pflag.FlagSet, p **bool, name, usage string) {
	fs.Var(optionalBool{p}, name, usage)
	fs.Lookup(name).NoOptDefVal = "true"
}

func dateFlag(fs *pflag.FlagSet, p *time.Time, name, usage string) {
	fs.Var(dateValue{p}, name, usage+" (YYYY-MM-DD or RFC 3339)")
}

func metadataFlag(fs *pflag.FlagSet, p *paystack.Metadata) {
	fs.Var(metadataValue{p}, "metadata", "Metadata as a JSON object")
}

func currencyFlag(fs *pflag.FlagSet, p *paystack.Currency) {
	enumFlag(fs, p, "currency", "Currency code", paystack.Currencies...)
}

func channelsFlag(fs *pflag.FlagSet, p *[]paystack.Channel) {
	fs.Var(listValue[paystack.Channel]{p}, "channels", "Payment channels (comma separated): "+strings.Join(paystack.Channels, "|"))
}

// enumValue binds a flag to a named string type such as paystack.Interval.
// When allowed is non-empty, other values are rejected and matches are
// case-insensitive ("ngn" sets NGN).
type enumValue[T ~string] struct {
	p       *T
	allowed []string
}

func (v enumValue[T]) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v enumValue[T]) Set(s string) error {
	s = strings.TrimSpace(s)
	if len(v.allowed) == 0 {
		*v.p = T(s)
		return nil
	}
	i := slices.IndexFunc(v.allowed, func(a string) bool { return strings.EqualFold(a, s) })
	if i < 0 {
		return fmt.Errorf("must be one of %s", strings.Join(v.allowed, ", "))
	}
	*v.p = T(v.allowed[i])
	return nil
}

func (enumValue[T]) Type() string { return "string" }

func enumFlag[T ~string](fs *pflag.FlagSet, p *T, name, usage string, values ...string) {
	if len(values) > 0 {
		usage += ": " + strings.Join(values, "|")
	}
	fs.Var(enumValue[T]{p: p, allowed: values}, name, usage)
}
