package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

func TestDecodeGeneric(t *testing.T) {
	got, err := decodeGeneric(json.RawMessage(" null "))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = decodeGeneric(json.RawMessage(`{"amount":9007199254740993}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), got.(map[string]any)["amount"])

	_, err = decodeGeneric(json.RawMessage(`{"amount":`))
	assert.ErrorContains(t, err, "failed to decode response data")
}

func TestStructuredPayload(t *testing.T) {
	resp := &paystack.Response{Status: true, Message: "Refund queued", Meta: &paystack.Meta{Total: 3}}

	assert.Equal(t, map[string]any{"status": true, "message": "Refund queued"}, structuredPayload(resp, nil))

	list := structuredPayload(resp, []any{"a"}).(map[string]any)
	assert.Equal(t, []any{"a"}, list["items"])
	assert.Same(t, resp.Meta, list["meta"])

	obj := map[string]any{"id": json.Number("1")}
	assert.Equal(t, obj, structuredPayload(resp, obj))
}

func TestColumnRender(t *testing.T) {
	row := map[string]any{
		"amount":   json.Number("40333"),
		"currency": "NGN",
		"paid":     true,
		"customer": map[string]any{"email": "demo@test.com"},
		"channels": []any{"card", "bank"},
	}

	assert.Equal(t, "NGN 403.33", amountCol("AMOUNT", "amount").render(row))
	assert.Equal(t, "40333", col("AMOUNT", "amount").render(row))
	assert.Equal(t, "demo@test.com", col("EMAIL", "customer.email").render(row))
	assert.Equal(t, "", col("PHONE", "customer.phone.number").render(row))
	assert.Equal(t, "true", col("PAID", "paid").render(row))
	assert.Equal(t, `["card","bank"]`, col("CHANNELS", "channels").render(row))
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		in   any
		want int64
		ok   bool
	}{
		{json.Number("500"), 500, true},
		{json.Number("12.5"), 12, true},
		{float64(7), 7, true},
		{"250", 250, true},
		{"NGN", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := asInt64(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestScalarColumns(t *testing.T) {
	obj := map[string]any{
		"status":    "success",
		"reference": "re4lyvq3s3",
		"id":        json.Number("1"),
		"amount":    json.Number("100"),
		"log":       map[string]any{},
	}

	cols := scalarColumns(obj, 0)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	assert.Equal(t, []string{"ID", "AMOUNT", "REFERENCE", "STATUS"}, headers)

	assert.Len(t, scalarColumns(obj, 2), 2)
}
