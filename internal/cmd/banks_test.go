package cmd

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

const banksJSON = `{"status":true,"message":"Banks retrieved","data":[
	{"id":1,"name":"Access Bank","slug":"access-bank","code":"044","active":true,"country":"Nigeria","currency":"NGN","type":"nuban"},
	{"id":2,"name":"Guaranty Trust Bank","slug":"guaranty-trust-bank","code":"058","active":true,"country":"Nigeria","currency":"NGN","type":"nuban"},
	{"id":3,"name":"Zenith Bank","slug":"zenith-bank","code":"057","active":true,"country":"Nigeria","currency":"NGN","type":"nuban"}
]}`

// withFileCache points the lookup cache at a temporary directory.
func withFileCache(t *testing.T) {
	t.Helper()
	t.Setenv("PAYSTACK_NO_CACHE", "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func TestBanksListCached(t *testing.T) {
	var got recordedRequest
	handler := newRouteHandler().On("GET", "/bank", recordJSON(&got, 200, banksJSON))
	setupTestEnvWithHandler(t, handler)
	withFileCache(t)

	out, _, err := runCLI(t, "", "banks", "list", "--country", "nigeria")
	require.NoError(t, err)
	assert.Contains(t, out, "Guaranty Trust Bank")
	assert.Equal(t, []string{"nigeria"}, got.Query["country"])

	out, _, err = runCLI(t, "", "banks", "list", "--country", "nigeria", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, decodeItems(t, out), 3)
	assert.Equal(t, 1, handler.Hits("GET", "/bank"), "second run should be served from the cache")

	_, _, err = runCLI(t, "", "banks", "list", "--country", "nigeria", "--refresh")
	require.NoError(t, err)
	assert.Equal(t, 2, handler.Hits("GET", "/bank"))
}

func TestBanksListRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	handler := newRouteHandler().On("GET", "/bank", jsonResponse(200, banksJSON))
	setupTestEnvWithHandler(t, handler)
	t.Setenv("PAYSTACK_NO_CACHE", "")
	t.Setenv("PAYSTACK_CACHE_REDIS_URL", "redis://"+mr.Addr())

	for range 2 {
		_, _, err := runCLI(t, "", "banks", "list")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, handler.Hits("GET", "/bank"))
	assert.NotEmpty(t, mr.Keys())

	_, _, err := runCLI(t, "", "cache", "clear")
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
}

func TestBanksResolve(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"exact code", "057", "057"},
		{"slug", "access-bank", "044"},
		{"fuzzy name", "guaranty", "058"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnvWithHandler(t, newRouteHandler().On("GET", "/bank", jsonResponse(200, banksJSON)))

			out, _, err := runCLI(t, "", "banks", "resolve", tt.query, "-o", "json")
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, decodeObject(t, out)["code"])
		})
	}
}

func TestBanksResolveNoMatch(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler().On("GET", "/bank", jsonResponse(200, banksJSON)))

	_, _, err := runCLI(t, "", "banks", "resolve", "qqqqqq")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bank matches")
}

func TestBankCacheKey(t *testing.T) {
	yes, no := true, false
	assert.NotEqual(t,
		bankCacheKey(paystack.ListBanksParams{Country: "nigeria", PayWithBankTransfer: &yes}),
		bankCacheKey(paystack.ListBanksParams{Country: "nigeria", PayWithBankTransfer: &no}),
	)
	assert.NotEqual(t,
		bankCacheKey(paystack.ListBanksParams{Country: "nigeria"}),
		bankCacheKey(paystack.ListBanksParams{Country: "ghana"}),
	)
	assert.Equal(t,
		bankCacheKey(paystack.ListBanksParams{Country: "ghana", Currency: paystack.GHS}),
		bankCacheKey(paystack.ListBanksParams{Country: "ghana", Currency: paystack.GHS}),
	)
}
