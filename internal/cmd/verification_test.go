package cmd

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resolvedAccountJSON = `{"status":true,"message":"Account number resolved","data":{"account_number":"0022728151","account_name":"WES GIBBONS","bank_id":9}}`

func TestVerifyAccount_BankCode(t *testing.T) {
	var rec recordedRequest
	setupTestEnvWithHandler(t, newRouteHandler().On(http.MethodGet, "/bank/resolve", recordJSON(&rec, http.StatusOK, resolvedAccountJSON)))

	out, _, err := runCLI(t, "", "verify", "account", "0022728151", "--bank-code", "063")
	require.NoError(t, err)
	assert.Equal(t, []string{"0022728151"}, rec.Query["account_number"])
	assert.Equal(t, []string{"063"}, rec.Query["bank_code"])
	assert.Contains(t, out, "WES GIBBONS")
}

func TestVerifyAccount_BankName(t *testing.T) {
	var rec recordedRequest
	handler := newRouteHandler().
		On(http.MethodGet, "/bank", jsonResponse(http.StatusOK, banksJSON)).
		On(http.MethodGet, "/bank/resolve", recordJSON(&rec, http.StatusOK, resolvedAccountJSON))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCLI(t, "", "verify", "account", "0022728151", "--bank", "zenith")
	require.NoError(t, err)
	assert.Equal(t, []string{"057"}, rec.Query["bank_code"])
}

func TestVerifyAccount_RequiresBank(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_, _, err := runCLI(t, "", "verify", "account", "0022728151")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--bank-code or --bank is required")
}

func TestVerifyCardBIN(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler().On(http.MethodGet, "/decision/bin/539983", jsonResponse(http.StatusOK,
		`{"status":true,"message":"Bin resolved","data":{"bin":"539983","brand":"Mastercard","card_type":"DEBIT","bank":"Guaranty Trust Bank","country_name":"Nigeria","country_code":"NG"}}`)))

	out, _, err := runCLI(t, "", "verify", "card-bin", "539983")
	require.NoError(t, err)
	assert.Contains(t, out, "Mastercard")
	assert.Contains(t, out, "Guaranty Trust Bank")
}
