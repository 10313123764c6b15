package cmd

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transactionJSON = `{
	"id": 4099260516,
	"reference": "re4lyvq3s3",
	"amount": 40333,
	"currency": "NGN",
	"status": "success",
	"channel": "card",
	"customer": {"email": "demo@test.com"},
	"paid_at": "2024-08-22T09:15:02.000Z"
}`

func TestTransactionsListJSON(t *testing.T) {
	var got recordedRequest
	handler := newRouteHandler().
		On("GET", "/transaction", recordJSON(&got, 200, `{
			"status": true,
			"message": "Transactions retrieved",
			"data": [`+transactionJSON+`],
			"meta": {"total": 1, "skipped": 0, "perPage": 5, "page": 1, "pageCount": 1}
		}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "transactions", "list", "--per-page", "5", "--status", "success", "-o", "json")
	require.NoError(t, err)

	items := decodeItems(t, out)
	require.Len(t, items, 1)
	assert.Equal(t, "re4lyvq3s3", items[0]["reference"])
	assert.Equal(t, []string{"5"}, got.Query["perPage"])
	assert.Equal(t, []string{"success"}, got.Query["status"])
	assert.Equal(t, "Bearer "+testSecretKey, got.Header.Get("Authorization"))
}

func TestTransactionsListText(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/transaction", jsonResponse(200, `{
			"status": true,
			"message": "Transactions retrieved",
			"data": [`+transactionJSON+`],
			"meta": {"total": 12, "perPage": 1, "page": 1, "pageCount": 12}
		}`))
	setupTestEnvWithHandler(t, handler)

	out, errOut, err := runCLI(t, "", "tx", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "REFERENCE")
	assert.Contains(t, out, "re4lyvq3s3")
	assert.Contains(t, out, "demo@test.com")
	assert.Contains(t, out+errOut, "--page 2")
}

func TestTransactionsListEmpty(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/transaction", jsonResponse(200, `{"status":true,"message":"ok","data":[]}`))
	setupTestEnvWithHandler(t, handler)

	out, errOut, err := runCLI(t, "", "transactions", "list")
	require.NoError(t, err)
	assert.Contains(t, out+errOut, "No transactions found")
}

func TestTransactionsListRejectsInvertedWindow(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_, _, err := runCLI(t, "", "transactions", "list", "--from", "2024-02-01", "--to", "2024-01-01")
	require.Error(t, err)
	assert.Equal(t, exitUsage, ExitCode(err))
}

func TestTransactionsInitialize(t *testing.T) {
	var got recordedRequest
	handler := newRouteHandler().
		On("POST", "/transaction/initialize", recordJSON(&got, 200, `{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/0peioxfhpn",
				"access_code": "0peioxfhpn",
				"reference": "7PVGX8MEk85tgeEpVDtD"
			}
		}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "transactions", "initialize",
		"--email", "customer@email.com",
		"--amount", "200.50",
		"--channels", "card,bank",
		"--metadata", `{"cart_id":398}`,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "https://checkout.paystack.com/0peioxfhpn")

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "customer@email.com", got.Body["email"])
	assert.EqualValues(t, 20050, got.Body["amount"])
	assert.Equal(t, []any{"card", "bank"}, got.Body["channels"])
	assert.Equal(t, map[string]any{"cart_id": float64(398)}, got.Body["metadata"])
}

func TestTransactionsInitializeDataMergesWithFlags(t *testing.T) {
	var got recordedRequest
	handler := newRouteHandler().
		On("POST", "/transaction/initialize", recordJSON(&got, 200, `{"status":true,"message":"ok","data":{}}`))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCLI(t, "", "transactions", "initialize",
		"--data", `{"email":"from-data@email.com","amount":10000,"callback_url":"https://example.com/cb"}`,
		"--email", "from-flag@email.com",
	)
	require.NoError(t, err)
	assert.Equal(t, "from-flag@email.com", got.Body["email"])
	assert.EqualValues(t, 10000, got.Body["amount"])
	assert.Equal(t, "https://example.com/cb", got.Body["callback_url"])
}

func TestTransactionsInitializeValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad email", []string{"--email", "not-an-email", "--amount", "10"}, "email"},
		{"bad amount", []string{"--email", "a@b.co", "--amount", "ten"}, "amount"},
		{"unknown data field", []string{"--data", `{"emial":"a@b.co"}`}, "unknown field"},
		{"bad bearer", []string{"--email", "a@b.co", "--amount", "10", "--bearer", "nobody"}, "bearer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newRouteHandler()
			setupTestEnvWithHandler(t, handler)

			args := append([]string{"transactions", "initialize"}, tt.args...)
			_, errOut, err := runCLI(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()+errOut), tt.wantErr)
			assert.Zero(t, handler.Hits("POST", "/transaction/initialize"))
		})
	}
}

func TestTransactionsVerifyMany(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/transaction/verify/ref_ok", jsonResponse(200, `{"status":true,"message":"ok","data":`+transactionJSON+`}`)).
		On("GET", "/transaction/verify/ref_missing", jsonResponse(404, `{"status":false,"message":"Transaction reference not found"}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "transactions", "verify", "ref_ok", "ref_missing", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 requests failed")

	obj := decodeObject(t, out)
	assert.EqualValues(t, 1, obj["succeeded"])
	assert.EqualValues(t, 1, obj["failed"])
	items := obj["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "ref_ok", items[0].(map[string]any)["id"])
	assert.Contains(t, items[1].(map[string]any)["error"], "Transaction reference not found")
}

func TestTransactionsVerifyManyText(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/transaction/verify/ref_ok", jsonResponse(200, `{"status":true,"message":"ok","data":`+transactionJSON+`}`)).
		On("GET", "/transaction/verify/ref_missing", jsonResponse(404, `{"status":false,"message":"Transaction reference not found"}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "transactions", "verify", "ref_ok", "ref_missing")
	require.Error(t, err)
	assert.Contains(t, out, "AMOUNT")
	assert.Contains(t, out, "NGN 403.33")
	assert.Contains(t, out, "demo@test.com")
	assert.Contains(t, out, "2024-08-22T09:15:02Z")
	assert.Contains(t, out, "error: ")
}

func TestTransactionsGetDetail(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/transaction/4099260516", jsonResponse(200, `{"status":true,"message":"ok","data":{
			"id": 4099260516,
			"reference": "re4lyvq3s3",
			"amount": "40333",
			"fees": 10283,
			"currency": "NGN",
			"status": "success",
			"channel": "card",
			"gateway_response": "Approved",
			"metadata": "",
			"customer": {"email": "demo@test.com", "phone": null},
			"authorization": {"authorization_code": "AUTH_uh8bcl3zbn", "bin": "408408", "last4": "4081", "exp_month": "12", "exp_year": "2030", "brand": "Visa", "reusable": true}
		}}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "transactions", "get", "4099260516")
	require.NoError(t, err)
	assert.Contains(t, out, "NGN 403.33")
	assert.Contains(t, out, "NGN 102.83")
	assert.Contains(t, out, "AUTH_uh8bcl3zbn")
	assert.Contains(t, out, "visa 408408******4081 12/2030")
	assert.Contains(t, out, "Approved")
}

func TestTransactionsListFallsBackOnUnexpectedShape(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/transaction", jsonResponse(200, `{"status":true,"message":"ok","data":[{"id":1,"reference":"odd_ref","amount":"twelve","currency":"NGN"}]}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "transactions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "odd_ref")
	assert.Contains(t, out, "twelve")
}

func TestTransactionsGetAcceptsDashboardLink(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/transaction/4099260516", jsonResponse(200, `{"status":true,"message":"ok","data":`+transactionJSON+`}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "transactions", "get", "https://dashboard.paystack.com/#/transactions/4099260516/analytics", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "re4lyvq3s3", decodeObject(t, out)["reference"])

	_, _, err = runCLI(t, "", "transactions", "get", "https://dashboard.paystack.com/#/customers/CUS_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a transaction")
}

func TestTransactionsGetNotFound(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/transaction/1", jsonResponse(404, `{"status":false,"message":"Transaction not found"}`))
	setupTestEnvWithHandler(t, handler)

	_, errOut, err := runCLI(t, "", "transactions", "get", "1")
	require.Error(t, err)
	assert.Equal(t, exitNotFound, ExitCode(err))
	assert.Contains(t, errOut, "Transaction not found")
}

func TestTransactionsChargeAuthorizationConfirmation(t *testing.T) {
	handler := newRouteHandler().
		On("POST", "/transaction/charge_authorization", jsonResponse(200, `{"status":true,"message":"Charge attempted","data":`+transactionJSON+`}`))
	setupTestEnvWithHandler(t, handler)

	args := []string{"transactions", "charge-authorization", "--email", "demo@test.com", "--amount", "403.33", "--authorization-code", "AUTH_72btv547"}

	_, errOut, err := runCLI(t, "n\n", args...)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Charge NGN 403.33 to demo@test.com?")
	assert.Zero(t, handler.Hits("POST", "/transaction/charge_authorization"))

	_, _, err = runCLI(t, "y\n", args...)
	require.NoError(t, err)
	assert.Equal(t, 1, handler.Hits("POST", "/transaction/charge_authorization"))

	_, _, err = runCLI(t, "", append(args, "-o", "json")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes is required")
}

func TestTransactionsDryRun(t *testing.T) {
	handler := newRouteHandler()
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "transactions", "initialize", "--email", "a@b.co", "--amount", "10", "--dry-run", "-o", "json")
	require.NoError(t, err)

	preview := decodeObject(t, out)
	assert.Equal(t, "transaction.initialize", preview["operation"])
	assert.Equal(t, "POST", preview["method"])
	assert.Equal(t, "/transaction/initialize", preview["path"])
	assert.Equal(t, true, preview["dry_run"])
	assert.Zero(t, handler.Hits("POST", "/transaction/initialize"))
}
