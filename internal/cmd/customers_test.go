package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customerJSON = `{
	"id": 1173,
	"customer_code": "CUS_xnxdt6s1zg1f4nx",
	"email": "zero@sum.com",
	"first_name": "Zero",
	"last_name": "Sum",
	"phone": "+2348123456789",
	"risk_action": "default"
}`

func TestCustomersCreate(t *testing.T) {
	var got recordedRequest
	handler := newRouteHandler().
		On("POST", "/customer", recordJSON(&got, 200, `{"status":true,"message":"Customer created","data":`+customerJSON+`}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "customers", "create", "--email", "zero@sum.com", "--first-name", "Zero", "--phone", "+2348123456789")
	require.NoError(t, err)
	assert.Contains(t, out, "CUS_xnxdt6s1zg1f4nx")
	assert.Equal(t, map[string]any{
		"email":      "zero@sum.com",
		"first_name": "Zero",
		"phone":      "+2348123456789",
	}, got.Body)
}

func TestCustomersCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing email", []string{"--first-name", "Zero"}},
		{"bad phone", []string{"--email", "zero@sum.com", "--phone", "0812-abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newRouteHandler()
			setupTestEnvWithHandler(t, handler)

			_, _, err := runCLI(t, "", append([]string{"customers", "create"}, tt.args...)...)
			require.Error(t, err)
			assert.Zero(t, handler.Hits("POST", "/customer"))
		})
	}
}

func TestCustomersGet(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/customer/CUS_xnxdt6s1zg1f4nx", jsonResponse(200, `{"status":true,"message":"ok","data":`+customerJSON+`}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "customers", "get", "https://dashboard.paystack.com/#/customers/CUS_xnxdt6s1zg1f4nx")
	require.NoError(t, err)
	assert.Contains(t, out, "zero@sum.com")
	assert.Contains(t, out, "Risk action")
}

func TestCustomersGetListsAuthorizations(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/customer/zero@sum.com", jsonResponse(200, `{"status":true,"message":"ok","data":{
			"id": 1173, "customer_code": "CUS_xnxdt6s1zg1f4nx", "email": "zero@sum.com", "risk_action": "allow",
			"authorizations": [
				{"authorization_code": "AUTH_ekk8t49ogj", "bin": "408408", "last4": "4081", "exp_month": "01", "exp_year": "2030", "brand": "visa", "reusable": true},
				{"authorization_code": "AUTH_bank77", "bank": "Access Bank", "reusable": false}
			],
			"createdAt": "2016-03-29T20:03:09.000Z"
		}}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "customers", "get", "zero@sum.com")
	require.NoError(t, err)
	assert.Contains(t, out, "AUTH_ekk8t49ogj  visa 408408******4081 01/2030")
	assert.Contains(t, out, "AUTH_bank77 (single use)  Access Bank")
	assert.Contains(t, out, "2016-03-29T20:03:09Z")
}

func TestCustomersRiskAction(t *testing.T) {
	var got recordedRequest
	handler := newRouteHandler().
		On("POST", "/customer/set_risk_action", recordJSON(&got, 200, `{"status":true,"message":"Customer updated","data":`+customerJSON+`}`))
	setupTestEnvWithHandler(t, handler)

	_, _, err := runCLI(t, "", "customers", "risk-action", "zero@sum.com", "DENY")
	require.NoError(t, err)
	assert.Equal(t, "zero@sum.com", got.Body["customer"])
	assert.Equal(t, "deny", got.Body["risk_action"])

	_, errOut, err := runCLI(t, "", "customers", "risk-action", "zero@sum.com", "block")
	require.Error(t, err)
	assert.Equal(t, exitUsage, ExitCode(err))
	assert.Contains(t, errOut, "default, allow, deny")
}

func TestCustomersListFieldsQuery(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/customer", jsonResponse(200, `{"status":true,"message":"ok","data":[`+customerJSON+`]}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "customers", "list", "--query", ".items[0].customer_code")
	require.NoError(t, err)
	assert.Equal(t, "\"CUS_xnxdt6s1zg1f4nx\"\n", out)
}
