package cmd

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subscriptionJSON = `{"status":true,"message":"Subscription successfully created","data":{"id":9,"subscription_code":"SUB_vsyqdmlzble3uii","email_token":"d7gofp6yppn3qz7","status":"active","amount":500000}}`

func TestSubscriptionsCreate(t *testing.T) {
	var rec recordedRequest
	setupTestEnvWithHandler(t, newRouteHandler().On(http.MethodPost, "/subscription", recordJSON(&rec, http.StatusOK, subscriptionJSON)))

	_, _, err := runCLI(t, "", "subscriptions", "create", "--customer", "CUS_xnxdt6s1zg1f4nx", "--plan", "PLN_gx2wn530m0i3w3m")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"customer": "CUS_xnxdt6s1zg1f4nx", "plan": "PLN_gx2wn530m0i3w3m"}, rec.Body)

	_, _, err = runCLI(t, "", "subscriptions", "create", "--plan", "PLN_gx2wn530m0i3w3m")
	assert.ErrorContains(t, err, "--customer and --plan are required")
}

func TestSubscriptionsToggle(t *testing.T) {
	var rec recordedRequest
	handler := newRouteHandler().
		On(http.MethodPost, "/subscription/disable", recordJSON(&rec, http.StatusOK, `{"status":true,"message":"Subscription disabled successfully"}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "subs", "disable", "SUB_vsyqdmlzble3uii", "--token", "d7gofp6yppn3qz7")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"code": "SUB_vsyqdmlzble3uii", "token": "d7gofp6yppn3qz7"}, rec.Body)
	assert.Contains(t, out, "Subscription disabled successfully")

	_, _, err = runCLI(t, "", "subs", "enable", "SUB_vsyqdmlzble3uii")
	assert.ErrorContains(t, err, "--token is required")
}

func TestSubscriptionsUpdateLink(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler().On(http.MethodGet, "/subscription/SUB_vsyqdmlzble3uii/manage/link", jsonResponse(http.StatusOK,
		`{"status":true,"message":"Link generated","data":{"link":"https://paystack.com/manage/subscriptions/qlgwhpyq1ts9nsw?subscription_token=uqt9gbs7fqr5ldb"}}`)))

	out, _, err := runCLI(t, "", "subscriptions", "update-link", "https://dashboard.paystack.com/#/subscriptions/SUB_vsyqdmlzble3uii")
	require.NoError(t, err)
	assert.Contains(t, out, "https://paystack.com/manage/subscriptions/qlgwhpyq1ts9nsw")
}
