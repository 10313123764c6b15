package cmd

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulkChargeBatchJSON = `{"status":true,"message":"Charges have been queued","data":{"id":17,"batch_code":"BCH_rrsbgwb4ivgzst1","status":"active","total_charges":2,"pending_charges":2,"createdAt":"2026-03-02T10:00:00.000Z"}}`

func TestBulkChargesInitiate(t *testing.T) {
	const items = `[{"authorization":"AUTH_ncx8hews93","amount":2500,"reference":"dam1266638dhhd"},{"authorization":"AUTH_xfuz7dy4b9","amount":1500}]`

	t.Run("prompts with the batch size", func(t *testing.T) {
		handler := newRouteHandler()
		setupTestEnvWithHandler(t, handler)

		_, errOut, err := runCLI(t, "no\n", "bulk-charges", "initiate", "--data", items)
		require.NoError(t, err)
		assert.Contains(t, errOut, "Queue 2 charges? [y/N]")
		assert.Zero(t, handler.Hits(http.MethodPost, "/bulkcharge"))
	})

	t.Run("sends the array", func(t *testing.T) {
		var payload []map[string]any
		handler := newRouteHandler().On(http.MethodPost, "/bulkcharge", func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			jsonResponse(http.StatusOK, bulkChargeBatchJSON)(w, r)
		})
		setupTestEnvWithHandler(t, handler)

		out, _, err := runCLI(t, "", "bulk-charges", "initiate", "--data", items, "--yes")
		require.NoError(t, err)
		require.Len(t, payload, 2)
		assert.Equal(t, "AUTH_ncx8hews93", payload[0]["authorization"])
		assert.EqualValues(t, 1500, payload[1]["amount"])
		assert.NotContains(t, payload[1], "reference")
		assert.Contains(t, out, "BCH_rrsbgwb4ivgzst1")
	})

	t.Run("rejects empty and unknown fields", func(t *testing.T) {
		setupTestEnvWithHandler(t, newRouteHandler())

		_, _, err := runCLI(t, "", "bulk-charges", "initiate", "--data", "[]", "--yes")
		assert.ErrorContains(t, err, "at least one charge")

		_, _, err = runCLI(t, "", "bulk-charges", "initiate", "--data", `[{"auth":"AUTH_1","amount":1}]`, "--yes")
		assert.ErrorContains(t, err, "invalid --data")
	})
}

func TestBulkChargesPauseResume(t *testing.T) {
	handler := newRouteHandler().
		On(http.MethodGet, "/bulkcharge/pause/BCH_rrsbgwb4ivgzst1", jsonResponse(http.StatusOK, `{"status":true,"message":"Bulk charge batch has been paused"}`)).
		On(http.MethodGet, "/bulkcharge/resume/BCH_rrsbgwb4ivgzst1", jsonResponse(http.StatusOK, `{"status":true,"message":"Bulk charge batch has been resumed"}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "bc", "pause", "BCH_rrsbgwb4ivgzst1")
	require.NoError(t, err)
	assert.Contains(t, out, "paused")

	out, _, err = runCLI(t, "", "bc", "resume", "https://dashboard.paystack.com/#/bulk-charges/BCH_rrsbgwb4ivgzst1")
	require.NoError(t, err)
	assert.Contains(t, out, "resumed")
}

func TestBulkChargesCharges(t *testing.T) {
	var rec recordedRequest
	handler := newRouteHandler().On(http.MethodGet, "/bulkcharge/BCH_rrsbgwb4ivgzst1/charges", recordJSON(&rec, http.StatusOK,
		`{"status":true,"message":"Bulk charge items retrieved","data":[{"id":1,"customer":{"email":"ada@obi.ng"},"authorization":{"authorization_code":"AUTH_ncx8hews93"},"amount":2500,"currency":"NGN","status":"success","transaction":{"reference":"dam1266638dhhd"}}]}`))
	setupTestEnvWithHandler(t, handler)

	out, _, err := runCLI(t, "", "bulk-charges", "charges", "BCH_rrsbgwb4ivgzst1", "--status", "SUCCESS")
	require.NoError(t, err)
	assert.Equal(t, []string{"success"}, rec.Query["status"])
	assert.Contains(t, out, "ada@obi.ng")
	assert.Contains(t, out, "AUTH_ncx8hews93")
	assert.Contains(t, out, "NGN 25.00")
}
