package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/dryrun"
	"github.com/paystack/paystack-cli/internal/iocontext"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

var apiMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

func newAPICmd() *cobra.Command {
	var method, data string
	var fields, rawFields, params []string
	var includeHeaders bool

	cmd := &cobra.Command{
		Use:   "api <path>",
		Short: "Make a raw request to any Paystack endpoint",
		Long: strings.TrimSpace(`
Make a raw request to any Paystack endpoint. The path is relative to the API
base URL, so "/transaction/verify/ref_123" calls
https://api.paystack.co/transaction/verify/ref_123.

The body is built from --data, then -f (string) and -F (JSON) fields, later
values winning. --param adds query parameters.
`),
		Example: strings.TrimSpace(`
  paystack api /transaction/totals
  paystack api /transaction --param perPage=5 --param status=success
  paystack api /customer -X POST -f email=customer@email.com -f first_name=Zero
  paystack api /plan/PLN_gx2wn530m0i3w3m -X PUT -F amount=500000
  paystack api /refund -X POST --data @refund.json
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			path := args[0]
			method = strings.ToUpper(strings.TrimSpace(method))
			if !slices.Contains(apiMethods, method) {
				return fmt.Errorf("invalid HTTP method %q: must be one of %s", method, strings.Join(apiMethods, ", "))
			}

			fieldsBody, err := buildRequestBody(cmd, data, fields, rawFields)
			if err != nil {
				return err
			}
			var body any
			if fieldsBody != nil {
				body = fieldsBody
			}
			query, err := parseQueryParams(params)
			if err != nil {
				return err
			}
			if method == http.MethodGet && body != nil {
				return fmt.Errorf("GET requests cannot have a body; use --param for query parameters")
			}

			ctx := cmd.Context()
			if dryrun.IsEnabled(ctx) {
				return previewCall(cmd, "api."+strings.ToLower(method), func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
					return c.Do(ctx, method, path, query, body)
				})
			}

			client, err := getClient(cmd)
			if err != nil {
				return err
			}
			respBody, headers, statusCode, err := client.DoRaw(ctx, method, path, query, body)
			if err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, apiJSONPayload(respBody, headers, statusCode, includeHeaders))
			}

			out := iocontext.GetIO(ctx).Out
			if includeHeaders {
				_, _ = fmt.Fprintf(out, "HTTP %d\n", statusCode)
				keys := make([]string, 0, len(headers))
				for k := range headers {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					for _, v := range headers[k] {
						_, _ = fmt.Fprintf(out, "%s: %s\n", k, v)
					}
				}
				_, _ = fmt.Fprintln(out)
			}
			if len(respBody) == 0 {
				return nil
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, respBody, "", "  "); err == nil {
				_, _ = fmt.Fprintln(out, pretty.String())
				return nil
			}
			_, _ = fmt.Fprintln(out, string(respBody))
			return nil
		}),
	}

	fs := cmd.Flags()
	fs.StringVarP(&method, "method", "X", http.MethodGet, "HTTP method: "+strings.Join(apiMethods, ", "))
	fs.StringArrayVarP(&fields, "field", "f", nil, "Body field as key=value (string)")
	fs.StringArrayVarP(&rawFields, "raw-field", "F", nil, "Body field as key=value (JSON value)")
	fs.StringArrayVarP(&params, "param", "p", nil, "Query parameter as key=value")
	fs.BoolVarP(&includeHeaders, "include", "i", false, "Include status and response headers")
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "method", apiMethods)

	return cmd
}

func apiJSONPayload(respBody []byte, headers http.Header, statusCode int, includeHeaders bool) any {
	body := apiJSONBody(respBody)
	if !includeHeaders {
		return body
	}
	return map[string]any{
		"status":  statusCode,
		"headers": headers,
		"body":    body,
	}
}

func apiJSONBody(respBody []byte) any {
	if len(respBody) == 0 {
		return nil
	}
	if !json.Valid(respBody) {
		return string(respBody)
	}
	return json.RawMessage(respBody)
}

// buildRequestBody merges --data with -f and -F fields. It returns nil when
// nothing was given so GET requests stay bodiless.
func buildRequestBody(cmd *cobra.Command, data string, fields, rawFields []string) (map[string]any, error) {
	body := make(map[string]any)

	if strings.TrimSpace(data) != "" {
		raw, err := loadAtValue(cmd, data)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &body); err != nil {
			return nil, fmt.Errorf("invalid --data JSON object: %w", err)
		}
	}

	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: must be key=value", field)
		}
		body[key] = value
	}

	for _, field := range rawFields {
		key, raw, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid raw field %q: must be key=value", field)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("invalid JSON in raw field %q: %w", key, err)
		}
		body[key] = value
	}

	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}

func parseQueryParams(params []string) (url.Values, error) {
	if len(params) == 0 {
		return nil, nil
	}
	q := url.Values{}
	for _, p := range params {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q: must be key=value", p)
		}
		q.Add(key, value)
	}
	return q, nil
}
