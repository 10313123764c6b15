package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/paystack/paystack-cli/internal/dryrun"
	"github.com/paystack/paystack-cli/internal/urlparse"
	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

// callFunc issues one API call with a configured client.
type callFunc func(ctx context.Context, c *paystack.Client) (*paystack.Response, error)

// dryRunSecretKey stands in when --dry-run is used without credentials.
const dryRunSecretKey = "sk_test_dryrun"

// runCall executes call and renders its response, or previews the request
// it would send in dry-run mode.
func runCall(cmd *cobra.Command, operation string, v view, call callFunc) error {
	ctx := cmd.Context()
	if dryrun.IsEnabled(ctx) {
		return previewCall(cmd, operation, call)
	}
	client, err := getClient(cmd)
	if err != nil {
		return err
	}
	resp, err := call(ctx, client)
	if err != nil {
		return err
	}
	return printResponse(cmd, resp, v)
}

// previewCall runs call against a recording transport so the preview shows
// exactly the method, path and body the client builds.
func previewCall(cmd *cobra.Command, operation string, call callFunc) error {
	client := dryRunClient()
	rec := &recordingTransport{}
	client.HTTP = &http.Client{Transport: rec}

	if _, err := call(cmd.Context(), client); err != nil {
		return err
	}
	requests := rec.captured()
	if len(requests) == 0 {
		return fmt.Errorf("%s: no request was built", operation)
	}
	for _, r := range requests {
		preview := &dryrun.Preview{
			Operation: operation,
			Method:    r.method,
			Path:      r.path,
			Query:     r.query,
		}
		if len(r.body) > 0 {
			preview.Body = json.RawMessage(r.body)
		}
		if r.method != http.MethodGet && paystack.IsLiveKey(client.SecretKey) {
			preview.Warnings = append(preview.Warnings, "this request would run against live mode")
		}
		if _, err := maybeDryRun(cmd, preview); err != nil {
			return err
		}
	}
	return nil
}

// dryRunClient resolves credentials when they exist; previews do not need them.
func dryRunClient() *paystack.Client {
	f := newClientFactory()
	client, _, err := f.client()
	if err == nil {
		return client
	}
	base := flags.BaseURL
	if base == "" {
		base = paystack.DefaultBaseURL
	}
	return paystack.NewWithBaseURL(base, dryRunSecretKey)
}

type capturedRequest struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

// recordingTransport answers every request with an empty success envelope.
type recordingTransport struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}
	t.mu.Lock()
	t.requests = append(t.requests, capturedRequest{
		method: req.Method,
		path:   req.URL.Path,
		query:  req.URL.Query(),
		body:   body,
	})
	t.mu.Unlock()

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"status":true,"message":"dry run"}`)),
		Request:    req,
	}, nil
}

func (t *recordingTransport) captured() []capturedRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]capturedRequest(nil), t.requests...)
}

// addDataFlag registers --data on a write command.
func addDataFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVarP(p, "data", "d", "", "Request body as JSON, @file, or @- for stdin (flags override its fields)")
}

// decodeData reads a --data value into v, rejecting unknown fields.
func decodeData(cmd *cobra.Command, data string, v any) error {
	raw, err := loadAtValue(cmd, data)
	if err != nil {
		return err
	}
	if err := validation.ValidateJSONPayload(strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("invalid --data: %w", err)
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid --data: %w", err)
	}
	return nil
}

// buildBody merges --data into req, a struct whose fields are bound to flags
// named after their JSON keys ("callback_url" is --callback-url). Explicitly
// set flags win over --data.
func buildBody(cmd *cobra.Command, data string, req any) error {
	if strings.TrimSpace(data) == "" {
		return nil
	}
	bound := takeFlagFields(cmd, req)
	if err := decodeData(cmd, data, req); err != nil {
		return err
	}
	for _, b := range bound {
		b.field.Set(b.value)
	}
	return nil
}

// boundField is a request field bound to a flag that was set, with the
// flag's value saved.
type boundField struct {
	field reflect.Value
	value reflect.Value
}

// takeFlagFields saves the fields of req whose flags were set, zero values
// included, and clears them so decoding --data cannot share their slices or
// maps.
func takeFlagFields(cmd *cobra.Command, req any) []boundField {
	rv := reflect.ValueOf(req)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil
	}
	fields := make(map[string]reflect.Value)
	collectJSONFields(rv.Elem(), fields)

	var bound []boundField
	seen := make(map[string]bool)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		name := f.Name
		if canonical := f.Annotations["alias-of"]; len(canonical) > 0 {
			name = canonical[0]
		}
		key := strings.ReplaceAll(name, "-", "_")
		field, ok := fields[key]
		if !ok || seen[key] {
			return
		}
		seen[key] = true
		saved := reflect.New(field.Type()).Elem()
		saved.Set(field)
		field.Set(reflect.Zero(field.Type()))
		bound = append(bound, boundField{field: field, value: saved})
	})
	return bound
}

// collectJSONFields maps the JSON keys of a struct's settable fields,
// descending into embedded structs.
func collectJSONFields(v reflect.Value, out map[string]reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" && sf.Anonymous && fv.Kind() == reflect.Struct {
			collectJSONFields(fv, out)
			continue
		}
		if !fv.CanSet() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		out[name] = fv
	}
}

// listFlags binds the shared pagination and date window flags.
func listFlags(cmd *cobra.Command, opts *paystack.ListOptions) {
	fs := cmd.Flags()
	fs.IntVar(&opts.PerPage, "per-page", 0, "Records per page (API default 50)")
	fs.IntVar(&opts.Page, "page", 0, "Page to fetch")
	dateFlag(fs, &opts.From, "from", "Start of the date window")
	dateFlag(fs, &opts.To, "to", "End of the date window")
}

// checkListOptions rejects inverted date windows and negative paging.
func checkListOptions(opts *paystack.ListOptions) error {
	if opts.PerPage < 0 || opts.Page < 0 {
		return fmt.Errorf("--per-page and --page must be >= 0")
	}
	if !opts.From.IsZero() && !opts.To.IsZero() && opts.To.Before(opts.From) {
		return fmt.Errorf("--to must not be before --from")
	}
	return nil
}

// argCmd builds a command that takes exactly one identifier argument.
func argCmd(use, short, operation string, v view, fn func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			arg, err := resourceArg(operation, args[0])
			if err != nil {
				return err
			}
			return runCall(cmd, operation, v, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return fn(ctx, c, arg)
			})
		}),
	}
}

// plainCmd builds a command without arguments or flags.
func plainCmd(use, short, operation string, v view, call callFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			return runCall(cmd, operation, v, call)
		}),
	}
}

// resourceArg accepts an identifier or a dashboard link to the resource the
// operation acts on ("transaction.fetch" takes transaction links).
func resourceArg(operation, arg string) (string, error) {
	if !urlparse.IsURL(arg) {
		return arg, nil
	}
	kind, _, _ := strings.Cut(operation, ".")
	if !urlparse.IsResource(kind) {
		return "", fmt.Errorf("%s does not accept dashboard links", operation)
	}
	return urlparse.ResourceID(arg, kind)
}

// idArg parses a numeric ID argument, which may be a dashboard link.
func idArg(s, field string) (int64, error) {
	if urlparse.IsURL(s) {
		id, err := urlparse.ResourceID(s, "")
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", field, err)
		}
		s = id
	}
	return validation.ParseID(s, field)
}
