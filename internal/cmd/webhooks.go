package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/debug"
	"github.com/paystack/paystack-cli/internal/iocontext"
	"github.com/paystack/paystack-cli/internal/outfmt"
	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/internal/webhook"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

// errInvalidSignature is returned by "webhooks verify" on a mismatch.
var errInvalidSignature = errors.New("signature does not match payload")

func newWebhooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook", "wh"},
		Short:   "Receive, verify and sign webhook deliveries",
	}

	cmd.AddCommand(newWebhooksListenCmd())
	cmd.AddCommand(newWebhooksVerifyCmd())
	cmd.AddCommand(newWebhooksSignCmd())
	cmd.AddCommand(newWebhooksIPsCmd())

	return cmd
}

// webhookSecret picks the signing secret: the flag, then the profile's
// webhook secret, then the secret key itself.
func webhookSecret(flagValue string) (string, error) {
	if s := strings.TrimSpace(flagValue); s != "" {
		return s, nil
	}
	cfg, err := newClientFactory().resolve()
	if err != nil {
		return "", fmt.Errorf("no webhook secret: pass --secret or configure credentials: %w", err)
	}
	if cfg.WebhookSecret != "" {
		return cfg.WebhookSecret, nil
	}
	return cfg.SecretKey, nil
}

type receivedEvent struct {
	Event      string          `json:"event"`
	ReceivedAt time.Time       `json:"received_at"`
	Data       json.RawMessage `json:"data"`
}

func newWebhooksListenCmd() *cobra.Command {
	var addr, path, secret, forward string
	var restrictIPs, trustProxy bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Run a local listener that verifies and prints webhook deliveries",
		Long: strings.TrimSpace(`
Run a local HTTP listener for webhook deliveries. Each delivery's
X-Paystack-Signature is checked against the secret; verified events are
printed (one JSON object per line with --output json) and optionally
forwarded to another URL with the original signature.

The listener also serves /healthz and Prometheus metrics on /metrics.
`),
		Example: strings.TrimSpace(`
  paystack webhooks listen --addr :8080
  paystack webhooks listen --forward http://localhost:3000/webhooks --allow-private
  paystack webhooks listen --restrict-ips --trust-proxy --output json
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			key, err := webhookSecret(secret)
			if err != nil {
				return err
			}
			if forward != "" {
				if err := validation.ValidateForwardURL(forward); err != nil {
					return fmt.Errorf("invalid --forward URL: %w", err)
				}
			}

			streams := iocontext.GetIO(cmd.Context())
			logger := debug.NewLogger(streams.ErrOut, debug.IsEnabled(cmd.Context()))
			server, err := webhook.NewServer(webhook.Config{
				Secret:      key,
				Path:        path,
				ForwardURL:  forward,
				RestrictIPs: restrictIPs,
				TrustProxy:  trustProxy,
			}, eventPrinter(cmd), logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !isJSON(cmd) {
				_, _ = fmt.Fprintf(streams.ErrOut, "Listening on %s%s (press Ctrl+C to stop)...\n", addr, path)
			}
			return server.ListenAndServe(ctx, addr)
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&addr, "addr", ":8080", "Address to listen on")
	fs.StringVar(&path, "path", webhook.DefaultPath, "Path that receives deliveries")
	fs.StringVar(&secret, "secret", "", "Signing secret (default: the profile's secret key)")
	fs.StringVar(&forward, "forward", "", "Forward verified deliveries to this URL")
	fs.BoolVar(&restrictIPs, "restrict-ips", false, "Reject deliveries not from Paystack's webhook IPs")
	fs.BoolVar(&trustProxy, "trust-proxy", false, "Take the client IP from X-Forwarded-For / X-Real-IP")

	return cmd
}

// eventPrinter writes one line per verified event. Deliveries arrive on
// concurrent handlers, so writes are serialized.
func eventPrinter(cmd *cobra.Command) webhook.Sink {
	var mu sync.Mutex
	out := iocontext.GetIO(cmd.Context()).Out
	structured := isJSON(cmd)

	return func(_ context.Context, ev *paystack.Event, _ []byte) error {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now().UTC()
		if structured {
			return outfmt.WriteJSONMaybeCompact(out, receivedEvent{Event: ev.Event, ReceivedAt: now, Data: ev.Data}, true)
		}
		var data map[string]any
		_ = json.Unmarshal(ev.Data, &data)
		line := fmt.Sprintf("%s  %-28s", now.Format(time.RFC3339), ev.Event)
		if ref := formatValue(lookupPath(data, "reference")); ref != "" {
			line += "  " + ref
		}
		if amount, ok := asInt64(lookupPath(data, "amount")); ok {
			currency, _ := lookupPath(data, "currency").(string)
			line += "  " + outfmt.Amount(amount, currency)
		}
		_, err := fmt.Fprintln(out, line)
		return err
	}
}

func newWebhooksVerifyCmd() *cobra.Command {
	var signature, secret, data string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a payload against its X-Paystack-Signature",
		Example: strings.TrimSpace(`
  paystack webhooks verify --signature 5d4c... --data @payload.json
  cat payload.json | paystack webhooks verify --signature 5d4c... --data @-
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(signature) == "" {
				return fmt.Errorf("--signature is required")
			}
			body, err := webhookPayload(cmd, data)
			if err != nil {
				return err
			}
			key, err := webhookSecret(secret)
			if err != nil {
				return err
			}

			valid := paystack.VerifySignature(key, body, signature)
			var event string
			if ev, err := paystack.ParseEvent(body); err == nil {
				event = ev.Event
			}
			if isJSON(cmd) {
				if err := printJSON(cmd, map[string]any{"valid": valid, "event": event}); err != nil {
					return err
				}
			} else if valid {
				printAction(cmd, "Signature valid (event: %s)", event)
			}
			if !valid {
				return errInvalidSignature
			}
			return nil
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&signature, "signature", "", "Value of the X-Paystack-Signature header (required)")
	fs.StringVar(&secret, "secret", "", "Signing secret (default: the profile's secret key)")
	addDataFlag(cmd, &data)

	return cmd
}

func newWebhooksSignCmd() *cobra.Command {
	var secret, data string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Compute the X-Paystack-Signature for a payload",
		Long:  "Compute the X-Paystack-Signature for a payload, for replaying deliveries against a local handler.",
		Example: strings.TrimSpace(`
  paystack webhooks sign --data '{"event":"charge.success","data":{"reference":"ref_1"}}'
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			body, err := webhookPayload(cmd, data)
			if err != nil {
				return err
			}
			key, err := webhookSecret(secret)
			if err != nil {
				return err
			}
			sig := paystack.Sign(key, body)
			if isJSON(cmd) {
				return printJSON(cmd, map[string]string{"header": paystack.SignatureHeader, "signature": sig})
			}
			_, _ = fmt.Fprintln(iocontext.GetIO(cmd.Context()).Out, sig)
			return nil
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&secret, "secret", "", "Signing secret (default: the profile's secret key)")
	addDataFlag(cmd, &data)

	return cmd
}

func newWebhooksIPsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ips",
		Short: "List the IP addresses Paystack sends webhooks from",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if isJSON(cmd) {
				return printJSON(cmd, paystack.WebhookIPs)
			}
			out := iocontext.GetIO(cmd.Context()).Out
			for _, ip := range paystack.WebhookIPs {
				_, _ = fmt.Fprintln(out, ip)
			}
			return nil
		}),
	}
}

// webhookPayload returns the exact bytes to sign. The payload is not
// re-encoded: signatures cover the raw body.
func webhookPayload(cmd *cobra.Command, data string) ([]byte, error) {
	if strings.TrimSpace(data) == "" {
		return nil, fmt.Errorf("--data is required")
	}
	raw, err := loadAtValue(cmd, data)
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}
