package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/config"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

type clientFactory struct {
	timeout   time.Duration
	userAgent string
}

func newClientFactory() *clientFactory {
	return &clientFactory{
		timeout:   flags.Timeout,
		userAgent: fmt.Sprintf("paystack-cli/%s", version),
	}
}

// resolve layers the stored profile, the environment and global flags.
func (f *clientFactory) resolve() (config.ClientConfig, error) {
	return config.ResolveClientConfig(flags.Profile, flags.SecretKey, flags.BaseURL)
}

func (f *clientFactory) client() (*paystack.Client, config.ClientConfig, error) {
	cfg, err := f.resolve()
	if err != nil {
		return nil, config.ClientConfig{}, err
	}
	return f.newClient(cfg), cfg, nil
}

func (f *clientFactory) newClient(cfg config.ClientConfig) *paystack.Client {
	client := paystack.NewWithBaseURL(cfg.BaseURL, cfg.SecretKey)
	if f.timeout > 0 {
		client.HTTP.Timeout = f.timeout
	}
	if f.userAgent != "" {
		client.UserAgent = f.userAgent
	}
	if flags.IdempotencyKey != "" {
		if strings.EqualFold(flags.IdempotencyKey, "auto") {
			client.IdempotencyKeyFunc = newIdempotencyKey
		} else {
			client.IdempotencyKey = flags.IdempotencyKey
		}
	}
	applyRetryOverrides(client)
	return client
}

func applyRetryOverrides(client *paystack.Client) {
	cfg := client.RetryConfig

	if flags.MaxRateLimitRetriesSet {
		cfg.MaxRateLimitRetries = flags.MaxRateLimitRetries
	}
	if flags.Max5xxRetriesSet {
		cfg.Max5xxRetries = flags.Max5xxRetries
	}
	if flags.RateLimitDelaySet {
		cfg.RateLimitBaseDelay = flags.RateLimitDelay
	}
	if flags.ServerErrorDelaySet {
		cfg.ServerErrorRetryDelay = flags.ServerErrorDelay
	}
	if flags.CircuitBreakerThresholdSet {
		cfg.CircuitBreakerThreshold = flags.CircuitBreakerThreshold
	}
	if flags.CircuitBreakerResetTimeSet {
		cfg.CircuitBreakerResetTime = flags.CircuitBreakerResetTime
	}

	client.SetRetryConfig(cfg)
}

// getClient builds a client for the invoking command.
func getClient(_ *cobra.Command) (*paystack.Client, error) {
	client, _, err := newClientFactory().client()
	return client, err
}
