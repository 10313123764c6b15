package config

import (
	"fmt"
	"strings"

	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

// ClientConfig is the resolved connection for one command invocation.
type ClientConfig struct {
	Profile       string
	SecretKey     string
	BaseURL       string
	WebhookSecret string
}

// Live reports whether the resolved key targets live mode.
func (c ClientConfig) Live() bool {
	return paystack.IsLiveKey(c.SecretKey)
}

// ResolveClientConfig layers stored credentials, environment variables and
// flag overrides, then validates the key and any base URL override.
func ResolveClientConfig(profileName, keyOverride, baseURLOverride string) (ClientConfig, error) {
	var cfg ClientConfig

	if keyOverride == "" {
		profile, err := Load(profileName)
		if err != nil {
			return ClientConfig{}, err
		}
		cfg.Profile = profileName
		cfg.SecretKey = profile.SecretKey
		cfg.BaseURL = profile.BaseURL
		cfg.WebhookSecret = profile.WebhookSecret
	} else {
		cfg.SecretKey = strings.TrimSpace(keyOverride)
	}

	if env, ok := LoadFromEnv(); ok && env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}
	if baseURLOverride != "" {
		cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(baseURLOverride), "/")
	}

	if err := paystack.ValidateSecretKey(cfg.SecretKey); err != nil {
		return ClientConfig{}, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = paystack.DefaultBaseURL
	} else if cfg.BaseURL != paystack.DefaultBaseURL {
		if err := validation.ValidateBaseURL(cfg.BaseURL); err != nil {
			return ClientConfig{}, fmt.Errorf("invalid base URL: %w", err)
		}
	}
	return cfg, nil
}
