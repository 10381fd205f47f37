// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissing marks an absent required setting.
var ErrMissing = errors.New("config: missing required setting")

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	// ------------------------------------------------------------
	// REQUIRED CONNECTIVITY
	// ------------------------------------------------------------

	type setting struct {
		value string
		name  string
		env   string
	}

	required := []setting{
		{cfg.Chef.Endpoint, "chef.endpoint", EnvChefEndpoint},
		{cfg.Chef.ClientName, "chef.client_name", EnvChefClient},
		{cfg.Chef.ClientKey, "chef.client_key", EnvChefKey},
	}

	// delivery is only needed when something will be delivered
	if !cfg.DryRun {
		required = append(required, setting{cfg.Slack.WebhookURL, "slack.webhook_url", EnvSlackHook})
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s (%s)", ErrMissing, r.name, r.env)
		}
	}

	if err := checkURL("chef.endpoint", cfg.Chef.Endpoint); err != nil {
		return err
	}
	if !cfg.DryRun {
		if err := checkURL("slack.webhook_url", cfg.Slack.WebhookURL); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// RANGES
	// ------------------------------------------------------------

	if cfg.StaleSeconds <= 0 {
		return fmt.Errorf("config: stale_seconds must be > 0, got %d", cfg.StaleSeconds)
	}
	if cfg.TimeoutMs <= 0 {
		return fmt.Errorf("config: timeout_ms must be > 0, got %d", cfg.TimeoutMs)
	}
	if strings.TrimSpace(cfg.StateFile) == "" {
		return fmt.Errorf("%w: state_file (%s)", ErrMissing, EnvStateFile)
	}

	return nil
}

func checkURL(name, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("config: %s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: %s must be an http(s) url, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("config: %s has no host: %q", name, raw)
	}
	return nil
}
