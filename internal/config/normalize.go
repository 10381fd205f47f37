// internal/config/normalize.go
package config

import (
	"strings"
	"time"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Chef.Endpoint = strings.TrimSpace(cfg.Chef.Endpoint)
	cfg.Chef.ClientName = strings.TrimSpace(cfg.Chef.ClientName)
	cfg.Slack.WebhookURL = strings.TrimSpace(cfg.Slack.WebhookURL)
	cfg.StateFile = strings.TrimSpace(cfg.StateFile)

	// Chef request paths are resolved against the endpoint.
	// Without a trailing slash the organization segment would be dropped.
	if !strings.HasSuffix(cfg.Chef.Endpoint, "/") {
		cfg.Chef.Endpoint += "/"
	}
}

// StaleAfter returns the threshold as a duration.
func (c *Config) StaleAfter() time.Duration {
	return time.Duration(c.StaleSeconds) * time.Second
}

// Timeout returns the run timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
