// internal/config/load.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/stalewatch/internal/state"
)

// Defaults.
const (
	DefaultStaleSeconds = 4800 // 80 minutes
	DefaultStateFile    = state.DefaultPath
	DefaultTimeoutMs    = 120000
	DefaultUsername     = "Chef Bot"
	DefaultIconURL      = "http://ops.evertrue.com.s3.amazonaws.com/public/chef_logo.png"
)

// Environment variable names.
const (
	EnvChefEndpoint = "CHEF_SERVER_ENDPOINT"
	EnvChefClient   = "KNIFE_NODE_NAME"
	EnvChefKey      = "KNIFE_CLIENT_KEY"
	EnvChefSkipSSL  = "CHEF_SKIP_SSL"
	EnvStaleTime    = "CHEF_BOT_STALE_TIME"
	EnvSlackHook    = "CHEF_BOT_SLACK_HOOK"
	EnvSlackChannel = "CHEF_BOT_CHANNEL"
	EnvSlackName    = "CHEF_BOT_NAME"
	EnvSlackIcon    = "CHEF_BOT_ICON_URL"
	EnvStateFile    = "CHEF_BOT_STATE_FILE"
	EnvTimeoutMs    = "CHEF_BOT_TIMEOUT_MS"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load builds a Config from an optional YAML file (path may be empty)
// overlaid with environment variables, then fills defaults.
// Environment wins over the file.
func Load(path string, lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	if lookup != nil {
		if err := applyEnv(cfg, lookup); err != nil {
			return nil, err
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config, lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s=%q is not an integer", key, v)
		}
		*dst = n
		return nil
	}

	str(EnvChefEndpoint, &cfg.Chef.Endpoint)
	str(EnvChefClient, &cfg.Chef.ClientName)
	str(EnvChefKey, &cfg.Chef.ClientKey)
	str(EnvSlackHook, &cfg.Slack.WebhookURL)
	str(EnvSlackChannel, &cfg.Slack.Channel)
	str(EnvSlackName, &cfg.Slack.Username)
	str(EnvSlackIcon, &cfg.Slack.IconURL)
	str(EnvStateFile, &cfg.StateFile)

	if err := num(EnvStaleTime, &cfg.StaleSeconds); err != nil {
		return err
	}
	if err := num(EnvTimeoutMs, &cfg.TimeoutMs); err != nil {
		return err
	}

	if v, ok := lookup(EnvChefSkipSSL); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s=%q is not a boolean", EnvChefSkipSSL, v)
		}
		cfg.Chef.SkipSSL = b
	}

	return nil
}

// applyDefaults fills unset optional fields.
// Required connectivity fields are left for Validate to reject.
func applyDefaults(cfg *Config) {
	if cfg.StaleSeconds == 0 {
		cfg.StaleSeconds = DefaultStaleSeconds
	}
	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFile
	}
	if cfg.TimeoutMs == 0 {
		cfg.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Slack.Username == "" {
		cfg.Slack.Username = DefaultUsername
	}
	if cfg.Slack.IconURL == "" {
		cfg.Slack.IconURL = DefaultIconURL
	}
}
