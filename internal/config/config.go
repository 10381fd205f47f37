// internal/config/config.go
package config

// Config is built once at process entry and passed down explicitly.
// Nothing below cmd/ reads the environment.
type Config struct {
	Chef  ChefConfig  `yaml:"chef"`
	Slack SlackConfig `yaml:"slack"`

	// StaleSeconds is the check-in age after which a node counts as stale.
	StaleSeconds int `yaml:"stale_seconds"`

	// StateFile is the snapshot path (JSON array of node names).
	StateFile string `yaml:"state_file"`

	// TimeoutMs bounds the whole run, network calls included.
	TimeoutMs int `yaml:"timeout_ms"`

	// DryRun previews the message on stdout: no delivery, no persist.
	DryRun bool `yaml:"dry_run"`
}

// ---- INVENTORY ----

type ChefConfig struct {
	Endpoint   string `yaml:"endpoint"`
	ClientName string `yaml:"client_name"`
	ClientKey  string `yaml:"client_key"` // PEM text or path to a PEM file
	SkipSSL    bool   `yaml:"skip_ssl"`
}

// ---- NOTIFICATION ----

type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Channel    string `yaml:"channel"`
	Username   string `yaml:"username"`
	IconURL    string `yaml:"icon_url"`
}
