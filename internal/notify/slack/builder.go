// internal/notify/slack/builder.go
package slack

import (
	cfg "github.com/tamzrod/stalewatch/internal/config"
	"github.com/tamzrod/stalewatch/internal/transport"
)

// Build constructs the webhook notifier and its HTTP client.
func Build(c *cfg.Config) (*WebhookClient, error) {
	httpClient, err := transport.BuildHTTP2Client(transport.Config{
		Timeout: c.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	return NewWebhookClient(Config{
		WebhookURL: c.Slack.WebhookURL,
		Channel:    c.Slack.Channel,
		Username:   c.Slack.Username,
	}, httpClient)
}
