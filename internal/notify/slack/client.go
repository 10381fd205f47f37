// internal/notify/slack/client.go
package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"

	"github.com/tamzrod/stalewatch/internal/notify"
)

// WebhookClient implements notify.Notifier using a Slack incoming webhook.
// One message = one POST. No retries.
type WebhookClient struct {
	url      string
	channel  string
	username string
	http     *http.Client
}

// Config is minimal webhook config.
type Config struct {
	WebhookURL string
	Channel    string // empty = webhook default channel
	Username   string
}

// NewWebhookClient creates a webhook client on top of httpClient.
func NewWebhookClient(cfg Config, httpClient *http.Client) (*WebhookClient, error) {
	if cfg.WebhookURL == "" {
		return nil, errors.New("notify slack: webhook url required")
	}
	if httpClient == nil {
		return nil, errors.New("notify slack: http client required")
	}

	return &WebhookClient{
		url:      cfg.WebhookURL,
		channel:  cfg.Channel,
		username: cfg.Username,
		http:     httpClient,
	}, nil
}

// Notify posts msg to the webhook.
func (c *WebhookClient) Notify(ctx context.Context, msg notify.Message) error {
	payload := &slack.WebhookMessage{
		Username:    c.username,
		Channel:     c.channel,
		IconURL:     msg.IconURL,
		Text:        msg.Text,
		Attachments: toAttachments(msg.Attachments),
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, c.url, c.http, payload); err != nil {
		return fmt.Errorf("notify slack: post webhook: %w", err)
	}
	return nil
}

func toAttachments(in []notify.Attachment) []slack.Attachment {
	out := make([]slack.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, slack.Attachment{
			Fallback: a.Fallback,
			Text:     a.Text,
			Color:    a.Color,
		})
	}
	return out
}
