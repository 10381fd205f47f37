// internal/notify/types.go
package notify

import "context"

// Attachment colors understood by the notification channel.
const (
	ColorWarning = "warning" // something went stale
	ColorGood    = "good"    // something recovered
)

// Attachment is one labeled, colored block of text.
type Attachment struct {
	Fallback string
	Text     string
	Color    string
}

// Message is the full notification payload for one run.
// Built once by Format and never mutated afterwards.
type Message struct {
	Text        string
	Attachments []Attachment
	IconURL     string
}

// Notifier is the delivery-only contract for messages.
// No retries, no interpretation.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}
