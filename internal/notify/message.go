// internal/notify/message.go
package notify

import (
	"fmt"
	"strings"

	"github.com/tamzrod/stalewatch/internal/state"
)

// Pluralize returns singular iff count == 1.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// section is one line of message text plus its optional attachment.
type section struct {
	line       string
	attachment *Attachment
}

// Format builds the notification for one classification.
// Pure: sections are collected first and joined once at the end.
func Format(c state.Classification, iconURL string) Message {
	var sections []section

	if s, ok := bucketSection(c.NewlyStale, ColorWarning, func(int) string {
		return "in your network just went stale"
	}); ok {
		sections = append(sections, s)
	}

	if s, ok := bucketSection(c.Freshened, ColorGood, func(n int) string {
		return fmt.Sprintf("in your network %s freshened", Pluralize(n, "has", "have"))
	}); ok {
		sections = append(sections, s)
	}

	sections = append(sections, section{line: totalLine(c.CurrentCount)})

	lines := make([]string, 0, len(sections))
	var attachments []Attachment
	for _, s := range sections {
		lines = append(lines, s.line)
		if s.attachment != nil {
			attachments = append(attachments, *s.attachment)
		}
	}

	return Message{
		Text:        strings.Join(lines, "\n"),
		Attachments: attachments,
		IconURL:     iconURL,
	}
}

// bucketSection renders one non-empty bucket. ok is false for an empty bucket.
func bucketSection(nodes []string, color string, suffix func(n int) string) (section, bool) {
	if len(nodes) == 0 {
		return section{}, false
	}

	list := bulletList(nodes)
	n := len(nodes)

	return section{
		line: fmt.Sprintf("%d %s %s", n, Pluralize(n, "node", "nodes"), suffix(n)),
		attachment: &Attachment{
			Fallback: list,
			Text:     list,
			Color:    color,
		},
	}, true
}

func totalLine(count int) string {
	return fmt.Sprintf(
		"There %s currently %d stale %s.",
		Pluralize(count, "is", "are"),
		count,
		Pluralize(count, "node", "nodes"),
	)
}

func bulletList(nodes []string) string {
	lines := make([]string, len(nodes))
	for i, n := range nodes {
		lines[i] = " - " + n
	}
	return strings.Join(lines, "\n")
}
