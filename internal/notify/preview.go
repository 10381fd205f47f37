// internal/notify/preview.go
package notify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	previewHeader = lipgloss.NewStyle().Bold(true)

	attachmentBase = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			PaddingLeft(1)

	attachmentColors = map[string]lipgloss.Color{
		ColorWarning: lipgloss.Color("3"),
		ColorGood:    lipgloss.Color("2"),
	}
)

// Preview renders messages to a terminal instead of delivering them.
// Used for dry runs.
type Preview struct {
	out io.Writer
}

// NewPreview creates a Preview writing to out.
func NewPreview(out io.Writer) *Preview {
	return &Preview{out: out}
}

// Notify writes msg to the preview output.
func (p *Preview) Notify(_ context.Context, msg Message) error {
	_, err := io.WriteString(p.out, Render(msg)+"\n")
	if err != nil {
		return fmt.Errorf("notify preview: %w", err)
	}
	return nil
}

// Render formats msg for a terminal: text first, then one colored
// block per attachment.
func Render(msg Message) string {
	var b strings.Builder

	b.WriteString(previewHeader.Render(msg.Text))

	for _, a := range msg.Attachments {
		style := attachmentBase
		if c, ok := attachmentColors[a.Color]; ok {
			style = style.BorderForeground(c).Foreground(c)
		}
		b.WriteString("\n")
		b.WriteString(style.Render(a.Text))
	}

	return b.String()
}
