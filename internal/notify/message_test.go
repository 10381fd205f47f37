// internal/notify/message_test.go
package notify

import (
	"testing"

	"github.com/tamzrod/stalewatch/internal/state"
)

const testIcon = "http://example.com/icon.png"

func TestPluralize(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{-2, "nodes"},
		{-1, "nodes"},
		{0, "nodes"},
		{1, "node"},
		{2, "nodes"},
		{100, "nodes"},
	}

	for _, tc := range cases {
		if got := Pluralize(tc.count, "node", "nodes"); got != tc.want {
			t.Fatalf("Pluralize(%d) = %q, want %q", tc.count, got, tc.want)
		}
	}

	if got := Pluralize(1, "is", "are"); got != "is" {
		t.Fatalf("Pluralize(1, is, are) = %q", got)
	}
	if got := Pluralize(0, "is", "are"); got != "are" {
		t.Fatalf("Pluralize(0, is, are) = %q", got)
	}
}

func TestFormat_FirstRun(t *testing.T) {
	c := state.Classify(state.NewSet("a.example.com", "b.example.com"), state.NewSet())

	msg := Format(c, testIcon)

	if len(msg.Attachments) == 0 {
		t.Fatalf("expected attachments")
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(msg.Attachments))
	}

	a := msg.Attachments[0]
	if a.Color != ColorWarning {
		t.Fatalf("color = %q, want %q", a.Color, ColorWarning)
	}
	wantList := " - a.example.com\n - b.example.com"
	if a.Text != wantList || a.Fallback != wantList {
		t.Fatalf("attachment text=%q fallback=%q, want %q", a.Text, a.Fallback, wantList)
	}

	wantText := "2 nodes in your network just went stale\n" +
		"There are currently 2 stale nodes."
	if msg.Text != wantText {
		t.Fatalf("text = %q, want %q", msg.Text, wantText)
	}
	if msg.IconURL != testIcon {
		t.Fatalf("icon = %q", msg.IconURL)
	}
}

func TestFormat_NoChangeIsEmpty(t *testing.T) {
	c := state.Classify(state.NewSet("a.example.com"), state.NewSet("a.example.com"))

	msg := Format(c, testIcon)

	if len(msg.Attachments) != 0 {
		t.Fatalf("expected no attachments, got %d", len(msg.Attachments))
	}
	// total line is still built, it just never gets sent
	if msg.Text != "There is currently 1 stale node." {
		t.Fatalf("text = %q", msg.Text)
	}
}

func TestFormat_FullRecovery(t *testing.T) {
	c := state.Classify(state.NewSet(), state.NewSet("a.example.com"))

	msg := Format(c, testIcon)

	if len(msg.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(msg.Attachments))
	}
	if msg.Attachments[0].Color != ColorGood {
		t.Fatalf("color = %q, want %q", msg.Attachments[0].Color, ColorGood)
	}
	if msg.Attachments[0].Text != " - a.example.com" {
		t.Fatalf("attachment text = %q", msg.Attachments[0].Text)
	}

	wantText := "1 node in your network has freshened\n" +
		"There are currently 0 stale nodes."
	if msg.Text != wantText {
		t.Fatalf("text = %q, want %q", msg.Text, wantText)
	}
}

func TestFormat_Mixed(t *testing.T) {
	c := state.Classify(
		state.NewSet("b.example.com", "c.example.com"),
		state.NewSet("a.example.com", "b.example.com"),
	)

	msg := Format(c, testIcon)

	if len(msg.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(msg.Attachments))
	}
	if msg.Attachments[0].Color != ColorWarning || msg.Attachments[0].Text != " - c.example.com" {
		t.Fatalf("first attachment = %+v", msg.Attachments[0])
	}
	if msg.Attachments[1].Color != ColorGood || msg.Attachments[1].Text != " - a.example.com" {
		t.Fatalf("second attachment = %+v", msg.Attachments[1])
	}

	wantText := "1 node in your network just went stale\n" +
		"1 node in your network has freshened\n" +
		"There are currently 2 stale nodes."
	if msg.Text != wantText {
		t.Fatalf("text = %q, want %q", msg.Text, wantText)
	}
}

func TestFormat_PluralFreshened(t *testing.T) {
	c := state.Classify(state.NewSet("z"), state.NewSet("x", "y", "z"))

	msg := Format(c, "")

	wantText := "2 nodes in your network have freshened\n" +
		"There is currently 1 stale node."
	if msg.Text != wantText {
		t.Fatalf("text = %q, want %q", msg.Text, wantText)
	}
}
