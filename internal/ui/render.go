package ui

import (
	"fmt"
	"strings"

	"github.com/bz888/ollamachat/internal/registry"
	"github.com/bz888/ollamachat/internal/view"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

const (
	welcomeTitle = "🌱 Welcome!"
	welcomeHint  = "Select a model and start your conversation"
	typingText   = "AI Assistant is typing..."
)

// renderEntries turns the view into tview markup. Entry text is escaped so
// that brackets typed by the user or produced by the model stay literal.
func renderEntries(entries []view.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case view.KindWelcome:
			fmt.Fprintf(&b, "[::b]%s[::-]\n[gray]%s[-]\n\n", welcomeTitle, welcomeHint)
		case view.KindUser:
			fmt.Fprintf(&b, "[red::b]You:[-::-]\n%s\n\n", tview.Escape(e.Text))
		case view.KindAssistant:
			fmt.Fprintf(&b, "[green::b]AI Assistant:[-::-]\n%s\n\n", tview.Escape(e.Text))
		case view.KindError:
			fmt.Fprintf(&b, "[white:red] %s [-:-]\n\n", tview.Escape(e.Text))
		}
	}
	return b.String()
}

func renderSummary(s registry.Summary, width int) string {
	name := s.Name
	if width > 0 {
		name = runewidth.Truncate(name, width, "…")
	}
	return fmt.Sprintf("[::b]%s[::-]\n[gray]%s[-]", tview.Escape(name), tview.Escape(s.Meta))
}

func renderNotice(n registry.Notice) string {
	if n.Error {
		return "[red]" + tview.Escape(n.Text) + "[-]"
	}
	return "[gray]" + tview.Escape(n.Text) + "[-]"
}

func renderFields(fields []registry.Field) string {
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = fmt.Sprintf("[::b]%s:[::-] %s", f.Label, tview.Escape(f.Value))
	}
	return strings.Join(lines, "\n")
}
