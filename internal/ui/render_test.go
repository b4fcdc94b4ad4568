package ui

import (
	"strings"
	"testing"

	"github.com/bz888/ollamachat/internal/registry"
	"github.com/bz888/ollamachat/internal/view"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func TestRenderEntriesOrderAndLabels(t *testing.T) {
	out := renderEntries([]view.Entry{
		{Kind: view.KindUser, Text: "hi"},
		{Kind: view.KindAssistant, Text: "Hello"},
		{Kind: view.KindError, Text: "Failed to get response: boom"},
	})

	you := strings.Index(out, "You:")
	bot := strings.Index(out, "AI Assistant:")
	errAt := strings.Index(out, "Failed to get response: boom")
	assert.True(t, you >= 0 && you < bot && bot < errAt, out)
	assert.Contains(t, out, "Hello")
}

func TestRenderEscapesMarkup(t *testing.T) {
	out := renderEntries([]view.Entry{
		{Kind: view.KindUser, Text: "<b>hi</b>"},
		{Kind: view.KindUser, Text: "[red]alarm[-]"},
		{Kind: view.KindAssistant, Text: "use [yellow::b]tags[-::-]"},
	})

	assert.Contains(t, out, "<b>hi</b>")
	assert.Contains(t, out, tview.Escape("[red]alarm[-]"))
	assert.NotContains(t, out, "[red]alarm")
	assert.NotContains(t, out, "[yellow::b]tags")
}

func TestRenderWelcome(t *testing.T) {
	out := renderEntries([]view.Entry{{Kind: view.KindWelcome}})
	assert.Contains(t, out, "Welcome!")
	assert.Contains(t, out, "Select a model and start your conversation")
	assert.Equal(t, 1, strings.Count(out, "Welcome!"))
}

func TestRenderSummaryTruncates(t *testing.T) {
	out := renderSummary(registry.Summary{
		Name: "a-really-long-model-name-that-will-not-fit:latest",
		Meta: "4.34 GB • 2024-05-01",
	}, 20)
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, ":latest")
	assert.Contains(t, out, "4.34 GB • 2024-05-01")
}

func TestRenderFields(t *testing.T) {
	out := renderFields([]registry.Field{
		{Label: "Model", Value: "llama3"},
		{Label: "Parameters", Value: "8.0B"},
	})
	assert.Equal(t, "[::b]Model:[::-] llama3\n[::b]Parameters:[::-] 8.0B", out)
}

func TestRenderNotice(t *testing.T) {
	assert.Equal(t, "[red]Failed to load models[-]", renderNotice(registry.Notice{Text: "Failed to load models", Error: true}))
	assert.Equal(t, "[gray]No models available[-]", renderNotice(registry.Notice{Text: "No models available"}))
}
