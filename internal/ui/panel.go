package ui

import (
	"github.com/bz888/ollamachat/internal/ollama"
	"github.com/bz888/ollamachat/internal/registry"
)

// The methods below satisfy registry.Panel and chat.Controls. They are
// called from worker goroutines and hop onto the event loop.

func (a *App) SetModels(models []ollama.Model) {
	options := make([]string, 0, len(models)+1)
	options = append(options, placeholderModel)
	for _, m := range models {
		options = append(options, m.Name)
	}

	a.app.QueueUpdateDraw(func() {
		a.options = options
		a.modelDropDown.SetSelectedFunc(nil)
		a.modelDropDown.SetOptions(options, nil).SetCurrentOption(0)
		a.modelDropDown.SetSelectedFunc(a.onDropDownSelected)

		a.modelList.Clear()
		for _, m := range models {
			name := m.Name
			a.modelList.AddItem(name, registry.Summarize(m).Meta, 0, func() {
				go a.registry.Select(a.ctx, name)
			})
		}
	})
}

func (a *App) SetSelected(name string) {
	a.app.QueueUpdateDraw(func() {
		index := optionIndex(a.options, name)
		a.modelDropDown.SetSelectedFunc(nil)
		a.modelDropDown.SetCurrentOption(index)
		a.modelDropDown.SetSelectedFunc(a.onDropDownSelected)

		if index > 0 && index-1 < a.modelList.GetItemCount() {
			a.modelList.SetCurrentItem(index - 1)
		}
	})
}

func (a *App) SetSummary(s registry.Summary) {
	a.app.QueueUpdateDraw(func() {
		a.summaryView.SetText(renderSummary(s, sidebarWidth-4))
	})
}

func (a *App) SetSummaryNotice(n registry.Notice) {
	a.app.QueueUpdateDraw(func() {
		a.summaryView.SetText(renderNotice(n))
	})
}

func (a *App) SetDetails(fields []registry.Field) {
	a.app.QueueUpdateDraw(func() {
		a.detailsView.SetText(renderFields(fields))
	})
}

func (a *App) SetDetailsNotice(n registry.Notice) {
	a.app.QueueUpdateDraw(func() {
		a.detailsView.SetText(renderNotice(n))
	})
}

func (a *App) ClearInput() {
	a.app.QueueUpdateDraw(func() {
		a.textArea.SetText("", true)
	})
}

func (a *App) SetBusy(busy bool) {
	a.busy.Store(busy)
	a.app.QueueUpdateDraw(func() {
		a.textArea.SetDisabled(busy)
		if busy {
			a.sendButton.SetLabel("...")
			a.statusLine.SetText("[gray]" + typingText + "[-]")
		} else {
			a.sendButton.SetLabel("Send")
			a.statusLine.SetText("")
		}
	})
}

func (a *App) FocusInput() {
	a.app.QueueUpdateDraw(func() {
		a.app.SetFocus(a.textArea)
	})
}

// optionIndex finds name among the dropdown options, skipping the
// placeholder at 0. It returns 0 when name is not listed.
func optionIndex(options []string, name string) int {
	if name == "" {
		return 0
	}
	for i := 1; i < len(options); i++ {
		if options[i] == name {
			return i
		}
	}
	return 0
}
