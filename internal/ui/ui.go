package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/bz888/ollamachat/internal/chat"
	"github.com/bz888/ollamachat/internal/config"
	"github.com/bz888/ollamachat/internal/logger"
	"github.com/bz888/ollamachat/internal/ollama"
	"github.com/bz888/ollamachat/internal/registry"
	"github.com/bz888/ollamachat/internal/view"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	sidebarWidth     = 36
	placeholderModel = "Select a model..."
	pageMain         = "main"
	pageHelp         = "help"
)

// App is the terminal front end. Widgets are only touched from the tview
// event loop; everything else reaches them through QueueUpdateDraw.
type App struct {
	app      *tview.Application
	pages    *tview.Pages
	mainFlex *tview.Flex

	modelDropDown *tview.DropDown
	modelList     *tview.List
	summaryView   *tview.TextView
	detailsView   *tview.TextView
	conversation  *tview.TextView
	statusLine    *tview.TextView
	textArea      *tview.TextArea
	sendButton    *tview.Button
	clearButton   *tview.Button
	debugConsole  *tview.TextView
	debugVisible  bool
	options       []string

	client   *ollama.Client
	messages *view.View
	registry *registry.Registry
	session  *chat.Session

	ctx    context.Context
	cancel context.CancelFunc
	busy   atomic.Bool
	log    *logger.Logger
}

func New(cfg *config.Config) (*App, error) {
	clientConfig, err := ollama.ConfigFromURL(cfg.Host)
	if err != nil {
		return nil, err
	}

	a := &App{
		app:      tview.NewApplication(),
		client:   ollama.NewClient(clientConfig),
		messages: view.New(view.WithDismissDelay(cfg.ErrorDismiss)),
		log:      logger.NewLogger("views"),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.registry = registry.New(a.client, a)
	a.session = chat.NewSession(a.client, a.registry, a.messages, a)

	a.app.EnablePaste(true)
	a.app.EnableMouse(true)

	a.debugConsole = initDebugConsole(a.app)
	a.initSidebar()
	a.initChat()
	a.layout(cfg.Dev)

	a.messages.OnChange(a.renderConversation)
	a.conversation.SetText(renderEntries(a.messages.Entries()))
	return a, nil
}

// DebugConsole is the writer the logger mirrors into in dev mode.
func (a *App) DebugConsole() *tview.TextView {
	return a.debugConsole
}

func initDebugConsole(app *tview.Application) *tview.TextView {
	console := tview.NewTextView().
		SetChangedFunc(func() {
			app.Draw()
		}).
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	console.SetTitle("Debugger").SetBorder(true)
	console.ScrollToEnd()
	return console
}

func (a *App) initSidebar() {
	a.modelDropDown = tview.NewDropDown().
		SetLabel("Model: ").
		SetOptions([]string{placeholderModel}, nil).
		SetCurrentOption(0)
	a.modelDropDown.SetSelectedFunc(a.onDropDownSelected)

	a.modelList = tview.NewList().ShowSecondaryText(true)
	a.modelList.SetTitle("Models").SetBorder(true)

	a.summaryView = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true)
	a.summaryView.SetTitle("Selected model").SetBorder(true)
	a.summaryView.SetText(renderNotice(registry.Notice{Text: "Loading models..."}))

	a.detailsView = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true)
	a.detailsView.SetTitle("Details").SetBorder(true)
}

func (a *App) initChat() {
	a.conversation = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	a.conversation.SetTitle("Conversation").SetBorder(true)
	a.conversation.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter:
			a.app.SetFocus(a.textArea)
		}
		return event
	})

	a.statusLine = tview.NewTextView().SetDynamicColors(true)

	a.textArea = tview.NewTextArea().SetPlaceholder("Type a message, /help for commands")
	a.textArea.SetTitle("Question").SetBorder(true)
	a.textArea.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyESC:
			if a.conversation.GetText(false) != "" {
				a.app.SetFocus(a.conversation)
			}
		case tcell.KeyEnter:
			if event.Modifiers()&(tcell.ModAlt|tcell.ModShift) != 0 {
				return event
			}
			a.submit()
			return nil
		}
		return event
	})

	a.sendButton = tview.NewButton("Send").SetSelectedFunc(a.submit)
	a.clearButton = tview.NewButton("Clear").SetSelectedFunc(func() {
		go a.messages.Clear()
	})
}

func (a *App) layout(dev bool) {
	sidebar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.modelDropDown, 1, 0, false).
		AddItem(a.modelList, 0, 1, false).
		AddItem(a.summaryView, 4, 0, false).
		AddItem(a.detailsView, 6, 0, false)

	buttons := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 1, 0, false).
		AddItem(a.sendButton, 1, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(a.clearButton, 1, 0, false).
		AddItem(nil, 0, 1, false)

	inputRow := tview.NewFlex().
		AddItem(a.textArea, 0, 1, true).
		AddItem(buttons, 9, 0, false)

	chatColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.conversation, 0, 1, false).
		AddItem(a.statusLine, 1, 0, false).
		AddItem(inputRow, 6, 0, true)

	a.mainFlex = tview.NewFlex().
		AddItem(sidebar, sidebarWidth, 0, false).
		AddItem(chatColumn, 0, 2, true)

	if dev {
		a.mainFlex.AddItem(a.debugConsole, 0, 1, false)
		a.debugVisible = true
	}

	a.pages = tview.NewPages().AddPage(pageMain, a.mainFlex, true, true)
}

// Run loads the model list in the background and blocks until the UI exits.
func (a *App) Run() error {
	defer a.cancel()
	go a.loadModels()

	return a.app.SetRoot(a.pages, true).SetFocus(a.textArea).Run()
}

func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

func (a *App) loadModels() {
	err := a.registry.Load(a.ctx)
	if err == nil {
		a.log.Info("Models loaded from", a.client.BaseURL())
		return
	}
	if ollama.IsKind(err, ollama.KindConnection) {
		a.messages.AppendTransientError(fmt.Sprintf(
			"Failed to connect to Ollama. Make sure it is running at %s.", a.client.BaseURL()))
	}
}

func (a *App) renderConversation() {
	text := renderEntries(a.messages.Entries())
	a.app.QueueUpdateDraw(func() {
		a.conversation.SetText(text)
		a.conversation.ScrollToEnd()
	})
}

func (a *App) submit() {
	content := a.textArea.GetText()
	if strings.TrimSpace(content) == "" {
		return
	}
	if cmd, arg := parseCommand(content); cmd != cmdNone {
		a.textArea.SetText("", true)
		a.runCommand(cmd, arg)
		return
	}

	if a.busy.Load() {
		return
	}

	a.busy.Store(true)
	go func() {
		err := a.session.Send(a.ctx, content)
		if errors.Is(err, chat.ErrEmptyInput) || errors.Is(err, chat.ErrNoModel) || errors.Is(err, chat.ErrBusy) {
			a.busy.Store(false)
		}
	}()
}

func (a *App) runCommand(cmd command, arg string) {
	switch cmd {
	case cmdHelp:
		a.showHelp()
	case cmdClear:
		go a.messages.Clear()
	case cmdModels:
		a.app.SetFocus(a.modelList)
	case cmdModel:
		go func() {
			if err := a.registry.Select(a.ctx, arg); errors.Is(err, registry.ErrUnknownModel) {
				a.messages.AppendTransientError("Unknown model: " + arg)
			}
		}()
	case cmdDebug:
		a.toggleDebugConsole()
	case cmdQuit:
		a.Stop()
	}
}

func (a *App) showHelp() {
	modal := tview.NewModal().
		SetText(helpText).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			a.pages.RemovePage(pageHelp)
			a.app.SetFocus(a.textArea)
		})
	a.pages.AddPage(pageHelp, modal, true, true)
	a.app.SetFocus(modal)
}

func (a *App) toggleDebugConsole() {
	if a.debugVisible {
		a.mainFlex.RemoveItem(a.debugConsole)
		logger.SetConsole(nil)
	} else {
		a.mainFlex.AddItem(a.debugConsole, 0, 1, false)
		logger.SetConsole(a.debugConsole)
	}
	a.debugVisible = !a.debugVisible
}

func (a *App) onDropDownSelected(text string, index int) {
	name := text
	if index <= 0 {
		name = ""
	}
	go a.registry.Select(a.ctx, name)
}
