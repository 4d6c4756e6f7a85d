package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/bz888/nopickles/internal/api"
	"github.com/bz888/nopickles/internal/chat"
	"github.com/bz888/nopickles/internal/logger"
	"github.com/bz888/nopickles/internal/menu"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	sendLabel    = "Send"
	pendingLabel = "Thinking..."

	menuWidth = 34

	welcome = "Welcome to NoPickles! Ask me about the menu or tell me what you'd like to order."
)

// UI is the terminal front end. It renders the menu and the transcript and
// implements menu.View and chat.View; those methods may be called from any
// goroutine.
type UI struct {
	app *tview.Application

	mainFlex     *tview.Flex
	menuTable    *tview.Table
	textView     *tview.TextView
	textArea     *tview.TextArea
	sendButton   *tview.Button
	debugConsole *tview.TextView
	debugShown   bool

	client  *api.Client
	session *chat.Session
	log     *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func New(dev bool) *UI {
	u := &UI{app: tview.NewApplication()}
	u.ctx, u.cancel = context.WithCancel(context.Background())

	u.app.EnablePaste(true)
	u.app.EnableMouse(true)

	u.debugConsole = u.initDebugConsole()
	u.menuTable = initMenuTable()
	u.textView = u.initChatViewer()
	u.textArea = initChatInput()
	u.sendButton = tview.NewButton(sendLabel).SetSelectedFunc(u.submit)

	u.layout(dev)
	u.setInputCapture()
	return u
}

// DebugConsole is the view the logger writes to in dev mode.
func (u *UI) DebugConsole() *tview.TextView {
	return u.debugConsole
}

// Attach connects the UI to a chat server. Call it after the logger is set up.
func (u *UI) Attach(client *api.Client) {
	u.client = client
	u.session = chat.NewSession(client, u)
	u.log = logger.NewLogger("views")
}

// Run loads the menu and blocks until the user quits.
func (u *UI) Run() error {
	defer u.cancel()

	fmt.Fprintf(u.textView, "[green::]NoPickles Assistant:[-]\n%s\n\n", welcome)

	if u.client != nil {
		go u.checkServer()
		go u.loadMenu()
	}
	return u.app.SetFocus(u.textArea).Run()
}

func (u *UI) Stop() {
	u.cancel()
	u.app.Stop()
}

func initMenuTable() *tview.Table {
	table := tview.NewTable().
		SetSelectable(false, false)
	table.SetTitle("Menu").SetBorder(true)
	return table
}

func (u *UI) initChatViewer() *tview.TextView {
	textView := tview.NewTextView().
		SetChangedFunc(func() {
			u.app.Draw()
		}).
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	textView.SetTitle("Conversation").SetBorder(true)
	textView.SetScrollable(true)
	textView.ScrollToEnd()
	return textView
}

func initChatInput() *tview.TextArea {
	textArea := tview.NewTextArea().
		SetPlaceholder("Type your order and press Enter (/help for commands)")
	textArea.SetTitle("Your message").SetBorder(true)
	return textArea
}

func (u *UI) initDebugConsole() *tview.TextView {
	console := tview.NewTextView().
		SetChangedFunc(func() {
			u.app.Draw()
		}).
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	console.SetTitle("Debugger").SetBorder(true)
	console.ScrollToEnd()
	return console
}

func (u *UI) layout(dev bool) {
	inputRow := tview.NewFlex().
		AddItem(u.textArea, 0, 1, true).
		AddItem(u.sendButton, len(pendingLabel)+4, 0, false)

	chatFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(u.textView, 0, 1, false).
		AddItem(inputRow, 5, 0, true)

	u.mainFlex = tview.NewFlex().
		AddItem(u.menuTable, menuWidth, 0, false).
		AddItem(chatFlex, 0, 2, true)

	if dev {
		u.mainFlex.AddItem(u.debugConsole, 0, 1, false)
		u.debugShown = true
	}
	u.app.SetRoot(u.mainFlex, true)
}

func (u *UI) setInputCapture() {
	u.textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter:
			u.app.SetFocus(u.textArea)
		}
		return event
	})

	u.textArea.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyESC:
			if u.textView.GetText(false) != "" {
				u.app.SetFocus(u.textView)
			}
		case tcell.KeyTab:
			u.app.SetFocus(u.sendButton)
			return nil
		case tcell.KeyEnter:
			u.submit()
			return nil
		}
		return event
	})

	u.sendButton.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab, tcell.KeyBacktab, tcell.KeyESC:
			u.app.SetFocus(u.textArea)
			return nil
		}
		return event
	})
}

// submit runs on the event loop, either from Enter or the send button.
func (u *UI) submit() {
	content := u.textArea.GetText()
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || u.session == nil {
		return
	}

	if u.runCommand(trimmed) {
		u.textArea.SetText("", false)
		return
	}

	go func() {
		if err := u.session.SendMessage(u.ctx, content); err != nil {
			u.log.Warn("Send failed: ", err)
		}
	}()
}

// loadMenu leaves the menu empty on failure; Load has already logged why.
func (u *UI) loadMenu() {
	_ = menu.Load(u.ctx, u.client, u)
}

func (u *UI) checkServer() {
	if err := u.client.Health(u.ctx); err != nil {
		u.log.Warn("Chat server not reachable: ", err)
		return
	}
	u.log.Info("Chat server is healthy")
}

// ClearMenu implements menu.View.
func (u *UI) ClearMenu() {
	u.app.QueueUpdateDraw(func() {
		u.menuTable.Clear()
	})
}

// AddMenuItem implements menu.View.
func (u *UI) AddMenuItem(name, price string) {
	u.app.QueueUpdateDraw(func() {
		row := u.menuTable.GetRowCount()
		u.menuTable.SetCell(row, 0, tview.NewTableCell(tview.Escape(name)).SetExpansion(1))
		u.menuTable.SetCell(row, 1, tview.NewTableCell(price).
			SetAlign(tview.AlignRight).
			SetTextColor(tcell.ColorGreen))
	})
}

// AddMessage implements chat.View.
func (u *UI) AddMessage(role chat.Role, content string) {
	u.app.QueueUpdateDraw(func() {
		u.writeMessage(role, content)
	})
}

func (u *UI) writeMessage(role chat.Role, content string) {
	switch role {
	case chat.RoleAssistant:
		fmt.Fprintln(u.textView, "[green::]NoPickles Assistant:[-]")
	default:
		fmt.Fprintln(u.textView, "[red::]You:[-]")
	}
	fmt.Fprintf(u.textView, "%s\n\n", tview.Escape(content))
	u.textView.ScrollToEnd()
}

// ClearInput implements chat.View.
func (u *UI) ClearInput() {
	u.app.QueueUpdateDraw(func() {
		u.textArea.SetText("", false)
	})
}

// SetPending implements chat.View.
func (u *UI) SetPending(pending bool) {
	u.app.QueueUpdateDraw(func() {
		u.textArea.SetDisabled(pending)
		u.sendButton.SetDisabled(pending)
		if pending {
			u.sendButton.SetLabel(pendingLabel)
		} else {
			u.sendButton.SetLabel(sendLabel)
		}
	})
}

// FocusInput implements chat.View.
func (u *UI) FocusInput() {
	u.app.QueueUpdateDraw(func() {
		u.app.SetFocus(u.textArea)
	})
}

var (
	_ menu.View = (*UI)(nil)
	_ chat.View = (*UI)(nil)
)
