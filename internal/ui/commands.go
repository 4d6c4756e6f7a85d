package ui

import (
	"fmt"

	"github.com/bz888/nopickles/internal/logger"
)

// runCommand handles slash commands and reports whether input was one.
// It runs on the event loop, so it touches widgets directly.
func (u *UI) runCommand(input string) bool {
	switch input {
	case "/help":
		u.listHelp(input)
	case "/bye", "/quit", "/exit":
		u.quitApp()
	case "/debug":
		u.toggleDebugConsole()
	case "/menu":
		fmt.Fprintf(u.textView, "[yellow::]Reloading menu...[-]\n\n")
		go u.loadMenu()
	case "/clear":
		u.clearConversation()
	default:
		return false
	}
	return true
}

func (u *UI) listHelp(content string) {
	fmt.Fprintln(u.textView, "[red::]You:[-]")
	fmt.Fprintf(u.textView, "%s\n\n", content)

	fmt.Fprintf(u.textView, "[green::]NoPickles Assistant:[-]\n")
	fmt.Fprintf(u.textView, "Here are some commands you can use:\n")
	fmt.Fprintf(u.textView, "- /help: Display this help message\n")
	fmt.Fprintf(u.textView, "- /menu: Reload the menu\n")
	fmt.Fprintf(u.textView, "- /clear: Start a new conversation\n")
	fmt.Fprintf(u.textView, "- /debug: Toggle the debug console\n")
	fmt.Fprintf(u.textView, "- /bye: Exit the application\n\n")
}

func (u *UI) clearConversation() {
	if u.session.Pending() {
		fmt.Fprintf(u.textView, "[yellow::]Wait for the current reply before starting over.[-]\n\n")
		return
	}
	u.session.Reset()
	u.textView.Clear()
	fmt.Fprintf(u.textView, "[green::]NoPickles Assistant:[-]\n%s\n\n", welcome)
	u.log.Info("Conversation cleared")
}

func (u *UI) toggleDebugConsole() {
	if u.debugShown {
		u.mainFlex.RemoveItem(u.debugConsole)
		fmt.Fprintf(u.textView, "\nDebug console disabled\n\n")
	} else {
		u.mainFlex.AddItem(u.debugConsole, 0, 1, false)
		fmt.Fprintf(u.textView, "\nDebug console enabled\n\n")
	}
	u.debugShown = !u.debugShown
	logger.SetDev(u.debugShown)
}

func (u *UI) quitApp() {
	fmt.Fprintf(u.textView, "Bye bye\n")
	u.log.Info("Shutting down gracefully.")
	u.Stop()
}
