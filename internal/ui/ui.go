// Package ui is the terminal front end: a scrolling conversation, an input
// box and a status line, all driven by a chat.Store.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"visionchat/internal/chat"
	"visionchat/internal/gateway"
	"visionchat/internal/models"
)

const helpText = `Commands:
- /image <path>: attach an image to the next turn
- /clear: drop the attached image
- /help: show this message
- /quit: exit`

type App struct {
	app      *tview.Application
	view     *tview.TextView
	input    *tview.TextArea
	status   *tview.TextView
	store    *chat.Store
	session  *chat.Session
	relayURL string
	logger   *zap.SugaredLogger
}

func New(store *chat.Store, session *chat.Session, relayURL string, logger *zap.SugaredLogger) *App {
	a := &App{
		app:      tview.NewApplication(),
		store:    store,
		session:  session,
		relayURL: relayURL,
		logger:   logger,
	}
	a.app.EnablePaste(true)

	a.view = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	a.view.SetTitle("VisionChat").SetBorder(true)

	a.input = tview.NewTextArea().SetPlaceholder("Ask something, or /help")
	a.input.SetTitle("Message").SetBorder(true)

	a.status = tview.NewTextView().SetDynamicColors(true)

	return a
}

// Run blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.store.Subscribe(func(st chat.State) {
		a.app.QueueUpdateDraw(func() { a.render(st) })
	})
	a.render(a.store.State())

	a.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter:
			a.submit(ctx, a.input.GetText())
			return nil
		case tcell.KeyESC:
			a.app.SetFocus(a.view)
			return nil
		}
		return event
	})
	a.view.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEnter || event.Key() == tcell.KeyESC {
			a.app.SetFocus(a.input)
			return nil
		}
		return event
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.view, 0, 1, false).
		AddItem(a.input, 5, 0, true).
		AddItem(a.status, 1, 0, false)

	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()

	return a.app.SetRoot(layout, true).SetFocus(a.input).Run()
}

func (a *App) submit(ctx context.Context, content string) {
	if cmd, arg, ok := parseCommand(content); ok {
		a.input.SetText("", true)
		a.runCommand(cmd, arg)
		return
	}

	st := a.store.State()
	if st.Loading {
		a.flash("[yellow]Still waiting for the last reply.[-]")
		return
	}
	if strings.TrimSpace(content) == "" && st.Image == "" {
		return
	}

	a.input.SetText("", true)
	a.store.Dispatch(chat.SetInput{Text: content})

	go func() {
		if err := a.session.Send(ctx); err != nil {
			a.logger.Warnw("turn failed", "error", err)
		}
	}()
}

func (a *App) runCommand(cmd, arg string) {
	switch cmd {
	case "quit", "bye", "exit":
		a.app.Stop()
	case "help":
		if a.store.State().Loading {
			a.flash("[yellow]Still waiting for the last reply.[-]")
			return
		}
		a.store.Dispatch(chat.ReplyReceived{Turn: chat.NewAITurn(helpText)})
	case "clear":
		a.store.Dispatch(chat.ClearImage{})
	case "image":
		if arg == "" {
			a.flash("[red]Usage: /image <path>[-]")
			return
		}
		uri, err := gateway.EncodeImageFile(arg)
		if err != nil {
			a.logger.Warnw("attaching image", "path", arg, "error", err)
			a.flash(fmt.Sprintf("[red]%s[-]", tview.Escape(err.Error())))
			return
		}
		a.store.Dispatch(chat.SelectImage{DataURI: uri})
	default:
		a.flash(fmt.Sprintf("[red]Unknown command /%s[-]", tview.Escape(cmd)))
	}
}

// flash overwrites the status line until the next state change.
func (a *App) flash(msg string) {
	a.status.SetText(msg)
}

func (a *App) render(st chat.State) {
	a.view.SetText(formatTurns(st))
	a.view.ScrollToEnd()
	a.status.SetText(statusLine(st, a.relayURL))
	a.input.SetDisabled(st.Loading)
}

// parseCommand splits "/name arg" lines. Anything not starting with "/" is a
// chat message.
func parseCommand(line string) (cmd, arg string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") || len(line) == 1 {
		return "", "", false
	}
	name, rest, _ := strings.Cut(line[1:], " ")
	return strings.ToLower(name), strings.TrimSpace(rest), true
}

func formatTurns(st chat.State) string {
	var b strings.Builder
	for _, t := range st.Turns {
		if t.Sender == models.SenderUser {
			b.WriteString("[red::b]You:[-::-]\n")
		} else {
			b.WriteString("[green::b]VisionChat:[-::-]\n")
		}
		if t.HasImage() {
			b.WriteString("[yellow](image attached)[-]\n")
		}
		if t.Text != "" {
			b.WriteString(tview.Escape(t.Text))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if st.Loading {
		b.WriteString("[gray]VisionChat is thinking…[-]\n")
	}
	return b.String()
}

func statusLine(st chat.State, relayURL string) string {
	parts := []string{fmt.Sprintf("relay %s", relayURL)}
	if st.Image != "" {
		parts = append(parts, "[yellow]image attached (/clear to drop)[-]")
	}
	if st.Loading {
		parts = append(parts, "waiting for reply")
	}
	return strings.Join(parts, " | ")
}
