package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/action"
	"github.com/dshills/zennote/internal/document"
	"github.com/dshills/zennote/internal/logging"
	"github.com/dshills/zennote/internal/render"
)

// QuitAccelerator closes every session and exits. It applies only when
// the keymap does not bind it.
const QuitAccelerator = "<Ctrl>q"

// Terminal is the interactive front end: a tab bar, the active session's
// content and a status line.
//
// All session operations run on the goroutine calling Run or HandleEvent.
type Terminal struct {
	app    *App
	screen tcell.Screen
	prompt *Prompt
	logger *logging.Logger

	view *render.View
	tabs *render.TabBar

	attached *document.Session
	status   string
	quitting bool
	done     bool
}

// NewTerminal creates a front end for a drawing on screen. prompt must be
// the dialog collaborator a was built with.
func NewTerminal(a *App, screen tcell.Screen, prompt *Prompt) *Terminal {
	t := &Terminal{
		app:    a,
		screen: screen,
		prompt: prompt,
		logger: a.Logger().WithComponent("terminal"),
		view:   render.NewView(a.Theme()),
		tabs:   render.NewTabBar(),
	}
	a.Manager().OnChange(t.sync)
	t.sync()
	return t
}

// Run processes screen events until the user quits or ctx is cancelled.
// The screen must already be initialized.
func (t *Terminal) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for !t.done {
		t.Draw()
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		t.HandleEvent(ev)
	}
	return nil
}

// Done reports whether the user has quit.
func (t *Terminal) Done() bool {
	return t.done
}

// Status returns the last status message.
func (t *Terminal) Status() string {
	return t.status
}

// View returns the presenter of the active session.
func (t *Terminal) View() *render.View {
	return t.view
}

// HandleEvent processes one screen event.
func (t *Terminal) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		t.handleKey(ev)
	}
}

func (t *Terminal) handleKey(ev *tcell.EventKey) {
	if t.prompt.HandleKey(ev) {
		return
	}

	if accel := render.Accelerator(ev); accel != "" {
		name, err := t.app.Dispatcher().DispatchAccelerator(accel, t.report(accel))
		switch {
		case err == nil:
			t.logger.Debug("accelerator dispatched", zap.String("accel", accel), zap.String("action", name))
			return
		case errors.Is(err, action.ErrUnboundAccelerator):
			if accel == QuitAccelerator {
				t.quit()
				return
			}
		default:
			t.status = err.Error()
			return
		}
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			t.app.Manager().Previous()
		}
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			t.app.Manager().Next()
		}
	case tcell.KeyPgUp:
		t.view.ScrollBy(-t.pageHeight())
	case tcell.KeyPgDn:
		t.view.ScrollBy(t.pageHeight())
	case tcell.KeyEnter:
		t.insert("\n")
	case tcell.KeyTab:
		t.insert("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.deleteLast()
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
			t.insert(string(ev.Rune()))
		}
	}
}

// report returns a completion that shows the outcome on the status line.
func (t *Terminal) report(what string) document.Completion {
	return func(ok bool) {
		if ok {
			t.status = what + ": done"
		} else {
			t.status = what + ": cancelled"
		}
	}
}

// quit closes sessions one after another, asking about unsaved changes,
// and stops when all are closed. A cancelled close aborts the quit.
func (t *Terminal) quit() {
	t.quitting = true
	m := t.app.Manager()
	if m.Len() == 0 {
		t.done = true
		return
	}
	m.CloseActive(func(ok bool) {
		if !ok {
			t.quitting = false
			t.status = "quit cancelled"
			return
		}
		if t.quitting {
			t.quit()
		}
	})
}

func (t *Terminal) insert(text string) {
	s := t.app.Manager().Active()
	if s == nil {
		return
	}
	if err := s.Edit(s.Content() + text); err != nil {
		t.status = err.Error()
	}
}

// deleteLast removes the last grapheme cluster of the active session.
func (t *Terminal) deleteLast() {
	s := t.app.Manager().Active()
	if s == nil || s.Content() == "" {
		return
	}
	content := s.Content()
	last := 0
	rest := content
	state := -1
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if rest != "" {
			last += len(cluster)
		}
	}
	if err := s.Edit(content[:last]); err != nil {
		t.status = err.Error()
	}
}

// sync attaches the view to the active session.
func (t *Terminal) sync() {
	active := t.app.Manager().Active()
	if active == t.attached {
		return
	}
	if t.attached != nil && !t.attached.Closed() {
		t.attached.Attach(nil)
	}
	t.attached = active
	t.view.ClearTags()
	if active != nil {
		active.Attach(t.view)
	}
}

func (t *Terminal) pageHeight() int {
	_, h := t.screen.Size()
	if h <= 3 {
		return 1
	}
	return h - 2
}

// Draw renders the tab bar, the active session and the status line.
func (t *Terminal) Draw() {
	t.sync()
	t.screen.Clear()
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	m := t.app.Manager()
	sessions := m.Sessions()
	tabs := make([]render.Tab, len(sessions))
	for i, s := range sessions {
		tabs[i] = render.Tab{Title: s.Title(), Dirty: s.Dirty()}
	}
	t.tabs.Draw(t.screen, 0, w, tabs, m.ActiveIndex())

	if h > 2 {
		area := render.Rect{X: 0, Y: 1, Width: w, Height: h - 2}
		if active := m.Active(); active != nil {
			t.view.Draw(t.screen, area, active.Content())
		}
	}

	render.DrawStatus(t.screen, h-1, w, t.statusLine(), tcell.StyleDefault.Reverse(true))
	t.screen.Show()
}

func (t *Terminal) statusLine() string {
	if t.prompt.Active() {
		return t.prompt.Text()
	}
	if t.status != "" {
		return t.status
	}
	active := t.app.Manager().Active()
	if active == nil {
		return "no open files"
	}
	return fmt.Sprintf("%s [%s]", active.Title(), active.State())
}
