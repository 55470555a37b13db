package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/zennote/internal/dialog"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptPath
	promptChoice
)

// Prompt answers dialog requests on the terminal status line.
//
// At most one request is open at a time; a request arriving while another
// is open is dismissed immediately. Replies resolve from HandleKey, so the
// continuation runs on the event loop.
type Prompt struct {
	kind  promptKind
	label string
	input []rune

	path   *dialog.Reply[dialog.PathResult]
	choice *dialog.Reply[dialog.Choice]
}

var _ dialog.Dialogs = (*Prompt)(nil)

// NewPrompt creates an idle prompt.
func NewPrompt() *Prompt {
	return &Prompt{}
}

// Active reports whether a request is waiting for an answer.
func (p *Prompt) Active() bool {
	return p.kind != promptNone
}

// Text returns the status line for the open request.
func (p *Prompt) Text() string {
	if p.kind == promptPath {
		return p.label + string(p.input)
	}
	return p.label
}

// RequestOpenPath implements dialog.Dialogs.
func (p *Prompt) RequestOpenPath() *dialog.Reply[dialog.PathResult] {
	return p.askPath("Open: ")
}

// RequestSavePath implements dialog.Dialogs.
func (p *Prompt) RequestSavePath() *dialog.Reply[dialog.PathResult] {
	return p.askPath("Save as: ")
}

// ConfirmUnsaved implements dialog.Dialogs.
func (p *Prompt) ConfirmUnsaved(name string) *dialog.Reply[dialog.Choice] {
	if p.Active() {
		return dialog.Resolved(dialog.Cancel)
	}
	p.kind = promptChoice
	p.label = "Save changes to " + name + "? [s]ave [d]iscard [c]ancel"
	p.choice = dialog.NewReply[dialog.Choice]()
	return p.choice
}

func (p *Prompt) askPath(label string) *dialog.Reply[dialog.PathResult] {
	if p.Active() {
		return dialog.Resolved(dialog.NoPath())
	}
	p.kind = promptPath
	p.label = label
	p.input = p.input[:0]
	p.path = dialog.NewReply[dialog.PathResult]()
	return p.path
}

// HandleKey feeds a key to the open request. It reports whether the key
// was consumed.
func (p *Prompt) HandleKey(ev *tcell.EventKey) bool {
	switch p.kind {
	case promptPath:
		p.pathKey(ev)
	case promptChoice:
		p.choiceKey(ev)
	default:
		return false
	}
	return true
}

func (p *Prompt) pathKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.answerPath(dialog.NoPath())
	case tcell.KeyEnter:
		if len(p.input) == 0 {
			p.answerPath(dialog.NoPath())
			return
		}
		p.answerPath(dialog.Path(string(p.input)))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(p.input); n > 0 {
			p.input = p.input[:n-1]
		}
	case tcell.KeyRune:
		p.input = append(p.input, ev.Rune())
	}
}

func (p *Prompt) choiceKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		p.answerChoice(dialog.Cancel)
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 's', 'S':
		p.answerChoice(dialog.Save)
	case 'd', 'D':
		p.answerChoice(dialog.Discard)
	case 'c', 'C':
		p.answerChoice(dialog.Cancel)
	}
}

// answerPath resets before resolving so a continuation can open the next
// request.
func (p *Prompt) answerPath(res dialog.PathResult) {
	reply := p.path
	p.reset()
	reply.Resolve(res)
}

func (p *Prompt) answerChoice(c dialog.Choice) {
	reply := p.choice
	p.reset()
	reply.Resolve(c)
}

func (p *Prompt) reset() {
	p.kind = promptNone
	p.label = ""
	p.input = p.input[:0]
	p.path = nil
	p.choice = nil
}
