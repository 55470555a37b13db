package script

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/dialog"
)

// Dialogs answers prompts by calling the functions of the global
// `dialogs` table:
//
//	dialogs.open_path()     -- path string, or nil to dismiss
//	dialogs.save_path()     -- path string, or nil to dismiss
//	dialogs.confirm(name)   -- "save", "discard" or "cancel"
//
// A missing function, a failing call or an unexpected answer dismisses the
// prompt.
type Dialogs struct {
	r *Runtime
}

var _ dialog.Dialogs = (*Dialogs)(nil)

// Dialogs returns the dialogs answered by this runtime's scripts.
func (r *Runtime) Dialogs() *Dialogs {
	return &Dialogs{r: r}
}

// call invokes dialogs.<name>(args...) and returns its first result, or
// nil.
func (d *Dialogs) call(name string, args ...lua.LValue) lua.LValue {
	if d.r.closed {
		return lua.LNil
	}
	L := d.r.L
	tbl, ok := L.GetGlobal("dialogs").(*lua.LTable)
	if !ok {
		return lua.LNil
	}
	fn, ok := L.GetField(tbl, name).(*lua.LFunction)
	if !ok {
		return lua.LNil
	}

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		d.r.logger.Warn("dialog callback failed", zap.String("dialog", name), zap.Error(err))
		return lua.LNil
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

func (d *Dialogs) path(name string) *dialog.Reply[dialog.PathResult] {
	if s, ok := d.call(name).(lua.LString); ok && s != "" {
		return dialog.Resolved(dialog.Path(string(s)))
	}
	return dialog.Resolved(dialog.NoPath())
}

// RequestOpenPath implements dialog.Dialogs.
func (d *Dialogs) RequestOpenPath() *dialog.Reply[dialog.PathResult] {
	return d.path("open_path")
}

// RequestSavePath implements dialog.Dialogs.
func (d *Dialogs) RequestSavePath() *dialog.Reply[dialog.PathResult] {
	return d.path("save_path")
}

// ConfirmUnsaved implements dialog.Dialogs.
func (d *Dialogs) ConfirmUnsaved(name string) *dialog.Reply[dialog.Choice] {
	s, ok := d.call("confirm", lua.LString(name)).(lua.LString)
	if !ok {
		return dialog.Resolved(dialog.Cancel)
	}
	c, err := dialog.ParseChoice(string(s))
	if err != nil {
		d.r.logger.Warn("unexpected confirm answer", zap.String("answer", string(s)))
		return dialog.Resolved(dialog.Cancel)
	}
	return dialog.Resolved(c)
}
