package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/zennote/internal/action"
	"github.com/dshills/zennote/internal/document"
	"github.com/dshills/zennote/internal/keymap"
)

// complete runs op and pushes its result: true or false once completed,
// nil while it is still waiting on a dialog.
func complete(L *lua.LState, op func(document.Completion)) int {
	var result lua.LValue = lua.LNil
	op(func(ok bool) { result = lua.LBool(ok) })
	L.Push(result)
	return 1
}

func (r *Runtime) active(L *lua.LState) *document.Session {
	s := r.manager.Active()
	if s == nil {
		L.RaiseError("no active session")
	}
	return s
}

func (r *Runtime) editorNew(L *lua.LState) int {
	s := r.manager.NewSession()
	L.Push(lua.LNumber(s.Seq()))
	return 1
}

func (r *Runtime) editorOpen(L *lua.LState) int {
	path := L.CheckString(1)
	return complete(L, func(done document.Completion) {
		if err := r.disp.Dispatch(action.ActionOpenPath, path, done); err != nil {
			L.RaiseError("%s", err.Error())
		}
	})
}

func (r *Runtime) editorEdit(L *lua.LState) int {
	text := L.CheckString(1)
	if err := r.active(L).Edit(text); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (r *Runtime) editorSave(L *lua.LState) int {
	return complete(L, func(done document.Completion) {
		_ = r.disp.Dispatch(keymap.ActionSaveFile, "", done)
	})
}

func (r *Runtime) editorSaveAs(L *lua.LState) int {
	return complete(L, func(done document.Completion) {
		_ = r.disp.Dispatch(keymap.ActionSaveFileAs, "", done)
	})
}

func (r *Runtime) editorClose(L *lua.LState) int {
	return complete(L, func(done document.Completion) {
		_ = r.disp.Dispatch(keymap.ActionCloseFile, "", done)
	})
}

func (r *Runtime) editorDispatch(L *lua.LState) int {
	name := L.CheckString(1)
	arg := L.OptString(2, "")
	return complete(L, func(done document.Completion) {
		if err := r.disp.Dispatch(name, arg, done); err != nil {
			L.RaiseError("%s", err.Error())
		}
	})
}

func (r *Runtime) editorKey(L *lua.LState) int {
	accel := L.CheckString(1)
	var name string
	var err error
	n := complete(L, func(done document.Completion) {
		name, err = r.disp.DispatchAccelerator(accel, done)
	})
	if err != nil {
		L.Pop(n)
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(name))
	return n + 1
}

func (r *Runtime) editorSelect(L *lua.LState) int {
	i := L.CheckInt(1)
	L.Push(lua.LBool(r.manager.Select(i - 1)))
	return 1
}

func (r *Runtime) editorTitle(L *lua.LState) int {
	L.Push(lua.LString(r.active(L).Title()))
	return 1
}

func (r *Runtime) editorPath(L *lua.LState) int {
	L.Push(lua.LString(r.active(L).Path()))
	return 1
}

func (r *Runtime) editorDirty(L *lua.LState) int {
	L.Push(lua.LBool(r.active(L).Dirty()))
	return 1
}

func (r *Runtime) editorContent(L *lua.LState) int {
	L.Push(lua.LString(r.active(L).Content()))
	return 1
}

func (r *Runtime) editorCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.manager.Len()))
	return 1
}

// spans returns a list of {tag=, start=, finish=} tables with 0-based
// byte offsets.
func (r *Runtime) editorSpans(L *lua.LState) int {
	list := L.NewTable()
	for _, sp := range r.active(L).Spans() {
		t := L.NewTable()
		L.SetField(t, "tag", lua.LString(sp.Tag))
		L.SetField(t, "start", lua.LNumber(sp.Start))
		L.SetField(t, "finish", lua.LNumber(sp.End))
		list.Append(t)
	}
	L.Push(list)
	return 1
}
