// Package script drives sessions from Lua.
//
// A Runtime is a sandboxed gopher-lua state with the base, table, string
// and math libraries. Once bound to a session manager it exposes an
// `editor` table:
//
//	editor.new()                 -- new session, returns its sequence number
//	editor.open(path)            -- open path as a new session, returns loaded
//	editor.edit(text)            -- replace the active content
//	editor.save() / save_as()    -- returns the completion result
//	editor.close()               -- close the active session
//	editor.dispatch(action[, arg])
//	editor.key(accel)            -- dispatch the action bound to accel
//	editor.select(i)             -- activate the i-th session (1-based)
//	editor.title() / path() / dirty() / content() / count() / spans()
//
// Prompts are answered by the optional functions of a global `dialogs`
// table; see Dialogs.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/action"
	"github.com/dshills/zennote/internal/logging"
	"github.com/dshills/zennote/internal/session"
	"github.com/dshills/zennote/internal/vfs"
)

// DefaultTimeout bounds one script execution.
const DefaultTimeout = 30 * time.Second

// ErrClosed is returned after Close.
var ErrClosed = errors.New("script runtime closed")

// Runtime is a Lua state bound to the editor. It is not safe for
// concurrent use.
type Runtime struct {
	L       *lua.LState
	manager *session.Manager
	disp    *action.Dispatcher
	logger  *logging.Logger
	out     io.Writer
	timeout time.Duration
	closed  bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runtime) {
		r.logger = logging.OrNop(l)
	}
}

// WithOutput sets where print writes. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithTimeout bounds each execution. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

// New creates a sandboxed runtime. Call Bind before running scripts that
// use the editor table.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		logger:  logging.Nop(),
		out:     os.Stdout,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		r.L.SetGlobal(name, lua.LNil)
	}
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
	return r
}

// openSafeLibraries opens the libraries without file, process or module
// access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// Bind installs the editor table over m and d.
func (r *Runtime) Bind(m *session.Manager, d *action.Dispatcher) {
	r.manager = m
	r.disp = d
	r.L.SetGlobal("editor", r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"new":      r.editorNew,
		"open":     r.editorOpen,
		"edit":     r.editorEdit,
		"save":     r.editorSave,
		"save_as":  r.editorSaveAs,
		"close":    r.editorClose,
		"dispatch": r.editorDispatch,
		"key":      r.editorKey,
		"select":   r.editorSelect,
		"title":    r.editorTitle,
		"path":     r.editorPath,
		"dirty":    r.editorDirty,
		"content":  r.editorContent,
		"count":    r.editorCount,
		"spans":    r.editorSpans,
	}))
}

// DoString runs code.
func (r *Runtime) DoString(code string) error {
	return r.run("<string>", func() error { return r.L.DoString(code) })
}

// DoFile reads path from fsys and runs it.
func (r *Runtime) DoFile(fsys vfs.VFS, path string) error {
	src, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return r.run(path, func() error { return r.L.DoString(string(src)) })
}

func (r *Runtime) run(name string, fn func() error) (err error) {
	if r.closed {
		return ErrClosed
	}
	if r.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.L.SetContext(ctx)
		defer r.L.RemoveContext()
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
		if err != nil {
			r.logger.Warn("script failed", zap.String("script", name), zap.Error(err))
		}
	}()
	return fn()
}

// Close releases the Lua state.
func (r *Runtime) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.L.Close()
	return nil
}

func (r *Runtime) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
