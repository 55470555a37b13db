// Package action routes named actions and key accelerators to session
// operations.
package action

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/dialog"
	"github.com/dshills/zennote/internal/document"
	"github.com/dshills/zennote/internal/keymap"
	"github.com/dshills/zennote/internal/logging"
	"github.com/dshills/zennote/internal/session"
)

// ActionOpenPath opens its argument as a new session. It is what a file
// browser invokes; it has no accelerator.
const ActionOpenPath = "open-path"

var (
	// ErrUnknownAction is returned for an action without a handler.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnboundAccelerator is returned for an accelerator missing from
	// the keymap.
	ErrUnboundAccelerator = errors.New("accelerator not bound")

	// ErrMissingArgument is returned when an action needs an argument.
	ErrMissingArgument = errors.New("missing argument")
)

// Handler performs an action. arg is empty for actions without one.
// Handlers report their outcome through done exactly once.
type Handler func(arg string, done document.Completion)

// Dispatcher maps action names to handlers.
//
// Handlers run on the caller's goroutine. SetKeymap may be called from
// any goroutine.
type Dispatcher struct {
	manager *session.Manager
	dialogs dialog.Dialogs
	logger  *logging.Logger

	handlers map[string]Handler

	mu     sync.RWMutex
	keymap keymap.Keymap
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithKeymap sets the accelerator bindings.
func WithKeymap(km keymap.Keymap) Option {
	return func(d *Dispatcher) {
		d.keymap = km.Clone()
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logging.OrNop(l)
	}
}

// New creates a dispatcher with the window actions registered.
func New(m *session.Manager, dialogs dialog.Dialogs, opts ...Option) *Dispatcher {
	if dialogs == nil {
		dialogs = dialog.Decline{}
	}
	d := &Dispatcher{
		manager:  m,
		dialogs:  dialogs,
		logger:   logging.Nop(),
		handlers: make(map[string]Handler),
		keymap:   keymap.Keymap{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.WithComponent("action")

	d.Register(keymap.ActionNewFile, d.newFile)
	d.Register(keymap.ActionOpenFile, d.openFile)
	d.Register(keymap.ActionSaveFile, d.saveFile)
	d.Register(keymap.ActionSaveFileAs, d.saveFileAs)
	d.Register(keymap.ActionCloseFile, d.closeFile)
	d.Register(ActionOpenPath, d.openPath)
	return d
}

// Register adds or replaces the handler for name.
func (d *Dispatcher) Register(name string, h Handler) {
	d.handlers[name] = h
}

// Actions returns the registered action names, sorted.
func (d *Dispatcher) Actions() []string {
	names := make([]string, 0, len(d.handlers))
	for n := range d.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetKeymap replaces the accelerator bindings.
func (d *Dispatcher) SetKeymap(km keymap.Keymap) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keymap = km.Clone()
	d.logger.Info("keymap updated", zap.Int("bindings", len(km)))
}

// Keymap returns a copy of the accelerator bindings.
func (d *Dispatcher) Keymap() keymap.Keymap {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.keymap.Clone()
}

// Dispatch runs the named action. An unknown action returns
// ErrUnknownAction and done is not called.
func (d *Dispatcher) Dispatch(name, arg string, done document.Completion) error {
	h, ok := d.handlers[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if name == ActionOpenPath && arg == "" {
		return fmt.Errorf("%w: %s needs a path", ErrMissingArgument, name)
	}

	d.logger.Debug("dispatch", zap.String("action", name), zap.String("arg", arg))
	h(arg, func(ok bool) {
		d.logger.Debug("action finished", zap.String("action", name), zap.Bool("ok", ok))
		if done != nil {
			done(ok)
		}
	})
	return nil
}

// DispatchAccelerator runs the window action bound to accel and returns
// its name.
func (d *Dispatcher) DispatchAccelerator(accel string, done document.Completion) (string, error) {
	d.mu.RLock()
	entry, ok := d.keymap.Lookup(accel)
	d.mu.RUnlock()

	if !ok || entry.Scope != keymap.ScopeWindow {
		return "", fmt.Errorf("%w: %s", ErrUnboundAccelerator, accel)
	}
	return entry.Action, d.Dispatch(entry.Action, "", done)
}

func (d *Dispatcher) newFile(_ string, done document.Completion) {
	d.manager.NewSession()
	done(true)
}

func (d *Dispatcher) openFile(_ string, done document.Completion) {
	d.dialogs.RequestOpenPath().Then(func(r dialog.PathResult) {
		if !r.OK || r.Path == "" {
			done(false)
			return
		}
		done(d.manager.OpenSession(r.Path).HasPath())
	})
}

func (d *Dispatcher) openPath(path string, done document.Completion) {
	done(d.manager.OpenSession(path).HasPath())
}

func (d *Dispatcher) saveFile(_ string, done document.Completion) {
	s := d.manager.Active()
	if s == nil {
		done(false)
		return
	}
	s.Save(done)
}

func (d *Dispatcher) saveFileAs(_ string, done document.Completion) {
	s := d.manager.Active()
	if s == nil {
		done(false)
		return
	}
	s.SaveAs(done)
}

func (d *Dispatcher) closeFile(_ string, done document.Completion) {
	d.manager.CloseActive(done)
}
