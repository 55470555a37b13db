// Package app wires the zennote components together and runs the
// terminal front end.
package app

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/action"
	"github.com/dshills/zennote/internal/config"
	"github.com/dshills/zennote/internal/dialog"
	"github.com/dshills/zennote/internal/document"
	"github.com/dshills/zennote/internal/highlight"
	"github.com/dshills/zennote/internal/highlight/treesitter"
	"github.com/dshills/zennote/internal/keymap"
	"github.com/dshills/zennote/internal/logging"
	"github.com/dshills/zennote/internal/session"
	"github.com/dshills/zennote/internal/theme"
	"github.com/dshills/zennote/internal/vfs"
)

// DefaultKeymap is used when no keymap file is configured.
const DefaultKeymap = `{
	"win.new-file": "<Ctrl>n",
	"win.open-file": "<Ctrl>o",
	"win.save-file": "<Ctrl>s",
	"win.save-file-as": "<Ctrl><Shift>S",
	"win.close-file": "<Ctrl>w"
}`

// App owns the session manager and everything it depends on.
type App struct {
	cfg     *config.Config
	logger  *logging.Logger
	fsys    vfs.VFS
	dialogs dialog.Dialogs

	parser  *keymap.Parser
	watcher *keymap.Watcher
	theme   *theme.Theme

	tokenizer highlight.Tokenizer
	closers   []io.Closer

	manager    *session.Manager
	dispatcher *action.Dispatcher
}

// Option configures an App.
type Option func(*App)

// WithFS sets the file system. The default is the OS.
func WithFS(fsys vfs.VFS) Option {
	return func(a *App) {
		if fsys != nil {
			a.fsys = fsys
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) {
		a.logger = logging.OrNop(l)
	}
}

// WithDialogs sets the dialog collaborator. The default declines every
// request.
func WithDialogs(d dialog.Dialogs) Option {
	return func(a *App) {
		if d != nil {
			a.dialogs = d
		}
	}
}

// New builds an application from cfg. A nil cfg means the defaults.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	a := &App{
		cfg:     cfg,
		logger:  logging.Nop(),
		fsys:    vfs.NewOSFS(),
		dialogs: dialog.Decline{},
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.initTheme(); err != nil {
		return nil, err
	}
	a.initTokenizer()

	a.manager = session.NewManager(
		session.WithLogger(a.logger),
		session.WithOverlay(a.newOverlay),
		session.WithSessionOptions(
			document.WithFS(a.fsys),
			document.WithDialogs(a.dialogs),
			document.WithUntitled(cfg.Editor.UntitledTitle),
		),
	)

	a.parser = keymap.NewParser(keymap.DefaultRegistry(), a.logger)
	a.dispatcher = action.New(a.manager, a.dialogs,
		action.WithKeymap(a.loadKeymap()),
		action.WithLogger(a.logger),
	)

	if cfg.Keymap.Watch && cfg.Keymap.Path != "" {
		w, err := a.parser.Watch(a.fsys, cfg.Keymap.Path, a.dispatcher.SetKeymap)
		if err != nil {
			a.logger.Warn("keymap watch disabled", zap.String("path", cfg.Keymap.Path), zap.Error(err))
		} else {
			a.watcher = w
		}
	}

	a.logger.Info("application initialized",
		zap.String("language", cfg.Editor.Language),
		zap.String("theme", a.theme.Name),
		zap.Int("bindings", len(a.dispatcher.Keymap())),
	)
	return a, nil
}

func (a *App) initTheme() error {
	if a.cfg.Theme.Path == "" {
		a.theme = theme.Default()
		return nil
	}
	th, err := theme.Load(a.fsys, a.cfg.Theme.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	a.theme = th
	return nil
}

// initTokenizer prefers a tree-sitter grammar and falls back to the rule
// tokenizer for the configured language.
func (a *App) initTokenizer() {
	lang := a.cfg.Editor.Language
	if slices.Contains(treesitter.Languages(), lang) {
		ts, err := treesitter.New(lang)
		if err == nil {
			a.tokenizer = ts
			a.closers = append(a.closers, ts)
			return
		}
		a.logger.Warn("tree-sitter unavailable, using rules", zap.String("language", lang), zap.Error(err))
	}
	if rules := highlight.RulesFor(lang); rules != nil {
		a.tokenizer = rules
	}
}

func (a *App) newOverlay() *highlight.Overlay {
	return highlight.NewOverlay(a.tokenizer, a.theme.Names(),
		highlight.WithLogger(a.logger.WithComponent("highlight")),
	)
}

func (a *App) loadKeymap() keymap.Keymap {
	if a.cfg.Keymap.Path == "" {
		return a.parser.Parse([]byte(DefaultKeymap))
	}
	return a.parser.Load(a.fsys, a.cfg.Keymap.Path)
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() *logging.Logger { return a.logger }

// Manager returns the session manager.
func (a *App) Manager() *session.Manager { return a.manager }

// Dispatcher returns the action dispatcher.
func (a *App) Dispatcher() *action.Dispatcher { return a.dispatcher }

// Theme returns the tag styles.
func (a *App) Theme() *theme.Theme { return a.theme }

// Tokenizer returns the tokenizer shared by all sessions, or nil.
func (a *App) Tokenizer() highlight.Tokenizer { return a.tokenizer }

// OpenFiles opens each path as a session. With no paths a single empty
// session is created. It returns the number of files that loaded.
func (a *App) OpenFiles(paths ...string) int {
	if len(paths) == 0 {
		a.manager.NewSession()
		return 0
	}
	loaded := 0
	for _, p := range paths {
		if a.manager.OpenSession(p).HasPath() {
			loaded++
		} else {
			a.logger.Warn("file not opened", zap.String("path", p))
		}
	}
	return loaded
}

// Close stops the keymap watcher and releases the tokenizer.
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
		a.watcher = nil
	}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
