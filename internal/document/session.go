// Package document holds one open document and its save and close
// protocol.
//
// A Session moves New → Dirty → Saved and ends in Closed. Edits mark it
// dirty and recompute its highlight spans before returning. Saving a
// session without a path, saving under a new path and closing a dirty
// session all suspend on a dialog; while one is pending the session
// refuses other operations and its state does not change. Outcomes are
// reported through completion callbacks, never as errors.
//
// A Session is not safe for concurrent use. The completion of an
// operation runs on the goroutine that resolves the dialog reply.
package document

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/dialog"
	"github.com/dshills/zennote/internal/highlight"
	"github.com/dshills/zennote/internal/logging"
	"github.com/dshills/zennote/internal/vfs"
)

// DefaultUntitled is the title of a session without a path.
const DefaultUntitled = "Untitled"

// State is the lifecycle state of a session.
type State int

const (
	StateNew State = iota
	StateDirty
	StateSaved
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateDirty:
		return "dirty"
	case StateSaved:
		return "saved"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Completion receives the outcome of an asynchronous operation.
type Completion func(ok bool)

func (c Completion) call(ok bool) {
	if c != nil {
		c(ok)
	}
}

// Session is one open document.
type Session struct {
	id       uuid.UUID
	seq      int
	fsys     vfs.VFS
	dialogs  dialog.Dialogs
	overlay  *highlight.Overlay
	logger   *logging.Logger
	untitled string

	path    string
	content string
	dirty   bool
	closed  bool
	pending bool
	spans   []highlight.TagSpan

	titleObservers []func(*Session)
}

// Option configures a Session.
type Option func(*Session)

// WithFS sets the file system. The default is the OS file system.
func WithFS(fsys vfs.VFS) Option {
	return func(s *Session) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}

// WithDialogs sets the dialogs. The default declines every request.
func WithDialogs(d dialog.Dialogs) Option {
	return func(s *Session) {
		if d != nil {
			s.dialogs = d
		}
	}
}

// WithOverlay sets the highlight overlay. Without one the session has no
// spans.
func WithOverlay(o *highlight.Overlay) Option {
	return func(s *Session) {
		s.overlay = o
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		s.logger = logging.OrNop(l)
	}
}

// WithSeq sets the creation sequence number.
func WithSeq(seq int) Option {
	return func(s *Session) {
		s.seq = seq
	}
}

// WithUntitled sets the title shown while the session has no path.
func WithUntitled(title string) Option {
	return func(s *Session) {
		if title != "" {
			s.untitled = title
		}
	}
}

// New creates an empty, clean session.
func New(opts ...Option) *Session {
	s := &Session{
		id:       uuid.New(),
		fsys:     vfs.NewOSFS(),
		dialogs:  dialog.Decline{},
		logger:   logging.Nop(),
		untitled: DefaultUntitled,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("document").With(
		zap.String("session", s.id.String()),
		zap.Int("seq", s.seq),
	)
	s.rehighlight()
	return s
}

// ID returns the unique session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Seq returns the creation sequence number.
func (s *Session) Seq() int { return s.seq }

// Path returns the absolute file path, or "" when unset.
func (s *Session) Path() string { return s.path }

// HasPath reports whether the session is bound to a file.
func (s *Session) HasPath() bool { return s.path != "" }

// Content returns the document text.
func (s *Session) Content() string { return s.content }

// Dirty reports whether the content changed since it was last saved or
// opened.
func (s *Session) Dirty() bool { return s.dirty }

// Closed reports whether the session completed the close protocol.
func (s *Session) Closed() bool { return s.closed }

// Pending reports whether the session waits on a dialog.
func (s *Session) Pending() bool { return s.pending }

// State returns the lifecycle state.
func (s *Session) State() State {
	switch {
	case s.closed:
		return StateClosed
	case s.dirty:
		return StateDirty
	case s.path == "":
		return StateNew
	default:
		return StateSaved
	}
}

// Title returns the file name, or the untitled placeholder.
func (s *Session) Title() string {
	if s.path == "" {
		return s.untitled
	}
	return filepath.Base(s.path)
}

// Spans returns a copy of the current highlight spans.
func (s *Session) Spans() []highlight.TagSpan {
	return append([]highlight.TagSpan(nil), s.spans...)
}

// OnTitleChange registers fn to run whenever the path changes.
func (s *Session) OnTitleChange(fn func(*Session)) {
	s.titleObservers = append(s.titleObservers, fn)
}

// Attach sends the spans to p from now on, starting with the current ones.
func (s *Session) Attach(p highlight.Presenter) {
	if s.overlay == nil {
		return
	}
	s.overlay.SetPresenter(p)
	s.rehighlight()
}

func (s *Session) setPath(p string) {
	if p == s.path {
		return
	}
	s.path = p
	s.logger.Debug("path changed", zap.String("path", p))
	for _, fn := range s.titleObservers {
		fn(s)
	}
}

func (s *Session) rehighlight() {
	if s.overlay == nil {
		s.spans = nil
		return
	}
	s.spans = s.overlay.Highlight([]byte(s.content))
}

func (s *Session) guard(op string) error {
	switch {
	case s.closed:
		s.logger.Debug("operation on closed session", zap.String("op", op))
		return ErrClosed
	case s.pending:
		s.logger.Debug("operation while dialog pending", zap.String("op", op))
		return ErrPending
	}
	return nil
}

// Open loads the file at p into the session. A path that is missing, not
// a regular file or unreadable leaves the session unchanged. Open reports
// whether the file was loaded.
func (s *Session) Open(p string) bool {
	if s.guard("open") != nil {
		return false
	}

	abs, err := s.fsys.Abs(p)
	if err != nil {
		s.logger.Debug("open skipped", zap.Error(&OperationError{Op: "open", Path: p, Err: err}))
		return false
	}
	if !s.fsys.IsRegular(abs) {
		s.logger.Debug("open skipped: not a regular file", zap.String("path", abs))
		return false
	}
	data, err := s.fsys.ReadFile(abs)
	if err != nil {
		s.logger.Warn("open skipped", zap.Error(&OperationError{Op: "open", Path: abs, Err: err}))
		return false
	}

	s.content = string(data)
	s.dirty = false
	s.setPath(abs)
	s.rehighlight()
	s.logger.Debug("opened", zap.String("path", abs), zap.Int("bytes", len(data)))
	return true
}

// Edit replaces the content, marks the session dirty and recomputes the
// highlight spans.
func (s *Session) Edit(content string) error {
	if err := s.guard("edit"); err != nil {
		return err
	}
	s.content = content
	s.dirty = true
	s.rehighlight()
	return nil
}

// Save writes the content to the session's path, asking for one first
// when the session has none. A dismissed request or a failed write
// completes with false and leaves the session dirty.
func (s *Session) Save(done Completion) {
	if s.guard("save") != nil {
		done.call(false)
		return
	}
	s.save(s.path == "", done)
}

// SaveAs asks for a new path and writes the content there.
func (s *Session) SaveAs(done Completion) {
	if s.guard("save-as") != nil {
		done.call(false)
		return
	}
	s.save(true, done)
}

func (s *Session) save(askPath bool, done Completion) {
	if !askPath {
		done.call(s.write())
		return
	}

	s.pending = true
	s.dialogs.RequestSavePath().Then(func(r dialog.PathResult) {
		s.pending = false
		if !r.OK || r.Path == "" {
			s.logger.Debug("save path request dismissed")
			done.call(false)
			return
		}
		abs, err := s.fsys.Abs(r.Path)
		if err != nil {
			s.logger.Warn("save failed", zap.Error(&OperationError{Op: "save", Path: r.Path, Err: err}))
			done.call(false)
			return
		}
		s.setPath(abs)
		done.call(s.write())
	})
}

// write makes sure the parent directory exists and writes the content.
func (s *Session) write() bool {
	if err := s.fsys.MkdirAll(filepath.Dir(s.path), vfs.DirPerm); err != nil {
		s.logger.Warn("save failed", zap.Error(&OperationError{Op: "mkdir", Path: s.path, Err: err}))
		return false
	}
	if err := s.fsys.WriteFile(s.path, []byte(s.content), vfs.FilePerm); err != nil {
		s.logger.Warn("save failed", zap.Error(&OperationError{Op: "save", Path: s.path, Err: err}))
		return false
	}
	s.dirty = false
	s.logger.Debug("saved", zap.String("path", s.path), zap.Int("bytes", len(s.content)))
	return true
}

// Close runs the close protocol. A clean session closes at once. A dirty
// one asks the user: Save closes only if the write succeeds, Discard
// closes without writing and Cancel keeps the session open.
func (s *Session) Close(done Completion) {
	if s.closed {
		done.call(true)
		return
	}
	if s.guard("close") != nil {
		done.call(false)
		return
	}
	if !s.dirty {
		s.markClosed()
		done.call(true)
		return
	}

	s.pending = true
	s.dialogs.ConfirmUnsaved(s.Title()).Then(func(c dialog.Choice) {
		s.pending = false
		s.logger.Debug("unsaved changes answered", zap.Stringer("choice", c))
		switch c {
		case dialog.Discard:
			s.markClosed()
			done.call(true)
		case dialog.Save:
			s.save(s.path == "", func(ok bool) {
				if ok {
					s.markClosed()
				}
				done.call(ok)
			})
		default:
			done.call(false)
		}
	})
}

func (s *Session) markClosed() {
	s.closed = true
	s.logger.Debug("closed")
}
