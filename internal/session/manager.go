// Package session keeps the ordered list of open documents and the active
// selection.
//
// Sessions are kept in creation order and are not keyed by path: opening
// the same file twice yields two independent sessions.
package session

import (
	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/document"
	"github.com/dshills/zennote/internal/highlight"
	"github.com/dshills/zennote/internal/logging"
)

// Manager owns the open sessions. It is not safe for concurrent use.
type Manager struct {
	sessions []*document.Session
	active   int
	nextSeq  int

	docOpts []document.Option
	overlay func() *highlight.Overlay
	logger  *logging.Logger

	titleObservers  []func(*document.Session)
	changeObservers []func()
}

// Option configures a Manager.
type Option func(*Manager)

// WithSessionOptions sets options applied to every new session.
func WithSessionOptions(opts ...document.Option) Option {
	return func(m *Manager) {
		m.docOpts = append(m.docOpts, opts...)
	}
}

// WithOverlay sets the factory for each session's highlight overlay.
func WithOverlay(factory func() *highlight.Overlay) Option {
	return func(m *Manager) {
		m.overlay = factory
	}
}

// WithLogger sets the logger. Sessions log through it too.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		m.logger = logging.OrNop(l)
	}
}

// NewManager creates a manager without sessions.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		active: -1,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) create() *document.Session {
	m.nextSeq++
	opts := append([]document.Option{
		document.WithLogger(m.logger),
		document.WithSeq(m.nextSeq),
	}, m.docOpts...)
	if m.overlay != nil {
		opts = append(opts, document.WithOverlay(m.overlay()))
	}

	s := document.New(opts...)
	s.OnTitleChange(m.titleChanged)
	return s
}

func (m *Manager) add(s *document.Session) {
	m.sessions = append(m.sessions, s)
	m.active = len(m.sessions) - 1
	m.changed()
}

// NewSession creates an empty clean session and makes it active.
func (m *Manager) NewSession() *document.Session {
	s := m.create()
	m.add(s)
	m.logger.Debug("session created", zap.Int("seq", s.Seq()))
	return s
}

// OpenSession creates a session, opens path in it and makes it active.
// A path that cannot be opened leaves the new session empty.
func (m *Manager) OpenSession(path string) *document.Session {
	s := m.create()
	loaded := s.Open(path)
	m.add(s)
	m.logger.Debug("session opened",
		zap.Int("seq", s.Seq()),
		zap.String("path", path),
		zap.Bool("loaded", loaded),
	)
	return s
}

// Active returns the active session, or nil.
func (m *Manager) Active() *document.Session {
	if m.active < 0 || m.active >= len(m.sessions) {
		return nil
	}
	return m.sessions[m.active]
}

// ActiveIndex returns the index of the active session, or -1.
func (m *Manager) ActiveIndex() int {
	if m.Active() == nil {
		return -1
	}
	return m.active
}

// Sessions returns the sessions in creation order.
func (m *Manager) Sessions() []*document.Session {
	return append([]*document.Session(nil), m.sessions...)
}

// Len returns the number of sessions.
func (m *Manager) Len() int {
	return len(m.sessions)
}

// Index returns the position of s, or -1.
func (m *Manager) Index(s *document.Session) int {
	for i, cur := range m.sessions {
		if cur == s {
			return i
		}
	}
	return -1
}

// Select makes the session at i active.
func (m *Manager) Select(i int) bool {
	if i < 0 || i >= len(m.sessions) {
		return false
	}
	if m.active != i {
		m.active = i
		m.changed()
	}
	return true
}

// Next activates the following session, wrapping around.
func (m *Manager) Next() *document.Session {
	if len(m.sessions) == 0 {
		return nil
	}
	m.Select((m.ActiveIndex() + 1) % len(m.sessions))
	return m.Active()
}

// Previous activates the preceding session, wrapping around.
func (m *Manager) Previous() *document.Session {
	if len(m.sessions) == 0 {
		return nil
	}
	i := m.ActiveIndex() - 1
	if i < 0 {
		i = len(m.sessions) - 1
	}
	m.Select(i)
	return m.Active()
}

// Dirty returns the sessions with unsaved changes.
func (m *Manager) Dirty() []*document.Session {
	var dirty []*document.Session
	for _, s := range m.sessions {
		if s.Dirty() {
			dirty = append(dirty, s)
		}
	}
	return dirty
}

// CloseActive runs the close protocol on the active session and removes
// it once closed. Without an active session it completes with false.
func (m *Manager) CloseActive(done document.Completion) {
	s := m.Active()
	if s == nil {
		if done != nil {
			done(false)
		}
		return
	}
	m.Close(s, done)
}

// Close runs the close protocol on s and removes it once closed. When s
// was active, the session that takes its place becomes active, or the new
// last one.
func (m *Manager) Close(s *document.Session, done document.Completion) {
	if m.Index(s) < 0 {
		if done != nil {
			done(false)
		}
		return
	}

	s.Close(func(ok bool) {
		if ok {
			m.remove(s)
		}
		if done != nil {
			done(ok)
		}
	})
}

func (m *Manager) remove(s *document.Session) {
	i := m.Index(s)
	if i < 0 {
		return
	}
	m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)

	switch {
	case len(m.sessions) == 0:
		m.active = -1
	case i < m.active:
		m.active--
	case i == m.active && m.active >= len(m.sessions):
		m.active = len(m.sessions) - 1
	}

	m.logger.Debug("session removed", zap.Int("seq", s.Seq()), zap.Int("remaining", len(m.sessions)))
	m.changed()
}

// OnTitleChange registers fn to run whenever a session's path changes.
func (m *Manager) OnTitleChange(fn func(*document.Session)) {
	m.titleObservers = append(m.titleObservers, fn)
}

// OnChange registers fn to run when sessions are added or removed or the
// selection moves.
func (m *Manager) OnChange(fn func()) {
	m.changeObservers = append(m.changeObservers, fn)
}

func (m *Manager) titleChanged(s *document.Session) {
	for _, fn := range m.titleObservers {
		fn(s)
	}
}

func (m *Manager) changed() {
	for _, fn := range m.changeObservers {
		fn()
	}
}
