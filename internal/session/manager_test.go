package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/zennote/internal/dialog"
	"github.com/dshills/zennote/internal/document"
	"github.com/dshills/zennote/internal/highlight"
	"github.com/dshills/zennote/internal/vfs"
)

func newManager(t *testing.T, fsys vfs.VFS, d dialog.Dialogs) *Manager {
	t.Helper()
	return NewManager(
		WithSessionOptions(document.WithFS(fsys), document.WithDialogs(d)),
		WithOverlay(func() *highlight.Overlay {
			return highlight.NewOverlay(highlight.PythonRules(), highlight.HighlightNames)
		}),
	)
}

func TestNewSession(t *testing.T) {
	m := newManager(t, vfs.NewMemFS(), nil)
	assert.Nil(t, m.Active())
	assert.Equal(t, -1, m.ActiveIndex())

	a := m.NewSession()
	assert.Same(t, a, m.Active())
	assert.False(t, a.Dirty())
	assert.Equal(t, document.StateNew, a.State())

	b := m.NewSession()
	assert.Same(t, b, m.Active())
	assert.Equal(t, []*document.Session{a, b}, m.Sessions())
	assert.Equal(t, 1, a.Seq())
	assert.Equal(t, 2, b.Seq())
}

func TestOpenSession(t *testing.T) {
	fsys := vfs.NewMemFS()
	require.NoError(t, fsys.AddFile("/a.py", "pass"))
	m := newManager(t, fsys, nil)

	s := m.OpenSession("/a.py")
	assert.Same(t, s, m.Active())
	assert.Equal(t, "pass", s.Content())
	assert.Equal(t, "/a.py", s.Path())
	assert.NotEmpty(t, s.Spans())

	missing := m.OpenSession("/missing.py")
	assert.Same(t, missing, m.Active())
	assert.False(t, missing.HasPath())
	assert.Equal(t, 2, m.Len())
}

// Opening a path that is already open creates a second independent
// session rather than reusing the first.
func TestOpenSession_NoDedup(t *testing.T) {
	fsys := vfs.NewMemFS()
	require.NoError(t, fsys.AddFile("/same.txt", "shared"))
	m := newManager(t, fsys, nil)

	first := m.OpenSession("/same.txt")
	second := m.OpenSession("/same.txt")

	require.Equal(t, 2, m.Len())
	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Same(t, second, m.Active())

	require.NoError(t, second.Edit("diverged"))
	assert.Equal(t, "shared", first.Content())
	assert.False(t, first.Dirty())
	assert.True(t, second.Dirty())
}

func TestCloseActive_NoSession(t *testing.T) {
	m := newManager(t, vfs.NewMemFS(), nil)

	called, ok := false, true
	m.CloseActive(func(r bool) { called, ok = true, r })
	assert.True(t, called)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())

	m.CloseActive(nil)
}

func TestCloseActive_SelectsAdjacent(t *testing.T) {
	m := newManager(t, vfs.NewMemFS(), nil)
	a, b, c := m.NewSession(), m.NewSession(), m.NewSession()

	// close the middle one: the session that slides into its place wins
	require.True(t, m.Select(1))
	m.CloseActive(nil)
	assert.Equal(t, []*document.Session{a, c}, m.Sessions())
	assert.Same(t, c, m.Active())
	assert.True(t, b.Closed())

	// close the last one: the new last is selected
	m.CloseActive(nil)
	assert.Equal(t, []*document.Session{a}, m.Sessions())
	assert.Same(t, a, m.Active())

	m.CloseActive(nil)
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Active())
}

func TestCloseActive_Cancelled(t *testing.T) {
	canned := dialog.NewCanned().QueueChoice(dialog.Cancel)
	m := newManager(t, vfs.NewMemFS(), canned)
	s := m.NewSession()
	require.NoError(t, s.Edit("unsaved"))

	var ok bool
	m.CloseActive(func(r bool) { ok = r })

	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
	assert.Same(t, s, m.Active())
	assert.True(t, s.Dirty())
}

func TestCloseActive_SaveFails(t *testing.T) {
	fsys := vfs.NewMemFS()
	require.NoError(t, fsys.AddFile("/a.txt", ""))
	fsys.FailWrites("/a.txt", errors.New("denied"))
	m := newManager(t, fsys, dialog.NewCanned().QueueChoice(dialog.Save))
	s := m.OpenSession("/a.txt")
	require.NoError(t, s.Edit("x"))

	var ok = true
	m.CloseActive(func(r bool) { ok = r })

	assert.False(t, ok)
	assert.Same(t, s, m.Active())
	assert.False(t, s.Closed())
}

func TestClose_PendingThenResolved(t *testing.T) {
	manual := &dialog.Manual{}
	m := newManager(t, vfs.NewMemFS(), manual)
	a := m.NewSession()
	require.NoError(t, a.Edit("x"))
	b := m.NewSession()

	m.Close(a, nil)
	require.Len(t, manual.Confirms, 1)
	assert.Equal(t, 2, m.Len())

	// another session is added while the dialog is open
	c := m.NewSession()
	manual.Confirms[0].Resolve(dialog.Discard)

	assert.Equal(t, []*document.Session{b, c}, m.Sessions())
	assert.Same(t, c, m.Active())
}

func TestClose_NonActive(t *testing.T) {
	m := newManager(t, vfs.NewMemFS(), nil)
	a, b, c := m.NewSession(), m.NewSession(), m.NewSession()
	_ = b

	var ok bool
	m.Close(a, func(r bool) { ok = r })
	assert.True(t, ok)
	assert.Same(t, c, m.Active())
	assert.Equal(t, 1, m.ActiveIndex())

	// unknown session
	m.Close(a, func(r bool) { ok = r })
	assert.False(t, ok)
}

func TestNextPrevious(t *testing.T) {
	m := newManager(t, vfs.NewMemFS(), nil)
	assert.Nil(t, m.Next())
	assert.Nil(t, m.Previous())

	a, b, c := m.NewSession(), m.NewSession(), m.NewSession()
	assert.Same(t, a, m.Next())
	assert.Same(t, b, m.Next())
	assert.Same(t, a, m.Previous())
	assert.Same(t, c, m.Previous())

	assert.False(t, m.Select(3))
	assert.False(t, m.Select(-1))
	assert.Same(t, c, m.Active())
}

func TestDirty(t *testing.T) {
	m := newManager(t, vfs.NewMemFS(), nil)
	a, _ := m.NewSession(), m.NewSession()
	assert.Empty(t, m.Dirty())

	require.NoError(t, a.Edit("x"))
	assert.Equal(t, []*document.Session{a}, m.Dirty())
}

func TestObservers(t *testing.T) {
	fsys := vfs.NewMemFS()
	require.NoError(t, fsys.AddFile("/x/notes.md", "# hi"))
	m := newManager(t, fsys, dialog.NewCanned().QueueSavePath(dialog.Path("/x/renamed.md")))

	var titles []string
	changes := 0
	m.OnTitleChange(func(s *document.Session) { titles = append(titles, s.Title()) })
	m.OnChange(func() { changes++ })

	s := m.OpenSession("/x/notes.md")
	s.SaveAs(nil)
	m.NewSession()
	m.Select(0)

	assert.Equal(t, []string{"notes.md", "renamed.md"}, titles)
	assert.Equal(t, 3, changes)
}
