package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReply_ThenBeforeResolve(t *testing.T) {
	r := NewReply[int]()
	var got []int
	r.Then(func(v int) { got = append(got, v) })
	r.Then(func(v int) { got = append(got, v*10) })

	assert.False(t, r.Done())
	assert.Empty(t, got)

	assert.True(t, r.Resolve(4))
	assert.Equal(t, []int{4, 40}, got)
	assert.True(t, r.Done())
}

func TestReply_ThenAfterResolve(t *testing.T) {
	r := Resolved("x")
	called := false
	r.Then(func(v string) {
		called = true
		assert.Equal(t, "x", v)
	})
	assert.True(t, called)
}

func TestReply_FirstResolveWins(t *testing.T) {
	r := NewReply[Choice]()
	calls := 0
	r.Then(func(Choice) { calls++ })

	assert.True(t, r.Resolve(Save))
	assert.False(t, r.Resolve(Discard))

	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, Save, v)
	assert.Equal(t, 1, calls)
}

func TestChoice(t *testing.T) {
	for _, c := range []Choice{Save, Discard, Cancel} {
		parsed, err := ParseChoice(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	c, err := ParseChoice(" SAVE ")
	require.NoError(t, err)
	assert.Equal(t, Save, c)

	_, err = ParseChoice("maybe")
	assert.Error(t, err)

	var zero Choice
	assert.Equal(t, Cancel, zero)
}

func TestDecline(t *testing.T) {
	var d Decline

	p, ok := d.RequestOpenPath().Value()
	assert.True(t, ok)
	assert.False(t, p.OK)

	p, _ = d.RequestSavePath().Value()
	assert.False(t, p.OK)

	c, _ := d.ConfirmUnsaved("a.txt").Value()
	assert.Equal(t, Cancel, c)
}

func TestCanned(t *testing.T) {
	c := NewCanned().
		QueueSavePath(Path("/a"), NoPath()).
		QueueOpenPath(Path("/b")).
		QueueChoice(Discard)

	p, _ := c.RequestSavePath().Value()
	assert.Equal(t, Path("/a"), p)
	p, _ = c.RequestSavePath().Value()
	assert.False(t, p.OK)
	p, _ = c.RequestSavePath().Value()
	assert.False(t, p.OK)
	assert.Equal(t, 3, c.SaveRequests)

	p, _ = c.RequestOpenPath().Value()
	assert.Equal(t, "/b", p.Path)
	assert.Equal(t, 1, c.OpenRequests)

	ch, _ := c.ConfirmUnsaved("one").Value()
	assert.Equal(t, Discard, ch)
	ch, _ = c.ConfirmUnsaved("two").Value()
	assert.Equal(t, Cancel, ch)
	assert.Equal(t, []string{"one", "two"}, c.Confirmed)
}

func TestManual(t *testing.T) {
	m := &Manual{}

	r := m.ConfirmUnsaved("notes.txt")
	assert.False(t, r.Done())
	require.Len(t, m.Confirms, 1)
	assert.Equal(t, []string{"notes.txt"}, m.Names)

	m.Confirms[0].Resolve(Save)
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, Save, v)

	s := m.RequestSavePath()
	m.Saves[0].Resolve(Path("/x"))
	p, _ := s.Value()
	assert.Equal(t, "/x", p.Path)

	o := m.RequestOpenPath()
	assert.False(t, o.Done())
	assert.Len(t, m.Opens, 1)
}
