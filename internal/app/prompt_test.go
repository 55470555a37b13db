package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/zennote/internal/dialog"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(p interface{ HandleKey(*tcell.EventKey) bool }, s string) {
	for _, r := range s {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestPromptIdle(t *testing.T) {
	p := NewPrompt()
	assert.False(t, p.Active())
	assert.False(t, p.HandleKey(key(tcell.KeyEnter)))
	assert.Empty(t, p.Text())
}

func TestPromptPath(t *testing.T) {
	p := NewPrompt()
	reply := p.RequestSavePath()
	require.True(t, p.Active())
	assert.Equal(t, "Save as: ", p.Text())

	typeText(p, "/tmp/ab")
	p.HandleKey(key(tcell.KeyBackspace))
	typeText(p, "c.py")
	assert.Equal(t, "Save as: /tmp/ac.py", p.Text())
	assert.False(t, reply.Done())

	p.HandleKey(key(tcell.KeyEnter))
	assert.False(t, p.Active())
	res, ok := reply.Value()
	require.True(t, ok)
	assert.Equal(t, dialog.Path("/tmp/ac.py"), res)
}

func TestPromptPathDismissed(t *testing.T) {
	tests := []struct {
		name string
		keys func(p *Prompt)
	}{
		{"escape", func(p *Prompt) {
			typeText(p, "abc")
			p.HandleKey(key(tcell.KeyEscape))
		}},
		{"empty enter", func(p *Prompt) {
			p.HandleKey(key(tcell.KeyEnter))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompt()
			reply := p.RequestOpenPath()
			tt.keys(p)

			res, ok := reply.Value()
			require.True(t, ok)
			assert.False(t, res.OK)
			assert.False(t, p.Active())
		})
	}
}

func TestPromptChoice(t *testing.T) {
	tests := []struct {
		key  *tcell.EventKey
		want dialog.Choice
	}{
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), dialog.Save},
		{tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone), dialog.Discard},
		{tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), dialog.Cancel},
		{key(tcell.KeyEscape), dialog.Cancel},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			p := NewPrompt()
			reply := p.ConfirmUnsaved("a.py")
			assert.Contains(t, p.Text(), "a.py")

			p.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
			assert.False(t, reply.Done(), "other keys are ignored")

			p.HandleKey(tt.key)
			got, ok := reply.Value()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.False(t, p.Active())
		})
	}
}

func TestPromptBusy(t *testing.T) {
	p := NewPrompt()
	first := p.RequestOpenPath()

	second := p.RequestSavePath()
	res, ok := second.Value()
	require.True(t, ok)
	assert.False(t, res.OK)

	choice, ok := p.ConfirmUnsaved("x").Value()
	require.True(t, ok)
	assert.Equal(t, dialog.Cancel, choice)

	assert.False(t, first.Done())
	assert.Equal(t, "Open: ", p.Text())
}

func TestPromptChained(t *testing.T) {
	p := NewPrompt()
	var saved dialog.PathResult

	p.ConfirmUnsaved("a.py").Then(func(c dialog.Choice) {
		require.Equal(t, dialog.Save, c)
		p.RequestSavePath().Then(func(r dialog.PathResult) { saved = r })
	})

	typeText(p, "s")
	require.True(t, p.Active(), "continuation opened the next request")
	assert.Equal(t, "Save as: ", p.Text())

	typeText(p, "/a.py")
	p.HandleKey(key(tcell.KeyEnter))
	assert.Equal(t, dialog.Path("/a.py"), saved)
}
