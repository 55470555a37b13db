package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/zennote/internal/config"
	"github.com/dshills/zennote/internal/dialog"
	"github.com/dshills/zennote/internal/highlight"
	"github.com/dshills/zennote/internal/highlight/treesitter"
	"github.com/dshills/zennote/internal/keymap"
	"github.com/dshills/zennote/internal/logging"
	"github.com/dshills/zennote/internal/vfs"
)

func newTestApp(t *testing.T, cfg *config.Config, opts ...Option) (*App, *vfs.MemFS) {
	t.Helper()
	fs := vfs.NewMemFS()
	a, err := New(cfg, append([]Option{WithFS(fs)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, fs
}

func TestNewDefaults(t *testing.T) {
	a, _ := newTestApp(t, nil)

	assert.Equal(t, "default", a.Theme().Name)
	assert.Equal(t, "python", a.Config().Editor.Language)
	assert.IsType(t, &treesitter.Tokenizer{}, a.Tokenizer())
	assert.Equal(t, 0, a.Manager().Len())

	km := a.Dispatcher().Keymap()
	assert.Len(t, km, 5)
	entry, ok := km.Lookup("<Ctrl>s")
	require.True(t, ok)
	assert.Equal(t, keymap.ActionSaveFile, entry.Action)
	entry, ok = km.Lookup("<Ctrl><Shift>S")
	require.True(t, ok)
	assert.Equal(t, keymap.ActionSaveFileAs, entry.Action)
}

func TestNewRulesLanguage(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.Language = "go"
	a, _ := newTestApp(t, cfg)

	rules, ok := a.Tokenizer().(*highlight.RuleTokenizer)
	require.True(t, ok)
	assert.Equal(t, "go", rules.Language())
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.Language = "cobol"

	_, err := New(cfg, WithFS(vfs.NewMemFS()))
	assert.ErrorIs(t, err, ErrInitialization)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestThemeFile(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/conf/tags.json", `{"keyword": {"color": "#ff0000", "font_weight": 700}}`))

	cfg := config.Default()
	cfg.Theme.Path = "/conf/tags.json"
	a, err := New(cfg, WithFS(fs))
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "tags", a.Theme().Name)
	assert.Equal(t, []string{"keyword"}, a.Theme().Names())
}

func TestThemeFileMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Path = "/conf/missing.json"

	_, err := New(cfg, WithFS(vfs.NewMemFS()))
	assert.ErrorIs(t, err, ErrInitialization)
}

func TestKeymapFile(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/conf/keymap.json", `{"win.close-file": "<Alt>x", "app.quit": "<Ctrl>q"}`))

	cfg := config.Default()
	cfg.Keymap.Path = "/conf/keymap.json"
	a, err := New(cfg, WithFS(fs))
	require.NoError(t, err)
	defer a.Close()

	km := a.Dispatcher().Keymap()
	assert.Len(t, km, 1)
	entry, ok := km.Lookup("<Alt>x")
	require.True(t, ok)
	assert.Equal(t, keymap.ActionCloseFile, entry.Action)
}

func TestKeymapFileMissing(t *testing.T) {
	log := logging.NewTestLogger()
	cfg := config.Default()
	cfg.Keymap.Path = "/conf/keymap.json"
	cfg.Keymap.Watch = true

	a, _ := newTestApp(t, cfg, WithLogger(log.Logger))

	assert.Empty(t, a.Dispatcher().Keymap())
	log.AssertLogged(t, zapcore.WarnLevel, "keymap file not found")
	log.AssertLogged(t, zapcore.WarnLevel, "keymap watch disabled")
}

func TestOpenFiles(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		a, _ := newTestApp(t, nil)
		assert.Equal(t, 0, a.OpenFiles())
		require.Equal(t, 1, a.Manager().Len())
		assert.Equal(t, "Untitled", a.Manager().Active().Title())
	})

	t.Run("some", func(t *testing.T) {
		log := logging.NewTestLogger()
		a, fs := newTestApp(t, nil, WithLogger(log.Logger))
		require.NoError(t, fs.AddFile("/src/a.py", "def f():\n    pass\n"))
		require.NoError(t, fs.AddFile("/src/b.py", "x = None\n"))

		assert.Equal(t, 2, a.OpenFiles("/src/a.py", "/src/missing.py", "/src/b.py"))
		assert.Equal(t, 3, a.Manager().Len())
		assert.Equal(t, 2, a.Manager().ActiveIndex())
		log.AssertLogged(t, zapcore.WarnLevel, "file not opened")

		first := a.Manager().Sessions()[0]
		assert.Equal(t, "a.py", first.Title())
		spans := first.Spans()
		require.NotEmpty(t, spans)
		assert.Equal(t, highlight.TagSpan{Tag: "keyword", Start: 0, End: 3}, spans[0])
	})
}

func TestCustomUntitled(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.UntitledTitle = "Scratch"
	a, _ := newTestApp(t, cfg)

	a.OpenFiles()
	assert.Equal(t, "Scratch", a.Manager().Active().Title())
}

func TestDialogsReachSessions(t *testing.T) {
	canned := dialog.NewCanned().QueueSavePath(dialog.Path("/out/note.py"))
	a, fs := newTestApp(t, nil, WithDialogs(canned))
	a.OpenFiles()
	require.NoError(t, a.Manager().Active().Edit("print(1)\n"))

	var result *bool
	require.NoError(t, a.Dispatcher().Dispatch(keymap.ActionSaveFile, "", func(ok bool) { result = &ok }))
	require.NotNil(t, result)
	assert.True(t, *result)

	data, err := fs.ReadFile("/out/note.py")
	require.NoError(t, err)
	assert.Equal(t, "print(1)\n", string(data))
}

func TestClose(t *testing.T) {
	a, err := New(nil, WithFS(vfs.NewMemFS()))
	require.NoError(t, err)
	assert.NoError(t, a.Close())
	assert.NoError(t, a.Close())
}

func TestNewScripted(t *testing.T) {
	fs := vfs.NewMemFS()
	out := &bytes.Buffer{}
	require.NoError(t, fs.AddFile("/scripts/demo.lua", `
		dialogs = {}
		function dialogs.save_path() return "/notes/demo.py" end

		editor.new()
		editor.edit("pass\n")
		assert(editor.save() == true)
		print(editor.title())
	`))

	a, rt, err := NewScripted(nil, nil, out, WithFS(fs))
	require.NoError(t, err)
	defer rt.Close()
	defer a.Close()

	require.NoError(t, a.RunScript(rt, "/scripts/demo.lua"))
	assert.Equal(t, "demo.py\n", out.String())

	data, err := fs.ReadFile("/notes/demo.py")
	require.NoError(t, err)
	assert.Equal(t, "pass\n", string(data))
}
