package theme

import (
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/zennote/internal/highlight"
	"github.com/dshills/zennote/internal/vfs"
)

func TestParse(t *testing.T) {
	raw := `{
		"keyword": {"color": "#ff0000", "font_weight": 700},
		"comment": {"color": "#0f0", "font_style": "italic"},
		"string": {"font_style": "oblique"},
		"broken": "not a rule",
		"number": {"color": 12, "font_weight": "bold"}
	}`

	th, err := Parse("test", []byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "test", th.Name)
	assert.Equal(t, []string{"comment", "keyword", "number", "string"}, th.Names())

	kw, ok := th.Rule("keyword")
	require.True(t, ok)
	assert.True(t, kw.HasColor)
	assert.Equal(t, 700, kw.FontWeight)
	r, g, b := kw.Color.RGB255()
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{r, g, b})

	cm, _ := th.Rule("comment")
	assert.Equal(t, StyleItalic, cm.FontStyle)
	r, g, b = cm.Color.RGB255()
	assert.Equal(t, []uint8{0, 255, 0}, []uint8{r, g, b})

	str, _ := th.Rule("string")
	assert.False(t, str.HasColor)
	assert.Equal(t, StyleOblique, str.FontStyle)

	num, _ := th.Rule("number")
	assert.False(t, num.HasColor)
	assert.Zero(t, num.FontWeight)
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{"", "{", "[1, 2]", `"x"`} {
		_, err := Parse("x", []byte(raw))
		assert.ErrorIs(t, err, ErrInvalidTheme, raw)
	}
}

func TestParse_NamedColor(t *testing.T) {
	th, err := Parse("x", []byte(`{"a": {"color": "red"}, "b": {"color": "nosuchcolor"}}`))
	require.NoError(t, err)

	a, _ := th.Rule("a")
	assert.True(t, a.HasColor)
	r, _, _ := a.Color.RGB255()
	assert.Equal(t, uint8(255), r)

	b, _ := th.Rule("b")
	assert.False(t, b.HasColor)
}

func TestStyle(t *testing.T) {
	th := New("x")
	th.Set(Rule{Tag: "function", Color: hex("#102030"), HasColor: true, FontWeight: 600})
	th.Set(Rule{Tag: "comment", FontStyle: StyleItalic})

	fg, _, attrs := th.Style("function").Decompose()
	assert.Equal(t, tcell.NewRGBColor(0x10, 0x20, 0x30), fg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	// parent fallback
	assert.Equal(t, th.Style("function"), th.Style("function.builtin"))

	_, _, attrs = th.Style("comment").Decompose()
	assert.NotZero(t, attrs&tcell.AttrItalic)
	assert.Zero(t, attrs&tcell.AttrBold)

	assert.Equal(t, th.Base, th.Style("unknown"))
	assert.Equal(t, th.Base, th.Style(""))
}

func TestDefault_CoversHighlightNames(t *testing.T) {
	th := Default()
	for _, name := range highlight.HighlightNames {
		_, ok := th.Rule(name)
		assert.True(t, ok, name)
	}
	assert.Equal(t, len(highlight.HighlightNames), th.Len())
}

func TestLoad(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/themes/dark.json", `{"keyword": {"color": "#000000"}}`))

	th, err := Load(fs, "/themes/dark.json")
	require.NoError(t, err)
	assert.Equal(t, "dark", th.Name)
	assert.Equal(t, []string{"keyword"}, th.Names())

	_, err = Load(fs, "/themes/missing.json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
