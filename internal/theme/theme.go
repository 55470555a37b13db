// Package theme loads the style rules that give highlight tags their look.
//
// A theme file is a JSON object mapping a tag name to a rule:
//
//	{
//	  "keyword":  {"color": "#569cd6", "font_weight": 700},
//	  "comment":  {"color": "#6a9955", "font_style": "italic"}
//	}
//
// Entries that are not objects are skipped. The tag names of a theme are the
// names handed to the tokenizer.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"

	"github.com/dshills/zennote/internal/vfs"
)

// ErrInvalidTheme is returned for theme data that is not a JSON object.
var ErrInvalidTheme = errors.New("invalid theme")

// FontStyle is the slant of a rule.
type FontStyle string

const (
	StyleNormal  FontStyle = ""
	StyleItalic  FontStyle = "italic"
	StyleOblique FontStyle = "oblique"
)

// BoldWeight is the lowest font weight drawn bold.
const BoldWeight = 600

// Rule is the styling of one tag.
type Rule struct {
	Tag        string
	Color      colorful.Color
	HasColor   bool
	FontStyle  FontStyle
	FontWeight int
}

// Style converts the rule onto base.
func (r Rule) Style(base tcell.Style) tcell.Style {
	s := base
	if r.HasColor {
		red, green, blue := r.Color.RGB255()
		s = s.Foreground(tcell.NewRGBColor(int32(red), int32(green), int32(blue)))
	}
	if r.FontWeight >= BoldWeight {
		s = s.Bold(true)
	}
	if r.FontStyle == StyleItalic || r.FontStyle == StyleOblique {
		s = s.Italic(true)
	}
	return s
}

// Theme is a named set of rules.
type Theme struct {
	Name  string
	Base  tcell.Style
	rules map[string]Rule
}

// New creates an empty theme.
func New(name string) *Theme {
	return &Theme{
		Name:  name,
		Base:  tcell.StyleDefault,
		rules: make(map[string]Rule),
	}
}

// Set adds or replaces a rule.
func (t *Theme) Set(r Rule) *Theme {
	t.rules[r.Tag] = r
	return t
}

// Rule returns the rule for tag.
func (t *Theme) Rule(tag string) (Rule, bool) {
	r, ok := t.rules[tag]
	return r, ok
}

// Len returns the number of rules.
func (t *Theme) Len() int {
	return len(t.rules)
}

// Names returns the tag names, sorted.
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.rules))
	for n := range t.rules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Style returns the style for tag. A dotted tag without its own rule falls
// back to its parents ("function.builtin" → "function").
func (t *Theme) Style(tag string) tcell.Style {
	for scope := tag; scope != ""; {
		if r, ok := t.rules[scope]; ok {
			return r.Style(t.Base)
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return t.Base
}

// Parse reads a theme from JSON.
func Parse(name string, raw []byte) (*Theme, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidTheme)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidTheme)
	}

	t := New(name)
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() || key.String() == "" {
			return true
		}
		t.Set(parseRule(key.String(), value))
		return true
	})
	return t, nil
}

func parseRule(tag string, v gjson.Result) Rule {
	r := Rule{Tag: tag}

	if c := v.Get("color"); c.Type == gjson.String {
		if col, ok := parseColor(c.String()); ok {
			r.Color = col
			r.HasColor = true
		}
	}
	if w := v.Get("font_weight"); w.Type == gjson.Number {
		r.FontWeight = int(w.Int())
	}
	if s := v.Get("font_style"); s.Type == gjson.String {
		switch FontStyle(s.String()) {
		case StyleItalic:
			r.FontStyle = StyleItalic
		case StyleOblique:
			r.FontStyle = StyleOblique
		}
	}
	return r
}

// parseColor accepts hex colors and the color names tcell knows.
func parseColor(s string) (colorful.Color, bool) {
	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		return c, err == nil
	}

	tc := tcell.GetColor(s)
	if tc == tcell.ColorDefault {
		return colorful.Color{}, false
	}
	r, g, b := tc.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

// Load reads a theme file. The theme is named after the file.
func Load(fsys vfs.VFS, path string) (*Theme, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return Parse(strings.TrimSuffix(name, ".json"), data)
}
