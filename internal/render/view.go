package render

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/zennote/internal/highlight"
	"github.com/dshills/zennote/internal/theme"
)

// TabWidth is the number of cells a tab advances to.
const TabWidth = 4

// Rect is a screen area.
type Rect struct {
	X, Y          int
	Width, Height int
}

// View presents one document.
type View struct {
	spans  []highlight.TagSpan
	theme  *theme.Theme
	scroll int
}

var _ highlight.Presenter = (*View)(nil)

// NewView creates a view styled by th. A nil theme uses the default.
func NewView(th *theme.Theme) *View {
	if th == nil {
		th = theme.Default()
	}
	return &View{theme: th}
}

// ClearTags implements highlight.Presenter.
func (v *View) ClearTags() {
	v.spans = v.spans[:0]
}

// ApplyTag implements highlight.Presenter.
func (v *View) ApplyTag(span highlight.TagSpan) {
	v.spans = append(v.spans, span)
}

// Spans returns the applied spans.
func (v *View) Spans() []highlight.TagSpan {
	return append([]highlight.TagSpan(nil), v.spans...)
}

// Scroll returns the first visible line.
func (v *View) Scroll() int {
	return v.scroll
}

// ScrollBy moves the first visible line by n, not above the top.
func (v *View) ScrollBy(n int) {
	v.scroll = max(v.scroll+n, 0)
}

// StyleAt returns the style of the byte at offset.
func (v *View) StyleAt(offset int) tcell.Style {
	i := sort.Search(len(v.spans), func(i int) bool {
		return v.spans[i].End > offset
	})
	if i < len(v.spans) && v.spans[i].Contains(offset) {
		return v.theme.Style(v.spans[i].Tag)
	}
	return v.theme.Base
}

// Draw paints content into area, starting at the scrolled-to line.
func (v *View) Draw(screen tcell.Screen, area Rect, content string) {
	fill(screen, area, v.theme.Base)

	line, x := 0, 0
	offset := 0
	state := -1
	rest := content
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		start := offset
		offset += len(cluster)

		if cluster == "\n" || cluster == "\r\n" {
			line++
			x = 0
			if line-v.scroll >= area.Height {
				return
			}
			continue
		}

		row := line - v.scroll
		if row < 0 {
			continue
		}

		style := v.StyleAt(start)
		if cluster == "\t" {
			next := (x/TabWidth + 1) * TabWidth
			for ; x < next; x++ {
				if x < area.Width {
					screen.SetContent(area.X+x, area.Y+row, ' ', nil, style)
				}
			}
			continue
		}
		if x+width > area.Width {
			x += width
			continue
		}

		runes := []rune(cluster)
		screen.SetContent(area.X+x, area.Y+row, runes[0], runes[1:], style)
		x += width
	}
}

func fill(screen tcell.Screen, area Rect, style tcell.Style) {
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}
