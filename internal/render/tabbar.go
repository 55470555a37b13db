package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Tab is one entry of the tab bar.
type Tab struct {
	Title string
	Dirty bool
}

// DirtyMarker is appended to the title of a tab with unsaved changes.
const DirtyMarker = "●"

// Label returns the text shown for t.
func (t Tab) Label() string {
	if t.Dirty {
		return " " + t.Title + " " + DirtyMarker + " "
	}
	return " " + t.Title + " "
}

// TabBar draws a one-line list of tabs.
type TabBar struct {
	Style       tcell.Style
	ActiveStyle tcell.Style
}

// NewTabBar creates a tab bar with reverse video for the active tab.
func NewTabBar() *TabBar {
	return &TabBar{
		Style:       tcell.StyleDefault,
		ActiveStyle: tcell.StyleDefault.Reverse(true),
	}
}

// Draw paints tabs on row y within width cells and returns the cell
// columns where each drawn tab starts.
func (b *TabBar) Draw(screen tcell.Screen, y, width int, tabs []Tab, active int) []int {
	fill(screen, Rect{X: 0, Y: y, Width: width, Height: 1}, b.Style)

	var starts []int
	x := 0
	for i, t := range tabs {
		label := t.Label()
		if x+uniseg.StringWidth(label) > width {
			break
		}
		style := b.Style
		if i == active {
			style = b.ActiveStyle
		}
		starts = append(starts, x)
		x = drawString(screen, x, y, label, style)
	}
	return starts
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
	return x
}

// DrawStatus paints msg on row y.
func DrawStatus(screen tcell.Screen, y, width int, msg string, style tcell.Style) {
	fill(screen, Rect{X: 0, Y: y, Width: width, Height: 1}, style)
	drawString(screen, 0, y, msg, style)
}
