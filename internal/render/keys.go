package render

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Accelerator renders a key event in keymap syntax, such as "<Ctrl>s" or
// "<Alt><Shift>Q". Events that cannot be bound return "".
func Accelerator(ev *tcell.EventKey) string {
	mods := ev.Modifiers()

	var key rune
	switch k := ev.Key(); {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ && mods&tcell.ModCtrl != 0:
		key = 'a' + rune(k-tcell.KeyCtrlA)
	case k == tcell.KeyRune:
		key = ev.Rune()
	default:
		return ""
	}
	if key > unicode.MaxASCII || !(unicode.IsLetter(key) || unicode.IsDigit(key)) {
		return ""
	}
	if unicode.IsUpper(key) {
		mods |= tcell.ModShift
	}
	if mods&tcell.ModShift != 0 && unicode.IsLower(key) {
		key = unicode.ToUpper(key)
	}

	var b strings.Builder
	if mods&tcell.ModCtrl != 0 {
		b.WriteString("<Ctrl>")
	}
	if mods&tcell.ModAlt != 0 {
		b.WriteString("<Alt>")
	}
	if mods&tcell.ModMeta != 0 {
		b.WriteString("<Meta>")
	}
	if b.Len() == 0 {
		// a bare or shifted character is text, not a shortcut
		return ""
	}
	if mods&tcell.ModShift != 0 {
		b.WriteString("<Shift>")
	}
	b.WriteRune(key)
	return b.String()
}
