package highlight

import "strings"

// HighlightNames are the capture names the highlighter recognizes by default.
var HighlightNames = []string{
	"attribute",
	"comment",
	"constant",
	"constant.builtin",
	"constructor",
	"embedded",
	"function",
	"function.builtin",
	"keyword",
	"module",
	"number",
	"operator",
	"property",
	"property.builtin",
	"punctuation",
	"punctuation.bracket",
	"punctuation.delimiter",
	"punctuation.special",
	"string",
	"string.special",
	"tag",
	"type",
	"type.builtin",
	"variable",
	"variable.builtin",
	"variable.parameter",
}

// Resolve maps a capture name onto the longest recognized name that equals
// it or is a dot-separated prefix of it. "function.builtin" resolves to
// "function" when only "function" is recognized.
func Resolve(names []string, capture string) (string, bool) {
	best := ""
	for _, n := range names {
		if n != capture && !strings.HasPrefix(capture, n+".") {
			continue
		}
		if len(n) > len(best) {
			best = n
		}
	}
	return best, best != ""
}
