package theme

import "github.com/lucasb-eyer/go-colorful"

func hex(s string) colorful.Color {
	c, _ := colorful.Hex(s)
	return c
}

// Default returns the built-in dark theme. It has a rule for every default
// highlight name group.
func Default() *Theme {
	t := New("default")

	comment := hex("#6a9955")
	keyword := hex("#569cd6")
	str := hex("#ce9178")
	number := hex("#b5cea8")
	function := hex("#dcdcaa")
	typ := hex("#4ec9b0")
	variable := hex("#9cdcfe")
	punct := hex("#d4d4d4")

	rule := func(tag string, c colorful.Color) Rule {
		return Rule{Tag: tag, Color: c, HasColor: true}
	}

	t.Set(Rule{Tag: "comment", Color: comment, HasColor: true, FontStyle: StyleItalic})
	t.Set(Rule{Tag: "keyword", Color: keyword, HasColor: true, FontWeight: 700})
	t.Set(rule("string", str))
	t.Set(rule("string.special", hex("#d7ba7d")))
	t.Set(rule("number", number))
	t.Set(rule("constant", keyword))
	t.Set(rule("constant.builtin", keyword))
	t.Set(rule("function", function))
	t.Set(rule("function.builtin", function))
	t.Set(rule("constructor", typ))
	t.Set(rule("type", typ))
	t.Set(rule("type.builtin", typ))
	t.Set(rule("variable", variable))
	t.Set(Rule{Tag: "variable.builtin", Color: keyword, HasColor: true, FontStyle: StyleItalic})
	t.Set(rule("variable.parameter", variable))
	t.Set(rule("property", variable))
	t.Set(rule("property.builtin", variable))
	t.Set(rule("attribute", hex("#c586c0")))
	t.Set(rule("module", typ))
	t.Set(rule("operator", punct))
	t.Set(rule("punctuation", punct))
	t.Set(rule("punctuation.bracket", punct))
	t.Set(rule("punctuation.delimiter", punct))
	t.Set(rule("punctuation.special", keyword))
	t.Set(rule("tag", keyword))
	t.Set(rule("embedded", variable))

	return t
}
