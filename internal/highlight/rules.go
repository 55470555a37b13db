package highlight

import (
	"iter"
	"regexp"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Rule tags every match of a pattern.
type Rule struct {
	Pattern *regexp.Regexp
	Tag     string
}

// RuleTokenizer is a regex and keyword based tokenizer. Rules are applied
// in order and the first rule to claim a byte keeps it; remaining
// identifiers are looked up in the keyword table.
type RuleTokenizer struct {
	language string
	rules    []Rule
	keywords map[string]string
}

// NewRuleTokenizer creates an empty tokenizer for language.
func NewRuleTokenizer(language string) *RuleTokenizer {
	return &RuleTokenizer{
		language: language,
		keywords: make(map[string]string),
	}
}

// AddRule adds a pattern. Patterns see the whole text, so use (?m) for
// line anchors and (?s) for constructs that span lines.
func (t *RuleTokenizer) AddRule(pattern, tag string) *RuleTokenizer {
	t.rules = append(t.rules, Rule{
		Pattern: regexp.MustCompile(pattern),
		Tag:     tag,
	})
	return t
}

// AddKeywords tags the given identifiers.
func (t *RuleTokenizer) AddKeywords(tag string, words ...string) *RuleTokenizer {
	for _, w := range words {
		t.keywords[w] = tag
	}
	return t
}

// Language returns the language name.
func (t *RuleTokenizer) Language() string {
	return t.language
}

type token struct {
	tag        string
	start, end int
}

// Tokenize implements Tokenizer. Tags that resolve to none of names are
// emitted as plain source.
func (t *RuleTokenizer) Tokenize(names []string, text []byte) (iter.Seq[Event], error) {
	covered := make([]bool, len(text))
	var tokens []token

	for _, rule := range t.rules {
		for _, m := range rule.Pattern.FindAllIndex(text, -1) {
			start, end := m[0], m[1]
			if end <= start || isCovered(covered, start, end) {
				continue
			}
			tokens = append(tokens, token{tag: rule.Tag, start: start, end: end})
			markCovered(covered, start, end)
		}
	}
	tokens = append(tokens, t.keywordTokens(text, covered)...)

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].start < tokens[j].start
	})

	events := make([]Event, 0, len(tokens)*3+1)
	pos := 0
	for _, tok := range tokens {
		tag, ok := Resolve(names, tok.tag)
		if !ok {
			continue
		}
		if tok.start > pos {
			events = append(events, Source{Start: pos, End: tok.start})
		}
		events = append(events,
			Start{Tag: tag},
			Source{Start: tok.start, End: tok.end},
			End{},
		)
		pos = tok.end
	}
	if pos < len(text) {
		events = append(events, Source{Start: pos, End: len(text)})
	}
	return Events(events...), nil
}

func (t *RuleTokenizer) keywordTokens(text []byte, covered []bool) []token {
	var tokens []token

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRune(text[i:])
		if covered[i] || !(unicode.IsLetter(r) || r == '_') {
			i += size
			continue
		}

		start := i
		for i < len(text) {
			r, size = utf8.DecodeRune(text[i:])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			i += size
		}

		if isCovered(covered, start, i) {
			continue
		}
		if tag, ok := t.keywords[string(text[start:i])]; ok {
			tokens = append(tokens, token{tag: tag, start: start, end: i})
			markCovered(covered, start, i)
		}
	}
	return tokens
}

func isCovered(covered []bool, start, end int) bool {
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}

// PythonRules returns a rule tokenizer for Python.
func PythonRules() *RuleTokenizer {
	t := NewRuleTokenizer("python")

	t.AddRule(`(?s)""".*?"""`, "string")
	t.AddRule(`(?s)'''.*?'''`, "string")
	t.AddRule(`(?m)#.*$`, "comment")
	t.AddRule(`"(?:[^"\\\n]|\\.)*"`, "string")
	t.AddRule(`'(?:[^'\\\n]|\\.)*'`, "string")
	t.AddRule(`\b0[xX][0-9a-fA-F]+\b`, "number")
	t.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?j?\b`, "number")
	t.AddRule(`@\w+`, "attribute")

	t.AddKeywords("keyword",
		"if", "elif", "else", "for", "while", "break", "continue",
		"return", "try", "except", "finally", "raise", "with", "as",
		"match", "case", "def", "class", "lambda", "async", "await",
		"import", "from", "global", "nonlocal", "pass", "yield",
		"assert", "del", "in", "is", "not", "and", "or")
	t.AddKeywords("constant.builtin", "True", "False", "None")
	t.AddKeywords("type.builtin",
		"int", "float", "str", "bool", "list", "dict", "set", "tuple",
		"bytes", "bytearray", "complex", "frozenset", "object")
	t.AddKeywords("function.builtin",
		"print", "len", "range", "enumerate", "zip", "map", "filter",
		"open", "input", "isinstance", "sorted", "sum", "min", "max",
		"abs", "repr", "super")
	t.AddKeywords("variable.builtin", "self", "cls")

	return t
}

// GoRules returns a rule tokenizer for Go.
func GoRules() *RuleTokenizer {
	t := NewRuleTokenizer("go")

	t.AddRule(`(?s)/\*.*?\*/`, "comment")
	t.AddRule("(?s)`[^`]*`", "string")
	t.AddRule(`(?m)//.*$`, "comment")
	t.AddRule(`"(?:[^"\\\n]|\\.)*"`, "string")
	t.AddRule(`'(?:[^'\\\n]|\\.)'`, "string")
	t.AddRule(`\b0[xX][0-9a-fA-F]+\b`, "number")
	t.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, "number")

	t.AddKeywords("keyword",
		"if", "else", "for", "range", "switch", "case", "default",
		"break", "continue", "return", "goto", "fallthrough", "select",
		"func", "var", "const", "type", "struct", "interface", "map", "chan",
		"package", "import", "defer", "go")
	t.AddKeywords("constant.builtin", "true", "false", "nil", "iota")
	t.AddKeywords("type.builtin",
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "complex64", "complex128",
		"bool", "byte", "rune", "string", "error", "any")
	t.AddKeywords("function.builtin",
		"make", "new", "len", "cap", "append", "copy", "delete",
		"close", "panic", "recover", "min", "max", "clear")

	return t
}

// RulesFor returns the rule tokenizer for a language, or nil.
func RulesFor(language string) *RuleTokenizer {
	switch language {
	case "python":
		return PythonRules()
	case "go":
		return GoRules()
	default:
		return nil
	}
}
