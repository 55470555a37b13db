// Package treesitter tokenizes source text with tree-sitter grammars and
// highlight queries.
package treesitter

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"iter"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/dshills/zennote/internal/highlight"
)

//go:embed queries/*.scm
var queries embed.FS

// ErrUnsupportedLanguage is returned for a language without a grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

type grammar struct {
	lang  func() *sitter.Language
	query string
}

var grammars = map[string]grammar{
	"python": {lang: python.GetLanguage, query: "queries/python.scm"},
}

// Languages returns the languages with a grammar.
func Languages() []string {
	out := make([]string, 0, len(grammars))
	for name := range grammars {
		out = append(out, name)
	}
	return out
}

// Tokenizer implements highlight.Tokenizer on a tree-sitter grammar.
// It is safe for concurrent use.
type Tokenizer struct {
	mu       sync.Mutex
	language string
	parser   *sitter.Parser
	lang     *sitter.Language
	query    *sitter.Query
}

// New creates a tokenizer for language.
func New(language string) (*Tokenizer, error) {
	g, ok := grammars[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	src, err := queries.ReadFile(g.query)
	if err != nil {
		return nil, fmt.Errorf("read highlights query: %w", err)
	}

	lang := g.lang()
	query, err := sitter.NewQuery(src, lang)
	if err != nil {
		return nil, fmt.Errorf("compile highlights query: %w", err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	return &Tokenizer{
		language: language,
		parser:   parser,
		lang:     lang,
		query:    query,
	}, nil
}

// Language returns the grammar's language name.
func (t *Tokenizer) Language() string {
	return t.language
}

// Close releases the parser and query.
func (t *Tokenizer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.query != nil {
		t.query.Close()
		t.query = nil
	}
	if t.parser != nil {
		t.parser.Close()
		t.parser = nil
	}
	return nil
}

// capture is a resolved query capture.
type capture struct {
	tag        string
	start, end int
	pattern    uint16
}

// Tokenize implements highlight.Tokenizer.
func (t *Tokenizer) Tokenize(names []string, text []byte) (iter.Seq[highlight.Event], error) {
	captures, err := t.captures(names, text)
	if err != nil {
		return nil, err
	}
	return flatten(captures, len(text)), nil
}

func (t *Tokenizer) captures(names []string, text []byte) ([]capture, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.parser == nil {
		return nil, errors.New("tokenizer closed")
	}

	tree, err := t.parser.ParseCtx(context.Background(), nil, text)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(t.query, tree.RootNode())

	var out []capture
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, text)
		for _, c := range match.Captures {
			if c.Node == nil {
				continue
			}
			tag, ok := highlight.Resolve(names, t.query.CaptureNameForId(c.Index))
			if !ok {
				continue
			}
			start, end := int(c.Node.StartByte()), int(c.Node.EndByte())
			if start >= end || end > len(text) {
				continue
			}
			out = append(out, capture{tag: tag, start: start, end: end, pattern: match.PatternIndex})
		}
	}
	return out, nil
}

// flatten paints captures onto the text, innermost first. For captures of
// the same range the earlier pattern wins.
func flatten(captures []capture, textLen int) iter.Seq[highlight.Event] {
	owner := make([]int, textLen)
	for i := range owner {
		owner[i] = -1
	}

	for ci, c := range captures {
		for b := c.start; b < c.end; b++ {
			cur := owner[b]
			if cur < 0 || wins(c, captures[cur]) {
				owner[b] = ci
			}
		}
	}

	return func(yield func(highlight.Event) bool) {
		pos := 0
		for pos < textLen {
			end := pos + 1
			for end < textLen && owner[end] == owner[pos] {
				end++
			}

			var events []highlight.Event
			if o := owner[pos]; o >= 0 {
				events = []highlight.Event{
					highlight.Start{Tag: captures[o].tag},
					highlight.Source{Start: pos, End: end},
					highlight.End{},
				}
			} else {
				events = []highlight.Event{highlight.Source{Start: pos, End: end}}
			}
			for _, ev := range events {
				if !yield(ev) {
					return
				}
			}
			pos = end
		}
	}
}

func wins(c, cur capture) bool {
	cl, curl := c.end-c.start, cur.end-cur.start
	if cl != curl {
		return cl < curl
	}
	if c.start != cur.start {
		return false
	}
	return c.pattern < cur.pattern
}
