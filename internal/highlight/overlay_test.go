package highlight

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/zennote/internal/logging"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		len    int
		want   []TagSpan
	}{
		{
			name: "simple tagged source",
			events: []Event{
				Start{Tag: "keyword"}, Source{Start: 0, End: 3}, End{},
				Source{Start: 3, End: 8},
			},
			len:  8,
			want: []TagSpan{{Tag: "keyword", Start: 0, End: 3}},
		},
		{
			name:   "source without tag is unstyled",
			events: []Event{Source{Start: 0, End: 5}},
			len:    5,
			want:   nil,
		},
		{
			name: "second start overwrites the first",
			events: []Event{
				Start{Tag: "function"}, Source{Start: 0, End: 2},
				Start{Tag: "string"}, Source{Start: 2, End: 4},
				End{}, Source{Start: 4, End: 6},
			},
			len: 6,
			want: []TagSpan{
				{Tag: "function", Start: 0, End: 2},
				{Tag: "string", Start: 2, End: 4},
			},
		},
		{
			name: "end clears even after nested start",
			events: []Event{
				Start{Tag: "a"}, Start{Tag: "b"}, End{},
				Source{Start: 0, End: 4}, End{},
			},
			len:  4,
			want: nil,
		},
		{
			name: "ranges clamped to text",
			events: []Event{
				Start{Tag: "comment"}, Source{Start: -2, End: 100}, End{},
			},
			len:  10,
			want: []TagSpan{{Tag: "comment", Start: 0, End: 10}},
		},
		{
			name: "reversed and empty ranges dropped",
			events: []Event{
				Start{Tag: "x"}, Source{Start: 5, End: 2}, Source{Start: 3, End: 3}, End{},
			},
			len:  10,
			want: nil,
		},
		{
			name: "overlap trimmed",
			events: []Event{
				Start{Tag: "x"}, Source{Start: 0, End: 5}, End{},
				Start{Tag: "y"}, Source{Start: 3, End: 8}, End{},
				Start{Tag: "z"}, Source{Start: 1, End: 4}, End{},
			},
			len: 10,
			want: []TagSpan{
				{Tag: "x", Start: 0, End: 5},
				{Tag: "y", Start: 5, End: 8},
			},
		},
		{
			name: "later range before an earlier one is kept",
			events: []Event{
				Start{Tag: "a"}, Source{Start: 10, End: 20}, End{},
				Start{Tag: "b"}, Source{Start: 0, End: 5}, End{},
			},
			len: 30,
			want: []TagSpan{
				{Tag: "b", Start: 0, End: 5},
				{Tag: "a", Start: 10, End: 20},
			},
		},
		{
			name: "range trimmed against the span after it",
			events: []Event{
				Start{Tag: "a"}, Source{Start: 10, End: 20}, End{},
				Start{Tag: "b"}, Source{Start: 5, End: 12}, End{},
			},
			len: 30,
			want: []TagSpan{
				{Tag: "b", Start: 5, End: 10},
				{Tag: "a", Start: 10, End: 20},
			},
		},
		{
			name: "range split around an inner span",
			events: []Event{
				Start{Tag: "a"}, Source{Start: 10, End: 20}, End{},
				Start{Tag: "b"}, Source{Start: 5, End: 25}, End{},
			},
			len: 30,
			want: []TagSpan{
				{Tag: "b", Start: 5, End: 10},
				{Tag: "a", Start: 10, End: 20},
				{Tag: "b", Start: 20, End: 25},
			},
		},
		{
			name: "range filling a gap between spans",
			events: []Event{
				Start{Tag: "a"}, Source{Start: 0, End: 4}, Source{Start: 8, End: 12}, End{},
				Start{Tag: "b"}, Source{Start: 2, End: 10}, End{},
			},
			len: 12,
			want: []TagSpan{
				{Tag: "a", Start: 0, End: 4},
				{Tag: "b", Start: 4, End: 8},
				{Tag: "a", Start: 8, End: 12},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(Events(tt.events...), tt.len))
		})
	}
}

func TestResolve(t *testing.T) {
	names := []string{"function", "function.builtin", "string"}

	got, ok := Resolve(names, "function.builtin")
	assert.True(t, ok)
	assert.Equal(t, "function.builtin", got)

	got, ok = Resolve(names, "function.method")
	assert.True(t, ok)
	assert.Equal(t, "function", got)

	got, ok = Resolve(names, "string.special.key")
	assert.True(t, ok)
	assert.Equal(t, "string", got)

	_, ok = Resolve(names, "functional")
	assert.False(t, ok)

	_, ok = Resolve(nil, "string")
	assert.False(t, ok)
}

func TestOverlay_ClearsBeforeApply(t *testing.T) {
	rec := &Recorder{}
	o := NewOverlay(PythonRules(), HighlightNames, WithPresenter(rec))

	o.Highlight([]byte("def f(): pass"))
	first := append([]TagSpan(nil), rec.Spans...)
	require.NotEmpty(t, first)

	o.Highlight([]byte("x = 1"))
	assert.Equal(t, 2, rec.Clears)
	assert.Equal(t, []TagSpan{{Tag: "number", Start: 4, End: 5}}, rec.Spans)
}

func TestOverlay_Idempotent(t *testing.T) {
	contents := []string{
		"",
		"x",
		"def hello(s: str):\n    print(s + \"Hello\")\n    return s\n",
		"# comment only",
		"'''doc\nstring''' and None",
		"ünïcode = 'ß' # ✓",
	}

	for _, c := range contents {
		rec := &Recorder{}
		o := NewOverlay(PythonRules(), HighlightNames, WithPresenter(rec))

		first := o.Highlight([]byte(c))
		applied := append([]TagSpan(nil), rec.Spans...)
		second := o.Highlight([]byte(c))

		assert.Equal(t, first, second, c)
		assert.Equal(t, applied, rec.Spans, c)
	}
}

func TestOverlay_TokenizerError(t *testing.T) {
	logger := logging.NewTestLogger()
	rec := &Recorder{Spans: []TagSpan{{Tag: "stale", Start: 0, End: 1}}}
	failing := TokenizerFunc(func([]string, []byte) (iter.Seq[Event], error) {
		return nil, errors.New("no language")
	})

	o := NewOverlay(failing, HighlightNames, WithPresenter(rec), WithLogger(logger.Logger))
	spans := o.Highlight([]byte("text"))

	assert.Empty(t, spans)
	assert.Empty(t, rec.Spans)
	logger.AssertLogged(t, zapcore.WarnLevel, "tokenizing failed")
}

func TestOverlay_NilTokenizer(t *testing.T) {
	rec := &Recorder{}
	o := NewOverlay(nil, nil, WithPresenter(rec))

	assert.Empty(t, o.Highlight([]byte("anything")))
	assert.Equal(t, 1, rec.Clears)
}

func TestOverlay_PassesNames(t *testing.T) {
	var got []string
	tok := TokenizerFunc(func(names []string, text []byte) (iter.Seq[Event], error) {
		got = names
		return Events(Start{Tag: "keyword"}, Source{Start: 0, End: len(text)}, End{}), nil
	})

	o := NewOverlay(tok, []string{"keyword"})
	spans := o.Highlight([]byte("if"))

	assert.Equal(t, []string{"keyword"}, got)
	assert.Equal(t, []TagSpan{{Tag: "keyword", Start: 0, End: 2}}, spans)
}

func TestTagSpan(t *testing.T) {
	s := TagSpan{Tag: "x", Start: 2, End: 5}
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(5))
}
