package highlight

import (
	"iter"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/logging"
)

// Tokenizer produces the event stream for a text. The returned sequence is
// consumed once per call.
type Tokenizer interface {
	Tokenize(names []string, text []byte) (iter.Seq[Event], error)
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(names []string, text []byte) (iter.Seq[Event], error)

// Tokenize calls f.
func (f TokenizerFunc) Tokenize(names []string, text []byte) (iter.Seq[Event], error) {
	return f(names, text)
}

// Presenter receives the styling for a document.
type Presenter interface {
	// ClearTags removes every span previously applied.
	ClearTags()

	// ApplyTag styles one span.
	ApplyTag(span TagSpan)
}

// Compute folds an event sequence into spans over a text of textLen bytes.
//
// Ranges are clamped to the text and reversed or zero-width ranges are
// dropped. A range is cut around spans already emitted, so the result is
// ordered by offset and never overlaps whatever order the ranges arrive in.
func Compute(events iter.Seq[Event], textLen int) []TagSpan {
	var spans []TagSpan
	current := ""

	for ev := range events {
		switch e := ev.(type) {
		case Start:
			current = e.Tag
		case End:
			current = ""
		case Source:
			if current == "" {
				continue
			}
			spans = insertSpan(spans, current, clamp(e.Start, textLen), clamp(e.End, textLen))
		}
	}
	return spans
}

// insertSpan adds the parts of [start, end) not covered by spans, keeping
// spans sorted by start.
func insertSpan(spans []TagSpan, tag string, start, end int) []TagSpan {
	for start < end {
		i := sort.Search(len(spans), func(i int) bool { return spans[i].Start >= start })
		if i > 0 && spans[i-1].End > start {
			start = spans[i-1].End
			continue
		}
		if i == len(spans) || spans[i].Start >= end {
			return slices.Insert(spans, i, TagSpan{Tag: tag, Start: start, End: end})
		}
		next := spans[i]
		if start < next.Start {
			spans = slices.Insert(spans, i, TagSpan{Tag: tag, Start: start, End: next.Start})
		}
		start = next.End
	}
	return spans
}

func clamp(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

// Overlay recomputes and applies the spans of one document.
type Overlay struct {
	tokenizer Tokenizer
	names     []string
	presenter Presenter
	logger    *logging.Logger
}

// OverlayOption configures an Overlay.
type OverlayOption func(*Overlay)

// WithPresenter sets the presenter that receives the spans.
func WithPresenter(p Presenter) OverlayOption {
	return func(o *Overlay) {
		o.presenter = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) OverlayOption {
	return func(o *Overlay) {
		o.logger = logging.OrNop(l).WithComponent("highlight")
	}
}

// NewOverlay creates an overlay. A nil tokenizer produces no spans.
func NewOverlay(tokenizer Tokenizer, names []string, opts ...OverlayOption) *Overlay {
	o := &Overlay{
		tokenizer: tokenizer,
		names:     append([]string(nil), names...),
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SetPresenter replaces the presenter. The new presenter only sees spans
// from the next Highlight call.
func (o *Overlay) SetPresenter(p Presenter) {
	o.presenter = p
}

// Names returns the recognized tag names.
func (o *Overlay) Names() []string {
	return o.names
}

// Highlight recomputes the spans for text, replacing everything applied
// before. A tokenizer failure leaves the document without spans.
func (o *Overlay) Highlight(text []byte) []TagSpan {
	if o.presenter != nil {
		o.presenter.ClearTags()
	}
	if o.tokenizer == nil {
		return nil
	}

	events, err := o.tokenizer.Tokenize(o.names, text)
	if err != nil {
		o.logger.Warn("tokenizing failed", zap.Error(err), zap.Int("bytes", len(text)))
		return nil
	}

	spans := Compute(events, len(text))
	if o.presenter != nil {
		for _, s := range spans {
			o.presenter.ApplyTag(s)
		}
	}
	return spans
}

// Recorder is a Presenter that keeps the applied spans in memory.
type Recorder struct {
	Spans  []TagSpan
	Clears int
}

// ClearTags implements Presenter.
func (r *Recorder) ClearTags() {
	r.Spans = nil
	r.Clears++
}

// ApplyTag implements Presenter.
func (r *Recorder) ApplyTag(span TagSpan) {
	r.Spans = append(r.Spans, span)
}
