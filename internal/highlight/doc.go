// Package highlight maps a tokenizer's event stream onto styled text ranges.
//
// A Tokenizer turns document text into a flat sequence of events:
//
//	Start{Tag: "keyword"}   the current tag becomes "keyword"
//	Source{Start, End}      a byte range of the text
//	End{}                   the current tag is cleared
//
// Compute folds that sequence into TagSpans using a single current-tag
// register. There is no stack: a second Start before End replaces the
// first tag, and Source ranges seen while no tag is set stay unstyled.
//
// Overlay drives one document: every Highlight call clears whatever the
// Presenter holds, recomputes the spans from scratch and applies them, so
// two calls with the same text always yield the same spans.
package highlight
