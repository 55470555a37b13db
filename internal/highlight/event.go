package highlight

import (
	"fmt"
	"iter"
)

// Event is one element of a tokenizer's output. The set of implementations
// is closed: Start, Source and End.
type Event interface {
	event()
}

// Start sets the current tag.
type Start struct {
	Tag string
}

// Source covers the byte range [Start, End) of the text.
type Source struct {
	Start int
	End   int
}

// End clears the current tag.
type End struct{}

func (Start) event()  {}
func (Source) event() {}
func (End) event()    {}

func (e Start) String() string  { return fmt.Sprintf("Start(%s)", e.Tag) }
func (e Source) String() string { return fmt.Sprintf("Source(%d, %d)", e.Start, e.End) }
func (End) String() string      { return "End" }

// TagSpan is a half-open byte range of the content annotated with a tag name.
type TagSpan struct {
	Tag   string `json:"tag"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Len returns the length of the span in bytes.
func (s TagSpan) Len() int {
	return s.End - s.Start
}

// Contains reports whether offset lies inside the span.
func (s TagSpan) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Events returns a sequence over the given events.
func Events(events ...Event) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, e := range events {
			if !yield(e) {
				return
			}
		}
	}
}
