package dialog

import (
	"fmt"
	"strings"
)

// PathResult is the answer to a path request. OK is false when the user
// dismissed the request.
type PathResult struct {
	Path string
	OK   bool
}

// Path returns a result carrying p.
func Path(p string) PathResult {
	return PathResult{Path: p, OK: true}
}

// NoPath returns the dismissed result.
func NoPath() PathResult {
	return PathResult{}
}

// Choice is the answer to an unsaved-changes confirmation.
type Choice int

const (
	// Cancel keeps the document open and dirty.
	Cancel Choice = iota
	// Save writes the document before closing it.
	Save
	// Discard closes the document without writing.
	Discard
)

func (c Choice) String() string {
	switch c {
	case Save:
		return "save"
	case Discard:
		return "discard"
	default:
		return "cancel"
	}
}

// ParseChoice parses "save", "discard" or "cancel".
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "save":
		return Save, nil
	case "discard":
		return Discard, nil
	case "cancel":
		return Cancel, nil
	default:
		return Cancel, fmt.Errorf("unknown choice %q", s)
	}
}

// Dialogs asks the user for decisions. Every method returns immediately;
// the answer arrives through the reply.
type Dialogs interface {
	// RequestOpenPath asks for an existing file to open.
	RequestOpenPath() *Reply[PathResult]

	// RequestSavePath asks for a path to write to.
	RequestSavePath() *Reply[PathResult]

	// ConfirmUnsaved asks what to do with the unsaved changes of the
	// document shown as name.
	ConfirmUnsaved(name string) *Reply[Choice]
}

// Decline answers every request with a dismissal.
type Decline struct{}

var _ Dialogs = Decline{}

// RequestOpenPath implements Dialogs.
func (Decline) RequestOpenPath() *Reply[PathResult] { return Resolved(NoPath()) }

// RequestSavePath implements Dialogs.
func (Decline) RequestSavePath() *Reply[PathResult] { return Resolved(NoPath()) }

// ConfirmUnsaved implements Dialogs.
func (Decline) ConfirmUnsaved(string) *Reply[Choice] { return Resolved(Cancel) }
