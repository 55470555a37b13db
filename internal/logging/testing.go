package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger is a Logger whose entries are kept in memory so tests can
// assert on what a component reported.
type TestLogger struct {
	*Logger
	observed *observer.ObservedLogs
}

// NewTestLogger records every entry at debug and above.
func NewTestLogger() *TestLogger {
	core, observed := observer.New(zapcore.DebugLevel)
	return &TestLogger{
		Logger:   &Logger{zap: zap.New(core)},
		observed: observed,
	}
}

// All returns the recorded entries.
func (t *TestLogger) All() []observer.LoggedEntry {
	return t.observed.All()
}

// Component returns the entries written through WithComponent(name).
func (t *TestLogger) Component(name string) []observer.LoggedEntry {
	return t.observed.FilterField(zap.String("component", name)).All()
}

func (t *TestLogger) matching(level zapcore.Level, snippet string) *observer.ObservedLogs {
	return t.observed.FilterLevelExact(level).FilterMessageSnippet(snippet)
}

// AssertLogged fails tb unless an entry at level contains snippet.
func (t *TestLogger) AssertLogged(tb testing.TB, level zapcore.Level, snippet string) {
	tb.Helper()
	if t.matching(level, snippet).Len() == 0 {
		tb.Errorf("no %v entry containing %q in %v", level, snippet, messages(t.All()))
	}
}

// AssertNotLogged fails tb if an entry at level contains snippet.
func (t *TestLogger) AssertNotLogged(tb testing.TB, level zapcore.Level, snippet string) {
	tb.Helper()
	if n := t.matching(level, snippet).Len(); n > 0 {
		tb.Errorf("%d unexpected %v entries containing %q", n, level, snippet)
	}
}

// AssertComponentLogged is AssertLogged restricted to one component.
func (t *TestLogger) AssertComponentLogged(tb testing.TB, component string, level zapcore.Level, snippet string) {
	tb.Helper()
	n := t.matching(level, snippet).FilterField(zap.String("component", component)).Len()
	if n == 0 {
		tb.Errorf("component %q wrote no %v entry containing %q; it wrote %v",
			component, level, snippet, messages(t.Component(component)))
	}
}

func messages(entries []observer.LoggedEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Level.String()+": "+e.Message)
	}
	return out
}
