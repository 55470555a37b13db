package keymap

import (
	"regexp"
	"sort"
	"strings"
)

var acceleratorPattern = regexp.MustCompile(`^(<[A-Z][A-Za-z]*>)+[a-zA-Z0-9]$`)

// ValidAccelerator reports whether s matches the accelerator grammar.
func ValidAccelerator(s string) bool {
	return acceleratorPattern.MatchString(s)
}

// Entry is one accepted binding.
type Entry struct {
	Scope       string
	Action      string
	Accelerator string
}

// Key returns the "scope.action" form of the entry.
func (e Entry) Key() string {
	return Key(e.Scope, e.Action)
}

// Key joins a scope and action into a keymap key.
func Key(scope, action string) string {
	return scope + "." + action
}

// SplitKey splits a keymap key on its first dot. Both halves must be non-empty.
func SplitKey(key string) (scope, action string, ok bool) {
	scope, action, found := strings.Cut(key, ".")
	if !found || scope == "" || action == "" {
		return "", "", false
	}
	return scope, action, true
}

// Keymap maps "scope.action" keys to accelerators.
type Keymap map[string]string

// Entries returns the bindings sorted by key.
func (k Keymap) Entries() []Entry {
	keys := make([]string, 0, len(k))
	for key := range k {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		scope, action, ok := SplitKey(key)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Scope:       scope,
			Action:      action,
			Accelerator: k[key],
		})
	}
	return entries
}

// Lookup finds the binding for an accelerator. When several actions share
// an accelerator the one with the smallest key wins.
func (k Keymap) Lookup(accel string) (Entry, bool) {
	for _, e := range k.Entries() {
		if e.Accelerator == accel {
			return e, true
		}
	}
	return Entry{}, false
}

// Accelerator returns the accelerator bound to scope.action.
func (k Keymap) Accelerator(scope, action string) (string, bool) {
	accel, ok := k[Key(scope, action)]
	return accel, ok
}

// Clone returns a copy of the keymap.
func (k Keymap) Clone() Keymap {
	out := make(Keymap, len(k))
	for key, v := range k {
		out[key] = v
	}
	return out
}
