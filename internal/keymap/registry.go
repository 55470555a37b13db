package keymap

import (
	"sort"
)

// ScopeWindow is the window-level action scope.
const ScopeWindow = "win"

// Window-scope actions.
const (
	ActionNewFile    = "new-file"
	ActionSaveFile   = "save-file"
	ActionSaveFileAs = "save-file-as"
	ActionOpenFile   = "open-file"
	ActionCloseFile  = "close-file"
)

// Registry is the closed set of scopes and the actions registered in each.
// Each Parser holds its own Registry; there is no process-wide registry.
type Registry struct {
	scopes map[string]map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		scopes: make(map[string]map[string]struct{}),
	}
}

// DefaultRegistry returns a registry with the window actions registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ScopeWindow,
		ActionNewFile,
		ActionSaveFile,
		ActionSaveFileAs,
		ActionOpenFile,
		ActionCloseFile,
	)
	return r
}

// Register adds actions to a scope, creating the scope if needed.
func (r *Registry) Register(scope string, actions ...string) *Registry {
	set, ok := r.scopes[scope]
	if !ok {
		set = make(map[string]struct{}, len(actions))
		r.scopes[scope] = set
	}
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return r
}

// HasScope reports whether scope is registered.
func (r *Registry) HasScope(scope string) bool {
	_, ok := r.scopes[scope]
	return ok
}

// HasAction reports whether action is registered under scope.
func (r *Registry) HasAction(scope, action string) bool {
	set, ok := r.scopes[scope]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}

// Scopes returns the registered scopes in sorted order.
func (r *Registry) Scopes() []string {
	out := make([]string, 0, len(r.scopes))
	for s := range r.scopes {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Actions returns the actions of scope in sorted order.
func (r *Registry) Actions(scope string) []string {
	set := r.scopes[scope]
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
