package keymap

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/logging"
	"github.com/dshills/zennote/internal/vfs"
)

// Rejection reasons.
var (
	// ErrMalformed means the payload is not a JSON object of strings.
	ErrMalformed = errors.New("keymap is not a JSON object of strings")

	// ErrInvalidKey means a key does not split into scope and action.
	ErrInvalidKey = errors.New("invalid key format")

	// ErrUnknownScope means the scope is not registered.
	ErrUnknownScope = errors.New("invalid scope")

	// ErrUnknownAction means the action is not registered for the scope.
	ErrUnknownAction = errors.New("invalid action")

	// ErrInvalidAccelerator means the value does not match the accelerator grammar.
	ErrInvalidAccelerator = errors.New("invalid keybind")
)

// Rejection records why an entry was dropped.
type Rejection struct {
	Key   string
	Value string
	Err   error
}

func (r Rejection) Error() string {
	if r.Key == "" {
		return r.Err.Error()
	}
	return fmt.Sprintf("%s: %q = %q", r.Err, r.Key, r.Value)
}

func (r Rejection) Unwrap() error { return r.Err }

// Parser validates keymap payloads against a registry.
type Parser struct {
	registry *Registry
	logger   *logging.Logger
}

// NewParser creates a parser. A nil registry means DefaultRegistry.
func NewParser(registry *Registry, logger *logging.Logger) *Parser {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Parser{
		registry: registry,
		logger:   logging.OrNop(logger).WithComponent("keymap"),
	}
}

// Registry returns the parser's registry.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// Parse parses raw into a Keymap holding only the valid entries.
func (p *Parser) Parse(raw []byte) Keymap {
	km, _ := p.Check(raw)
	return km
}

// Check parses raw and also reports every dropped entry. A malformed
// payload yields an empty Keymap and a single rejection wrapping ErrMalformed.
func (p *Parser) Check(raw []byte) (Keymap, []Rejection) {
	km := make(Keymap)

	if !gjson.ValidBytes(raw) {
		p.logger.Warn("keymap is not valid JSON")
		return km, []Rejection{{Err: ErrMalformed}}
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		p.logger.Warn("keymap top level is not an object", zap.String("type", root.Type.String()))
		return km, []Rejection{{Err: ErrMalformed}}
	}

	malformed := false
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			p.logger.Warn("keymap value is not a string", zap.String("key", key.String()))
			malformed = true
			return false
		}
		return true
	})
	if malformed {
		return km, []Rejection{{Err: ErrMalformed}}
	}

	var rejected []Rejection
	root.ForEach(func(key, value gjson.Result) bool {
		k, v := key.String(), value.String()
		if err := p.Validate(k, v); err != nil {
			p.logger.Warn(err.Error(), zap.String("key", k), zap.String("value", v))
			rejected = append(rejected, Rejection{Key: k, Value: v, Err: err})
			// duplicate keys: the last occurrence decides
			delete(km, k)
			return true
		}
		km[k] = v
		return true
	})

	return km, rejected
}

// Validate checks a single binding against the registry and the
// accelerator grammar.
func (p *Parser) Validate(key, value string) error {
	scope, action, ok := SplitKey(key)
	if !ok {
		return ErrInvalidKey
	}
	if !p.registry.HasScope(scope) {
		return ErrUnknownScope
	}
	if !p.registry.HasAction(scope, action) {
		return ErrUnknownAction
	}
	if !ValidAccelerator(value) {
		return ErrInvalidAccelerator
	}
	return nil
}

// Load reads path from fsys and parses it. A missing or unreadable file
// yields an empty Keymap.
func (p *Parser) Load(fsys vfs.VFS, path string) Keymap {
	if !fsys.IsRegular(path) {
		p.logger.Warn("keymap file not found", zap.String("path", path))
		return make(Keymap)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		p.logger.Warn("reading keymap", zap.String("path", path), zap.Error(err))
		return make(Keymap)
	}
	return p.Parse(data)
}

// Parse parses raw against the default registry without logging.
func Parse(raw string) Keymap {
	return NewParser(nil, nil).Parse([]byte(raw))
}
