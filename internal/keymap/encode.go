package keymap

import (
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var pathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)

// escapeKey turns a keymap key into a literal sjson path.
func escapeKey(key string) string {
	return pathEscaper.Replace(key)
}

// Set binds key to accel inside an existing keymap document, preserving
// every other member. An empty raw document starts a new object.
func Set(raw []byte, key, accel string) ([]byte, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	out, err := sjson.SetBytes(raw, escapeKey(key), accel)
	if err != nil {
		return nil, fmt.Errorf("setting %s: %w", key, err)
	}
	return out, nil
}

// Unset removes key from a keymap document.
func Unset(raw []byte, key string) ([]byte, error) {
	out, err := sjson.DeleteBytes(raw, escapeKey(key))
	if err != nil {
		return nil, fmt.Errorf("deleting %s: %w", key, err)
	}
	return out, nil
}

// Encode renders a keymap as an indented JSON document with sorted keys.
func Encode(km Keymap) ([]byte, error) {
	raw := []byte("{}")
	for _, e := range km.Entries() {
		var err error
		raw, err = Set(raw, e.Key(), e.Accelerator)
		if err != nil {
			return nil, err
		}
	}
	return pretty.Pretty(raw), nil
}
