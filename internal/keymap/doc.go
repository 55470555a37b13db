// Package keymap parses and validates the accelerator configuration.
//
// A keymap file is a JSON object whose keys name an action inside a scope
// and whose values are accelerators:
//
//	{
//	    "win.save-file": "<Ctrl>s",
//	    "win.close-file": "<Ctrl>w",
//	    "win.save-file-as": "<Ctrl><Shift>S"
//	}
//
// Parsing never fails. Input that is not a JSON object of strings yields an
// empty Keymap; individual entries with a bad key, an unregistered scope or
// action, or an accelerator outside the grammar are logged and skipped
// while the rest of the file still applies.
//
// # Accelerator Grammar
//
// One or more modifiers written as "<" + uppercase letter + letters + ">",
// followed by exactly one alphanumeric key:
//
//	"<Ctrl>s"        - accepted
//	"<Alt><Shift>Q"  - accepted
//	"<ctrl>s"        - rejected (lowercase modifier)
//	"Ctrl+s"         - rejected (no brackets)
//
// # Usage
//
//	parser := keymap.NewParser(keymap.DefaultRegistry(), logger)
//	km := parser.Load(fsys, "/home/me/.config/zennote/keymap.json")
//	if entry, ok := km.Lookup("<Ctrl>s"); ok {
//	    // dispatch entry.Action
//	}
package keymap
