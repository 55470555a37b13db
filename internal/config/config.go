// Package config loads zennote settings.
//
// Settings are layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment (ZENNOTE_)  │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file (toml/yaml) │
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Environment variables map to keys by splitting on the first underscore
// after the prefix: ZENNOTE_LOG_LEVEL → log.level,
// ZENNOTE_EDITOR_UNTITLED_TITLE → editor.untitled_title.
package config

import (
	"errors"
	"fmt"

	"github.com/dshills/zennote/internal/document"
	"github.com/dshills/zennote/internal/logging"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "ZENNOTE_"

// Supported editor languages.
var languages = []string{"python", "go"}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Log    logging.Config `koanf:"log"`
	Keymap KeymapConfig   `koanf:"keymap"`
	Theme  ThemeConfig    `koanf:"theme"`
	Editor EditorConfig   `koanf:"editor"`
}

// KeymapConfig locates the keymap file.
type KeymapConfig struct {
	// Path is the keymap JSON file. Empty means built-in bindings only.
	Path string `koanf:"path"`

	// Watch reloads the keymap when the file changes.
	Watch bool `koanf:"watch"`
}

// ThemeConfig locates the tag style file.
type ThemeConfig struct {
	// Path is a tags JSON file. Empty means the default theme.
	Path string `koanf:"path"`
}

// EditorConfig holds document settings.
type EditorConfig struct {
	// Language selects the tokenizer.
	Language string `koanf:"language"`

	// UntitledTitle is shown for sessions without a path.
	UntitledTitle string `koanf:"untitled_title"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: logging.DefaultConfig(),
		Editor: EditorConfig{
			Language:      "python",
			UntitledTitle: document.DefaultUntitled,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !SupportedLanguage(c.Editor.Language) {
		return fmt.Errorf("%w: unknown language %q", ErrInvalidConfig, c.Editor.Language)
	}
	if c.Editor.UntitledTitle == "" {
		return fmt.Errorf("%w: editor.untitled_title is empty", ErrInvalidConfig)
	}
	return nil
}

// SupportedLanguage reports whether lang has a tokenizer.
func SupportedLanguage(lang string) bool {
	for _, l := range languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Languages returns the supported editor languages.
func Languages() []string {
	out := make([]string, len(languages))
	copy(out, languages)
	return out
}
