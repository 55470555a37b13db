// Package main is the entry point for the zennote editor.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/zennote/internal/config"
	"github.com/dshills/zennote/internal/logging"
	"github.com/dshills/zennote/internal/vfs"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "zennote [files...]",
		Short: "A small tabbed text editor",
		Long: `zennote edits files in tabs with syntax highlighting and configurable
key bindings. Without a subcommand it opens the terminal editor.

Configuration is read from --config (TOML or YAML) and ZENNOTE_* environment
variables, e.g. ZENNOTE_LOG_LEVEL=debug.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, flags, args)
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to configuration file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newViewCmd(flags))
	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newKeymapCmd(flags))
	root.AddCommand(newHighlightCmd(flags))
	return root
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(vfs.NewOSFS(), flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	return cfg, nil
}

// newLogger builds the stderr logger for non-interactive commands.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// languageFor picks the editor language from a file extension.
func languageFor(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyw", ".pyi":
		return "python"
	case ".go":
		return "go"
	default:
		return fallback
	}
}
