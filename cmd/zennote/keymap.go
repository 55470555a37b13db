package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/zennote/internal/keymap"
)

// errRejected is returned by keymap check when any entry was dropped.
var errRejected = errors.New("keymap has rejected bindings")

func newKeymapCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keymap",
		Short: "Inspect and edit keymap files",
		Long: `Inspect and edit keymap files.

A keymap file is a JSON object mapping "scope.action" to an accelerator:

  {"win.save-file": "<Ctrl>s", "win.close-file": "<Ctrl>w"}`,
	}
	cmd.AddCommand(newKeymapCheckCmd())
	cmd.AddCommand(newKeymapSetCmd())
	cmd.AddCommand(newKeymapUnsetCmd())
	cmd.AddCommand(newKeymapFormatCmd())
	return cmd
}

func newKeymapCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a keymap file and list the accepted bindings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			km, rejected := keymap.NewParser(nil, nil).Check(raw)

			out := cmd.OutOrStdout()
			for _, e := range km.Entries() {
				fmt.Fprintf(out, "%s\t%s\n", e.Key(), e.Accelerator)
			}
			for _, r := range rejected {
				fmt.Fprintf(cmd.ErrOrStderr(), "rejected: %v\n", r)
			}
			if len(rejected) > 0 {
				return fmt.Errorf("%w: %d", errRejected, len(rejected))
			}
			return nil
		},
	}
}

func newKeymapSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set FILE SCOPE.ACTION ACCELERATOR",
		Short:   "Bind an accelerator, creating the file if needed",
		Example: `  zennote keymap set ~/.config/zennote/keymap.json win.save-file "<Ctrl>s"`,
		Args:    cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			path, key, accel := args[0], args[1], args[2]
			if err := keymap.NewParser(nil, nil).Validate(key, accel); err != nil {
				return fmt.Errorf("%s = %s: %w", key, accel, err)
			}
			raw, err := readOptional(path)
			if err != nil {
				return err
			}
			out, err := keymap.Set(raw, key, accel)
			if err != nil {
				return err
			}
			return os.WriteFile(path, out, 0o644)
		},
	}
}

func newKeymapUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset FILE SCOPE.ACTION",
		Short: "Remove a binding",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, err := keymap.Unset(raw, args[1])
			if err != nil {
				return err
			}
			return os.WriteFile(args[0], out, 0o644)
		},
	}
}

func newKeymapFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format FILE",
		Short: "Print the accepted bindings as a normalized keymap document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, err := keymap.Encode(keymap.NewParser(nil, nil).Parse(raw))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// readOptional reads path, treating a missing file as empty.
func readOptional(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return raw, err
}
