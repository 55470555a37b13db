package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/zennote/internal/app"
	"github.com/dshills/zennote/internal/vfs"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run SCRIPT [files...]",
		Short: "Drive editing sessions from a Lua script",
		Long: `Run a Lua script against a headless editor. Files given after the script
are opened as sessions first.

The script sees an "editor" table (new, open, edit, save, save_as, close,
dispatch, key, select, title, path, dirty, content, count, spans). Dialogs
are answered by functions the script defines on a global "dialogs" table:

  dialogs = {}
  function dialogs.save_path() return "/tmp/out.py" end
  function dialogs.confirm(name) return "discard" end

Examples:
  zennote run fix-headers.lua notes/*.py`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			a, rt, err := app.NewScripted(cfg, logger, cmd.OutOrStdout(), app.WithFS(vfs.NewOSFS()))
			if err != nil {
				return err
			}
			defer a.Close()
			defer rt.Close()

			if files := args[1:]; len(files) > 0 {
				a.OpenFiles(files...)
			}
			if err := a.RunScript(rt, args[0]); err != nil {
				return err
			}
			logger.Debug("script finished", zap.String("script", args[0]), zap.Int("sessions", a.Manager().Len()))
			return nil
		},
	}
}
