package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/zennote/internal/app"
	"github.com/dshills/zennote/internal/logging"
)

func newViewCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view [files...]",
		Short: "Open files in the terminal editor",
		Long: `Open files in the terminal editor, one tab per file.

Keys:
  Ctrl+N / Ctrl+O      new file / open file
  Ctrl+S / Ctrl+Shift+S  save / save as
  Ctrl+W               close the active tab
  Ctrl+Left/Right      switch tabs
  PgUp/PgDn            scroll
  Ctrl+Q               close every tab and quit

Bindings other than Ctrl+Q and tab switching come from the keymap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, flags, args)
		},
	}
}

func runView(_ *cobra.Command, flags *globalFlags, files []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	// stderr shares the terminal with the screen
	prompt := app.NewPrompt()
	a, err := app.New(cfg, app.WithDialogs(prompt), app.WithLogger(logging.Nop()))
	if err != nil {
		return err
	}
	defer a.Close()
	a.OpenFiles(files...)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.NewTerminal(a, screen, prompt).Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
