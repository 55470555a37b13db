package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/zennote/internal/app"
	"github.com/dshills/zennote/internal/vfs"
)

func newHighlightCmd(flags *globalFlags) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "highlight FILE",
		Short: "Print the highlight spans of a file",
		Long: `Print the highlight spans of a file as tab-separated start, end and tag
columns. Offsets are byte offsets into the file. The language follows the
file extension unless --language is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if language != "" {
				cfg.Editor.Language = language
			} else {
				cfg.Editor.Language = languageFor(args[0], cfg.Editor.Language)
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			a, err := app.New(cfg, app.WithFS(vfs.NewOSFS()), app.WithLogger(logger))
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.Manager().OpenSession(args[0])
			if !s.HasPath() {
				return fmt.Errorf("cannot open %s", args[0])
			}
			out := cmd.OutOrStdout()
			for _, span := range s.Spans() {
				fmt.Fprintf(out, "%d\t%d\t%s\n", span.Start, span.End, span.Tag)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "language to highlight as (python, go)")
	return cmd
}
