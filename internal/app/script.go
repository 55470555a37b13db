package app

import (
	"io"

	"github.com/dshills/zennote/internal/config"
	"github.com/dshills/zennote/internal/logging"
	"github.com/dshills/zennote/internal/script"
)

// NewScripted builds an application whose dialogs are answered by a Lua
// runtime and binds the runtime's editor table to it. Script output goes
// to out.
func NewScripted(cfg *config.Config, logger *logging.Logger, out io.Writer, opts ...Option) (*App, *script.Runtime, error) {
	rt := script.New(script.WithLogger(logger), script.WithOutput(out))

	opts = append(opts, WithLogger(logger), WithDialogs(rt.Dialogs()))
	a, err := New(cfg, opts...)
	if err != nil {
		_ = rt.Close()
		return nil, nil, err
	}
	rt.Bind(a.manager, a.dispatcher)
	return a, rt, nil
}

// RunScript runs the script at path with rt.
func (a *App) RunScript(rt *script.Runtime, path string) error {
	return rt.DoFile(a.fsys, path)
}
