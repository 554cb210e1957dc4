package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/mathstorm/internal/renderer"
	"github.com/dshills/mathstorm/internal/script"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run <macro.lua>",
		Short: "Run a Lua macro",
		Long: `Run a Lua macro against a fresh expression.

The macro drives the editor through the global table ms (ms.text,
ms.insert, ms.left, ms.right, ms.delete, ms.commit, ms.markup, ...).
print writes to standard output. The final markup is printed last.

Example:
  mathstorm run macro.lua --timeout 2s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			e := newEngine(cmd, cfg)
			res, err := script.RunLuaFile(cmd.Context(), e, args[0],
				script.WithOutput(cmd.OutOrStdout()),
				script.WithTimeout(timeout),
			)
			if err != nil {
				return err
			}

			sink := renderer.NewWriterSink(cmd.OutOrStdout())
			if !e.IsEmpty() {
				sink.Render(res.Markup)
			}
			return sink.Err()
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", script.DefaultLuaTimeout, "Abort the macro after this long (0 disables)")
	return cmd
}
