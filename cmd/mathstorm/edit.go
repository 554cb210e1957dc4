package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/mathstorm/internal/app"
	"github.com/dshills/mathstorm/internal/renderer/backend"
)

func newEditCmd(opts *globalOptions) *cobra.Command {
	var watch bool
	var record string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive editor",
		Long: `Open the interactive editor in the terminal.

Keys:
  letters, digits, operators   insert text
  \                            open the palette prompt; Enter inserts the best match
  Left/Right                   move the cursor
  Home/Up, End/Down            jump to the start or end
  Backspace                    delete backward
  Enter                        commit the expression
  Ctrl-L                       clear the expression
  Esc, Ctrl-C                  quit

With --record the session is saved as a YAML script on exit, ready to
replay with "mathstorm render".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// The terminal owns the screen while running, so log only to a file.
			var logOutput io.Writer
			if cfg.Log.File == "" {
				logOutput = io.Discard
			}

			application, err := app.New(app.Options{
				ConfigPath:  opts.configPath,
				Config:      cfg,
				LogOutput:   logOutput,
				WatchConfig: watch,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer func() { _ = application.Close() }()

			term, err := backend.NewTerminal()
			if err != nil {
				return fmt.Errorf("failed to create terminal: %w", err)
			}
			if err := application.SetBackend(term); err != nil {
				return fmt.Errorf("failed to set backend: %w", err)
			}

			// Handle signals for graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := application.Run(ctx); err != nil {
				return err
			}

			if record != "" {
				if err := application.Recording().Save(record, "recorded session"); err != nil {
					return err
				}
			}

			for _, entry := range application.Engine().History() {
				fmt.Fprintln(cmd.OutOrStdout(), entry.Markup)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch-config", "w", false, "Reload the configuration file when it changes")
	cmd.Flags().StringVar(&record, "record", "", "Save the session as a YAML script to this file")
	return cmd
}
