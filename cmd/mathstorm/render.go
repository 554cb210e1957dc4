package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/mathstorm/internal/config"
	"github.com/dshills/mathstorm/internal/config/watcher"
	"github.com/dshills/mathstorm/internal/engine"
	"github.com/dshills/mathstorm/internal/renderer"
	"github.com/dshills/mathstorm/internal/script"
)

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var caret, plain, watch bool

	cmd := &cobra.Command{
		Use:   "render <script>",
		Short: "Replay an edit script and print the markup",
		Long: `Replay an edit script and print the resulting markup.

YAML scripts (.yaml, .yml) list steps; Lua macros (.lua) call the ms API.
Each committed expression is printed on its own line, followed by the
expression still being edited, if any.

Examples:
  mathstorm render quadratic.yaml
  mathstorm render quadratic.yaml --caret
  mathstorm render macro.lua --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			switch {
			case caret && plain:
				return fmt.Errorf("--caret and --plain are mutually exclusive")
			case caret:
				cfg.Render.Format = config.FormatCaret
			case plain:
				cfg.Render.Format = config.FormatPlain
			}

			path := args[0]
			if !watch {
				return renderFile(cmd.Context(), cmd, cfg, path, cmd.OutOrStdout())
			}
			return watchFile(cmd, cfg, path)
		},
	}

	cmd.Flags().BoolVar(&caret, "caret", false, "Include the caret and frame in the final expression")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the final expression without the caret")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render whenever the script changes")
	return cmd
}

// runFile runs a YAML script or Lua macro against e, chosen by extension.
// Lua print output goes to luaOut.
func runFile(ctx context.Context, e *engine.Engine, path string, luaOut io.Writer) (*script.Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		return script.RunLuaFile(ctx, e, path, script.WithOutput(luaOut))
	}
	s, err := script.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Run(e)
}

// renderFile runs path in a fresh engine and writes the markup to out.
func renderFile(ctx context.Context, cmd *cobra.Command, cfg *config.Config, path string, out io.Writer) error {
	e := newEngine(cmd, cfg)
	sink := renderer.NewWriterSink(out)

	res, err := runFile(ctx, e, path, cmd.ErrOrStderr())
	if res != nil {
		for _, entry := range res.Commits {
			sink.Render(entry.Markup)
		}
	}
	if err != nil {
		return err
	}

	if !e.IsEmpty() {
		if cfg.Caret() {
			sink.Render(e.CaretMarkup())
		} else {
			sink.Render(e.Markup())
		}
	}
	return sink.Err()
}

// watchFile renders path now and again after every change until interrupted.
func watchFile(cmd *cobra.Command, cfg *config.Config, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	render := func() {
		if err := renderFile(ctx, cmd, cfg, path, out); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}

	w := watcher.New(
		watcher.WithDebounce(time.Duration(cfg.Render.DebounceMS)*time.Millisecond),
		watcher.WithErrorHandler(func(err error) {
			fmt.Fprintf(errOut, "watch: %v\n", err)
		}),
	)
	w.OnChange(func(event watcher.Event) {
		if event.Op == watcher.OpRemove || event.Op == watcher.OpRename {
			fmt.Fprintf(errOut, "%s: %s\n", path, event.Op)
			return
		}
		fmt.Fprintln(out)
		render()
	})
	if err := w.Watch(path); err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	render()
	<-ctx.Done()
	return nil
}
