package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/mathstorm/internal/config"
	"github.com/dshills/mathstorm/internal/engine"
	"github.com/dshills/mathstorm/internal/logging"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "mathstorm",
		Short: "Structured math expression editor",
		Long: `mathstorm edits math expressions as trees of components and renders
them as LaTeX-like markup.

Examples:
  mathstorm edit                         # interactive editor
  mathstorm render steps.yaml            # replay an edit script
  mathstorm render steps.yaml --watch    # re-render on every save
  mathstorm run macro.lua                # run a Lua macro
  mathstorm palette frac                 # search the symbol palette`,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newEditCmd(opts),
		newRenderCmd(opts),
		newRunCmd(opts),
		newPaletteCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig resolves the configuration and applies the --log-level flag.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newEngine builds an engine configured by cfg that logs to cmd's stderr.
func newEngine(cmd *cobra.Command, cfg *config.Config) *engine.Engine {
	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: cmd.ErrOrStderr(),
		Prefix: logging.DefaultConfig().Prefix,
	})
	return engine.New(
		engine.WithLogger(logger),
		engine.WithCaretStyle(cfg.CaretStyle()),
		engine.WithColors(cfg.ColorFunc()),
		engine.WithMaxHistory(cfg.Editor.MaxHistory),
	)
}
