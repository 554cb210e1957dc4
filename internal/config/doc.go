// Package config provides the configuration system for mathstorm.
//
// Configuration is resolved in three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← MATHSTORM_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← mathstorm.toml / mathstorm.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load("mathstorm.toml")
//	if err != nil {
//	    return err
//	}
//	e := engine.New(
//	    engine.WithCaretStyle(cfg.CaretStyle()),
//	    engine.WithColors(cfg.ColorFunc()),
//	)
//
// # File Formats
//
// The format is chosen by extension: .toml is decoded with go-toml, .yaml
// and .yml with yaml.v3. A missing file is not an error; the defaults are
// used instead.
//
// # Live Reload
//
// Watch reloads the file whenever it changes and hands each valid
// configuration to a callback:
//
//	stop, err := config.Watch(ctx, path, func(cfg *config.Config) {
//	    logger.SetLevel(cfg.LogLevel())
//	}, nil)
//	defer stop()
package config
