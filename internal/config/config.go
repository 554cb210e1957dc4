package config

import (
	"fmt"
	"strings"

	"github.com/dshills/mathstorm/internal/engine/cursor"
	"github.com/dshills/mathstorm/internal/engine/tree"
	"github.com/dshills/mathstorm/internal/logging"
)

// Render formats.
const (
	FormatCaret = "caret"
	FormatPlain = "plain"
)

// FrameNone disables the frame around the cursor's block.
const FrameNone = "none"

// Config is the complete mathstorm configuration.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Render RenderConfig `toml:"render" yaml:"render"`
}

// EditorConfig holds editing engine settings.
type EditorConfig struct {
	// CaretGlyph is the markup spliced in at the cursor.
	CaretGlyph string `toml:"caret_glyph" yaml:"caret_glyph"`

	// FrameFormat is a one-slot template wrapped around the cursor's block.
	// "none" or an empty string disables it.
	FrameFormat string `toml:"frame_format" yaml:"frame_format"`

	// MaxHistory bounds the number of committed expressions kept.
	MaxHistory int `toml:"max_history" yaml:"max_history"`

	// Colors overrides the placeholder color cycle.
	Colors []string `toml:"colors" yaml:"colors"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File is the log file path. Empty logs to stderr.
	File string `toml:"file" yaml:"file"`
}

// RenderConfig holds settings for the render command.
type RenderConfig struct {
	// Format is "caret" (with caret and frame) or "plain".
	Format string `toml:"format" yaml:"format"`

	// DebounceMS is the watch debounce in milliseconds.
	DebounceMS int `toml:"debounce_ms" yaml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			CaretGlyph:  cursor.DefaultCaretGlyph,
			FrameFormat: cursor.DefaultFrameFormat,
			MaxHistory:  100,
		},
		Log: LogConfig{
			Level: "info",
		},
		Render: RenderConfig{
			Format:     FormatCaret,
			DebounceMS: 100,
		},
	}
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Editor.CaretGlyph == "" {
		return &ValidationError{Setting: "editor.caret_glyph", Message: "must not be empty"}
	}
	if f := c.Editor.FrameFormat; f != "" && f != FrameNone {
		if !strings.Contains(f, "#1") {
			return &ValidationError{Setting: "editor.frame_format", Message: fmt.Sprintf("%q has no #1 slot", f)}
		}
		tmpl := &tree.Template{Name: "frame", Arity: 1, Format: f}
		if err := tmpl.Validate(); err != nil {
			return &ValidationError{Setting: "editor.frame_format", Message: err.Error()}
		}
	}
	if c.Editor.MaxHistory < 0 {
		return &ValidationError{Setting: "editor.max_history", Message: "must not be negative"}
	}
	for i, color := range c.Editor.Colors {
		if strings.TrimSpace(color) == "" {
			return &ValidationError{Setting: "editor.colors", Message: fmt.Sprintf("entry %d is empty", i)}
		}
	}
	if _, err := logging.LookupLevel(c.Log.Level); err != nil {
		return &ValidationError{Setting: "log.level", Message: err.Error()}
	}
	switch c.Render.Format {
	case FormatCaret, FormatPlain:
	default:
		return &ValidationError{Setting: "render.format", Message: fmt.Sprintf("unknown format %q", c.Render.Format)}
	}
	if c.Render.DebounceMS < 0 {
		return &ValidationError{Setting: "render.debounce_ms", Message: "must not be negative"}
	}
	return nil
}

// CaretStyle returns the caret decoration for the engine.
func (c *Config) CaretStyle() cursor.CaretStyle {
	style := cursor.CaretStyle{Glyph: c.Editor.CaretGlyph, Frame: c.Editor.FrameFormat}
	if style.Frame == FrameNone {
		style.Frame = ""
	}
	return style
}

// ColorFunc returns the placeholder color scheme.
func (c *Config) ColorFunc() tree.ColorFunc {
	colors := make([]tree.Color, len(c.Editor.Colors))
	for i, name := range c.Editor.Colors {
		colors[i] = tree.Color(strings.TrimSpace(name))
	}
	return tree.Cycle(colors...)
}

// LogLevel returns the configured log level, or info if it is unknown.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// Caret reports whether rendered output includes the caret.
func (c *Config) Caret() bool {
	return c.Render.Format != FormatPlain
}
