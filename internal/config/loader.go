package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MATHSTORM_"

// Format identifies a config file encoding.
type Format string

// Supported file formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load resolves the configuration from defaults, the file at path and the
// environment, then validates it. An empty path or a missing file skips the
// file layer.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeFile decodes the file at path over c. Settings absent from the file
// keep their current values. A missing file is not an error.
func (c *Config) MergeFile(path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, not an error
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return c.Merge(path, format, data)
}

// Merge decodes data in the given format over c. Source names the data in
// parse errors.
func (c *Config) Merge(source string, format Format, data []byte) error {
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, c); err != nil {
			return tomlParseError(source, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return yamlParseError(source, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return nil
}

func tomlParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func yamlParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}

// envSetting applies one environment override.
type envSetting func(c *Config, value string) error

// envSettings maps variable names (without EnvPrefix) to their setters.
var envSettings = map[string]envSetting{
	"LOG_LEVEL": func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	},
	"LOG_FILE": func(c *Config, v string) error {
		c.Log.File = v
		return nil
	},
	"EDITOR_CARET_GLYPH": func(c *Config, v string) error {
		c.Editor.CaretGlyph = v
		return nil
	},
	"EDITOR_FRAME_FORMAT": func(c *Config, v string) error {
		c.Editor.FrameFormat = v
		return nil
	},
	"EDITOR_MAX_HISTORY": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Editor.MaxHistory = n
		return nil
	},
	"EDITOR_COLORS": func(c *Config, v string) error {
		c.Editor.Colors = splitList(v)
		return nil
	},
	"RENDER_FORMAT": func(c *Config, v string) error {
		c.Render.Format = strings.ToLower(v)
		return nil
	},
	"RENDER_DEBOUNCE_MS": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Render.DebounceMS = n
		return nil
	},
}

// EnvNames returns the supported environment variable names.
func EnvNames() []string {
	names := make([]string, 0, len(envSettings))
	for name := range envSettings {
		names = append(names, EnvPrefix+name)
	}
	return names
}

// ApplyEnv applies MATHSTORM_* overrides found through lookup.
// Note: Empty string values are treated as valid values, not as unset.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for name, set := range envSettings {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
