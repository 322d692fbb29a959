// Package config loads lispfmt.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"lispfmt/internal/format"
)

// FileName is the name of the configuration file looked up from the working
// directory towards the filesystem root.
const FileName = "lispfmt.toml"

// DefaultExtensions are collected when a directory is formatted.
var DefaultExtensions = []string{".fnl"}

// ErrInvalidWidth is returned for a width below 1.
var ErrInvalidWidth = errors.New("width must be at least 1")

// Config is the decoded configuration. Path is empty when defaults are used.
type Config struct {
	Path       string
	Width      int
	Extensions []string
}

type fileConfig struct {
	Width      int      `toml:"width"`
	Extensions []string `toml:"extensions"`
}

// Default returns the configuration used without a config file.
func Default() Config {
	return Config{
		Width:      format.DefaultWidth,
		Extensions: append([]string(nil), DefaultExtensions...),
	}
}

// Find walks up from startDir to locate lispfmt.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the config file at path. Keys that are absent keep their
// default values; unknown keys are an error.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg := Default()
	cfg.Path = path
	if meta.IsDefined("width") {
		if raw.Width < 1 {
			return Config{}, fmt.Errorf("%s: %w (got %d)", path, ErrInvalidWidth, raw.Width)
		}
		cfg.Width = raw.Width
	}
	if meta.IsDefined("extensions") {
		exts := make([]string, 0, len(raw.Extensions))
		for _, ext := range raw.Extensions {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			exts = append(exts, ext)
		}
		if len(exts) == 0 {
			return Config{}, fmt.Errorf("%s: extensions must not be empty", path)
		}
		cfg.Extensions = exts
	}
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest lispfmt.toml above
// startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// EffectiveWidth applies the precedence flag > config > default. A flag
// value of zero means "not set".
func (c Config) EffectiveWidth(flag int) (int, error) {
	switch {
	case flag < 0:
		return 0, fmt.Errorf("--width: %w (got %d)", ErrInvalidWidth, flag)
	case flag > 0:
		return flag, nil
	case c.Width > 0:
		return c.Width, nil
	default:
		return format.DefaultWidth, nil
	}
}

// HasExtension reports whether path ends with one of the configured extensions.
func (c Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
