// Package config reads racoon.toml, the optional per-project settings of the
// compiler driver.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const FileName = "racoon.toml"

// Emit kinds accepted by [build].emit.
const (
	EmitIR  = "ir"
	EmitAST = "ast"
)

type Config struct {
	Build BuildConfig `toml:"build"`
	Log   LogConfig   `toml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

type BuildConfig struct {
	OutDir string `toml:"out_dir"`
	Emit   string `toml:"emit"`
	Jobs   int    `toml:"jobs"`
}

type LogConfig struct {
	Verbosity int `toml:"verbosity"`
}

func Default() Config {
	return Config{
		Build: BuildConfig{OutDir: ".", Emit: EmitIR},
	}
}

// Find looks for racoon.toml in startDir and its parents.
func Find(startDir string) (string, bool, error) {
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

// Load reads path over the defaults. Keys left out keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the nearest racoon.toml above startDir, or the defaults
// when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	c.Build.Emit = strings.TrimSpace(c.Build.Emit)
	switch c.Build.Emit {
	case EmitIR, EmitAST:
	default:
		return fmt.Errorf("[build].emit must be %q or %q, found %q", EmitIR, EmitAST, c.Build.Emit)
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("[build].jobs must not be negative, found %d", c.Build.Jobs)
	}
	if strings.TrimSpace(c.Build.OutDir) == "" {
		c.Build.OutDir = "."
	}
	return nil
}
