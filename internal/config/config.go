// Package config loads the optional ward.toml tool configuration
// discovered upward from the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest the CLI looks for.
const FileName = "ward.toml"

// File is the decoded ward.toml.
type File struct {
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`
}

// CheckConfig tunes the engine; zero values fall back to library
// defaults.
type CheckConfig struct {
	SampleBudget    int    `toml:"sample-budget"`
	MaxExplainDepth int    `toml:"max-explain-depth"`
	Seed            uint64 `toml:"seed"`
}

// OutputConfig tunes CLI rendering.
type OutputConfig struct {
	Color string `toml:"color"` // auto|on|off
}

// Find walks from startDir up to the filesystem root looking for a
// ward.toml.
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
			return "", false, nil
		}
		dir = parent
	}
}

// Load decodes a ward.toml, rejecting unknown keys so typos surface
// instead of silently falling back to defaults.
func Load(path string) (File, error) {
	var f File
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if f.Check.SampleBudget < 0 {
		return File{}, fmt.Errorf("%s: sample-budget must be non-negative", path)
	}
	if f.Check.MaxExplainDepth < 0 {
		return File{}, fmt.Errorf("%s: max-explain-depth must be non-negative", path)
	}
	switch f.Output.Color {
	case "", "auto", "on", "off":
	default:
		return File{}, fmt.Errorf("%s: color must be auto, on or off", path)
	}
	return f, nil
}
