// Package config loads optional processing defaults from a TOML file.
// Command-line flags override anything set here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	FPS             int               `toml:"fps"`
	MaxWordsPerLine int               `toml:"max_words_per_line"`
	WordsPerSecond  float64           `toml:"words_per_second"`
	MinDuration     float64           `toml:"min_duration"`
	Offset          float64           `toml:"offset"`
	Replacements    map[string]string `toml:"replacements"`
}

// Default returns the built-in processing defaults.
func Default() *Config {
	return &Config{
		FPS:             24,
		MaxWordsPerLine: 10,
		WordsPerSecond:  2.5,
		MinDuration:     0.5,
		Offset:          0,
		Replacements:    map[string]string{},
	}
}

// Load reads a config file and overlays it on the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Replacements == nil {
		cfg.Replacements = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.MaxWordsPerLine <= 0 {
		return fmt.Errorf("max_words_per_line must be positive, got %d", c.MaxWordsPerLine)
	}
	if c.WordsPerSecond <= 0 {
		return fmt.Errorf("words_per_second must be positive, got %g", c.WordsPerSecond)
	}
	if c.MinDuration < 0 {
		return fmt.Errorf("min_duration must not be negative, got %g", c.MinDuration)
	}
	for oldName, newName := range c.Replacements {
		if oldName == "" || newName == "" {
			return fmt.Errorf("replacements must not contain empty names (%q -> %q)", oldName, newName)
		}
	}
	return nil
}
