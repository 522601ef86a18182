// Package config loads the simulation settings from a YAML file and the
// command line.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/JacopoBartoli/game-of-life/internal/core"
	"github.com/JacopoBartoli/game-of-life/internal/state"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a setting is missing or out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings consumed by the simulation.
type Config struct {
	Rows        int
	Cols        int
	Speed       int
	BasePattern string
	PatternDir  string
	Workers     int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Rows:        100,
		Cols:        100,
		Speed:       10,
		BasePattern: state.CustomPattern,
		PatternDir:  filepath.Join("resources", "patterns"),
		Workers:     runtime.NumCPU(),
	}
}

// Size returns the configured grid dimensions.
func (c Config) Size() core.Size { return core.Size{Rows: c.Rows, Cols: c.Cols} }

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("%w: grid size %dx%d must be positive", ErrInvalidConfig, c.Rows, c.Cols)
	case c.Speed <= 0:
		return fmt.Errorf("%w: speed %d must be positive", ErrInvalidConfig, c.Speed)
	case c.BasePattern == "":
		return fmt.Errorf("%w: base pattern is empty", ErrInvalidConfig)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns")
	fs.IntVar(&c.Speed, "speed", c.Speed, "generations per second")
	fs.StringVar(&c.BasePattern, "pattern", c.BasePattern, "base pattern name")
	fs.StringVar(&c.PatternDir, "patterns", c.PatternDir, "pattern directory")
	fs.IntVar(&c.Workers, "workers", c.Workers, "row bands evaluated concurrently")
}

// Override returns c with every flag explicitly set on fs taken from flags.
// flags must be the Config bound to fs.
func (c Config) Override(flags Config, fs *flag.FlagSet) Config {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rows":
			c.Rows = flags.Rows
		case "cols":
			c.Cols = flags.Cols
		case "speed":
			c.Speed = flags.Speed
		case "pattern":
			c.BasePattern = flags.BasePattern
		case "patterns":
			c.PatternDir = flags.PatternDir
		case "workers":
			c.Workers = flags.Workers
		}
	})
	return c
}

// file mirrors the layout of config.yml.
type file struct {
	Game struct {
		GridSize *struct {
			Rows int `yaml:"rows"`
			Cols int `yaml:"cols"`
		} `yaml:"grid_size"`
		Speed   *int `yaml:"speed"`
		Workers *int `yaml:"workers"`
	} `yaml:"game_config"`
	Pattern struct {
		Base *string `yaml:"base"`
	} `yaml:"pattern_config"`
	Paths struct {
		Resources struct {
			Path     string `yaml:"path"`
			Patterns struct {
				Path string `yaml:"path"`
			} `yaml:"patterns"`
		} `yaml:"resources"`
	} `yaml:"filepaths"`
}

// Load reads the YAML file at path on top of DefaultConfig. Relative
// pattern paths are resolved against the directory holding the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Decode(bytes.NewReader(data), filepath.Dir(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a YAML configuration on top of DefaultConfig. Unknown keys are
// rejected. Relative pattern paths are resolved against baseDir.
func Decode(r io.Reader, baseDir string) (Config, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c := DefaultConfig()
	if gs := f.Game.GridSize; gs != nil {
		c.Rows, c.Cols = gs.Rows, gs.Cols
	}
	if f.Game.Speed != nil {
		c.Speed = *f.Game.Speed
	}
	if f.Game.Workers != nil {
		c.Workers = *f.Game.Workers
	}
	if f.Pattern.Base != nil {
		c.BasePattern = *f.Pattern.Base
	}
	if res := f.Paths.Resources; res.Path != "" || res.Patterns.Path != "" {
		dir := filepath.Join(res.Path, res.Patterns.Path)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		c.PatternDir = dir
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
