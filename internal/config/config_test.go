package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JacopoBartoli/game-of-life/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
game_config:
  grid_size:
    rows: 60
    cols: 80
  speed: 15
pattern_config:
  base: glider
filepaths:
  resources:
    path: resources
    patterns:
      path: patterns
`

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(sample), "/srv/gol")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Rows)
	assert.Equal(t, 80, cfg.Cols)
	assert.Equal(t, 15, cfg.Speed)
	assert.Equal(t, "glider", cfg.BasePattern)
	assert.Equal(t, filepath.Join("/srv/gol", "resources", "patterns"), cfg.PatternDir)
	assert.Equal(t, DefaultConfig().Workers, cfg.Workers)
}

func TestDecodeDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""), ".")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, state.CustomPattern, cfg.BasePattern)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"expression grid size": "game_config:\n  grid_size: \"(100, 100)\"\n",
		"zero rows":            "game_config:\n  grid_size: {rows: 0, cols: 10}\n",
		"negative speed":       "game_config:\n  speed: -1\n",
		"unknown key":          "game_config:\n  fps: 10\n",
		"empty base":           "pattern_config:\n  base: \"\"\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(text), ".")
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resources", "patterns"), cfg.PatternDir)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestBindAndOverride(t *testing.T) {
	fileCfg, err := Decode(strings.NewReader(sample), "/srv/gol")
	require.NoError(t, err)

	flags := DefaultConfig()
	fs := flag.NewFlagSet("gol", flag.ContinueOnError)
	flags.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-speed", "30", "-pattern", "block", "-workers", "2"}))

	cfg := fileCfg.Override(flags, fs)
	assert.Equal(t, 30, cfg.Speed)
	assert.Equal(t, "block", cfg.BasePattern)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 60, cfg.Rows)
	assert.Equal(t, 80, cfg.Cols)
	assert.Equal(t, fileCfg.PatternDir, cfg.PatternDir)
}
