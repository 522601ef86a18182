// Package app drives a simulation State the way an interactive front end
// would: selecting and loading patterns, editing cells, stepping and running
// the simulation at the configured speed.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/JacopoBartoli/game-of-life/internal/core"
	"github.com/JacopoBartoli/game-of-life/internal/pattern"
	"github.com/JacopoBartoli/game-of-life/internal/state"
)

// Controller applies user actions to a State.
type Controller struct {
	state   *state.State
	catalog pattern.Catalog
	log     *log.Logger
}

// NewController returns a Controller for st. Status messages go to logger;
// a nil logger discards them.
func NewController(st *state.State, catalog pattern.Catalog, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{state: st, catalog: catalog, log: logger}
}

// State returns the controlled state.
func (c *Controller) State() *state.State { return c.state }

// Catalog returns the pattern catalog used for base patterns.
func (c *Controller) Catalog() pattern.Catalog { return c.catalog }

// SelectPattern makes name the base pattern and installs its layout. The
// custom pattern installs a dead grid. If the pattern cannot be loaded the
// selection falls back to the custom pattern and the error is returned.
func (c *Controller) SelectPattern(name string) error {
	if name == "" || name == state.CustomPattern {
		return c.resetCustom()
	}
	g, err := c.catalog.Load(name, c.state.Size())
	if err != nil {
		c.log.Printf("load pattern %q: %v", name, err)
		if ferr := c.resetCustom(); ferr != nil {
			return errors.Join(err, ferr)
		}
		return err
	}
	return c.state.InstallPattern(name, g)
}

// LoadFile centres the pattern stored at path on the grid and marks the
// result as custom. An unreadable file leaves the state untouched; a pattern
// too large for the grid resets it to the custom pattern.
func (c *Controller) LoadFile(path string) error {
	g, err := pattern.Load(path, c.state.Size())
	switch {
	case errors.Is(err, pattern.ErrPatternTooLarge):
		c.log.Printf("the loaded pattern is bigger than the available grid: %v", err)
		if ferr := c.resetCustom(); ferr != nil {
			return errors.Join(err, ferr)
		}
		return err
	case err != nil:
		c.log.Printf("invalid file: %v", err)
		return err
	}
	if err := c.state.InstallPattern(state.CustomPattern, g); err != nil {
		return err
	}
	c.log.Printf("pattern loaded from %s", path)
	return nil
}

// Save writes the current grid to path as a pattern file and returns the
// path written.
func (c *Controller) Save(path string) (string, error) {
	written, err := pattern.SaveFile(path, c.state.Grid())
	if err != nil {
		return "", fmt.Errorf("save pattern: %w", err)
	}
	c.log.Printf("pattern saved to %s", written)
	return written, nil
}

// Clear restores the base pattern layout and resets the step counter.
func (c *Controller) Clear() error {
	if err := c.state.Clear(c.catalog); err != nil {
		c.log.Printf("clear: %v", err)
		if ferr := c.resetCustom(); ferr != nil {
			return errors.Join(err, ferr)
		}
		return err
	}
	c.log.Printf("grid cleared")
	return nil
}

// Step advances the simulation by one generation.
func (c *Controller) Step() { c.state.Step() }

// ToggleCell flips a single cell.
func (c *Controller) ToggleCell(row, col int) error { return c.state.ToggleCell(row, col) }

// StartStop flips the running flag and returns the new value.
func (c *Controller) StartStop() bool {
	c.state.SetRunning(!c.state.Running())
	return c.state.Running()
}

// SetSpeed changes the tick rate.
func (c *Controller) SetSpeed(tps int) error { return c.state.SetSpeed(tps) }

// SetShowAge changes the age display hint.
func (c *Controller) SetShowAge(v bool) { c.state.SetShowAge(v) }

func (c *Controller) resetCustom() error {
	return c.state.InstallPattern(state.CustomPattern, core.NewGridOf(c.state.Size()))
}
