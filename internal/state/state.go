// Package state holds the simulation model: the current grid, its derived
// counters and the run settings, and notifies observers after every change.
//
// State is not safe for concurrent use. Hosts drive every transition from a
// single goroutine, including the tick source.
package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/JacopoBartoli/game-of-life/internal/core"
	"github.com/JacopoBartoli/game-of-life/internal/life"
)

// CustomPattern is the base pattern name of grids edited by hand or reset
// after a failed load.
const CustomPattern = "Custom"

// ErrInvalidSpeed is returned for non-positive speeds.
var ErrInvalidSpeed = errors.New("speed must be positive")

// Stepper computes the next generation of a grid. It must not modify its
// input and must return a grid that nothing else references.
type Stepper interface {
	Advance(*core.Grid) *core.Grid
}

// Placer builds the initial grid for a named base pattern.
type Placer interface {
	Load(name string, size core.Size) (*core.Grid, error)
}

// Config holds the initial settings of a State.
type Config struct {
	Size        core.Size
	Speed       int
	BasePattern string
	Stepper     Stepper
}

// State is the simulation model shared with observers.
type State struct {
	Subject

	grid    *core.Grid
	stepper Stepper

	running     bool
	speed       int
	showAge     bool
	aliveCount  int
	steps       int
	basePattern string
}

// New returns a State holding a dead grid of cfg.Size.
func New(cfg Config) (*State, error) {
	if !cfg.Size.Valid() {
		return nil, fmt.Errorf("grid size %s must be positive", cfg.Size)
	}
	if cfg.Speed <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSpeed, cfg.Speed)
	}
	if cfg.Stepper == nil {
		cfg.Stepper = life.Engine{}
	}
	if cfg.BasePattern == "" {
		cfg.BasePattern = CustomPattern
	}
	return &State{
		grid:        core.NewGridOf(cfg.Size),
		stepper:     cfg.Stepper,
		speed:       cfg.Speed,
		basePattern: cfg.BasePattern,
	}, nil
}

// Grid returns a copy of the current grid.
func (s *State) Grid() *core.Grid { return s.grid.Clone() }

// Size returns the grid dimensions.
func (s *State) Size() core.Size { return s.grid.Size() }

// Age returns the age of a single cell.
func (s *State) Age(row, col int) (uint8, error) { return s.grid.At(row, col) }

// Running reports whether automatic stepping is active.
func (s *State) Running() bool { return s.running }

// Speed returns the tick rate in ticks per second.
func (s *State) Speed() int { return s.speed }

// Interval returns the delay between ticks at the current speed.
func (s *State) Interval() time.Duration { return core.Interval(s.speed) }

// ShowAge reports whether renderers should colour cells by age.
func (s *State) ShowAge() bool { return s.showAge }

// AliveCount returns the number of alive cells.
func (s *State) AliveCount() int { return s.aliveCount }

// ElapsedSteps returns the number of generations computed since the last
// clear.
func (s *State) ElapsedSteps() int { return s.steps }

// BasePatternName returns the pattern the grid was last initialised from.
func (s *State) BasePatternName() string { return s.basePattern }

// InstallGrid replaces the grid with a copy of g.
func (s *State) InstallGrid(g *core.Grid) error {
	if g.Size() != s.grid.Size() {
		return fmt.Errorf("grid size %s does not match %s", g.Size(), s.grid.Size())
	}
	s.swap(g.Clone())
	s.Notify()
	return nil
}

// InstallPattern replaces the grid with a copy of g and records name as the
// base pattern, notifying observers once.
func (s *State) InstallPattern(name string, g *core.Grid) error {
	if g.Size() != s.grid.Size() {
		return fmt.Errorf("pattern %q size %s does not match %s", name, g.Size(), s.grid.Size())
	}
	s.basePattern = name
	s.swap(g.Clone())
	s.Notify()
	return nil
}

// Step advances the grid by one generation.
func (s *State) Step() {
	s.swap(s.stepper.Advance(s.grid))
	s.steps++
	s.Notify()
}

// ToggleCell flips the cell at (row, col) between dead and age 1.
func (s *State) ToggleCell(row, col int) error {
	age, err := s.grid.At(row, col)
	if err != nil {
		return err
	}
	flipped := uint8(0)
	if age == 0 {
		flipped = 1
	}
	next := s.grid.Clone()
	if err := next.SetAge(row, col, flipped); err != nil {
		return err
	}
	s.swap(next)
	s.Notify()
	return nil
}

// Clear restores the layout of the base pattern and resets the step
// counter. The custom pattern clears to a dead grid. When the base pattern
// cannot be placed the state is left untouched and the error is returned.
func (s *State) Clear(p Placer) error {
	g, err := s.baseGrid(p)
	if err != nil {
		return err
	}
	s.swap(g)
	s.steps = 0
	s.Notify()
	return nil
}

func (s *State) baseGrid(p Placer) (*core.Grid, error) {
	if s.basePattern == CustomPattern || p == nil {
		return core.NewGridOf(s.grid.Size()), nil
	}
	g, err := p.Load(s.basePattern, s.grid.Size())
	if err != nil {
		return nil, err
	}
	if g.Size() != s.grid.Size() {
		return nil, fmt.Errorf("pattern %q placed as %s, want %s", s.basePattern, g.Size(), s.grid.Size())
	}
	return g, nil
}

// SetRunning toggles automatic stepping.
func (s *State) SetRunning(v bool) {
	s.running = v
	s.Notify()
}

// SetSpeed changes the tick rate.
func (s *State) SetSpeed(tps int) error {
	if tps <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, tps)
	}
	s.speed = tps
	s.Notify()
	return nil
}

// SetShowAge changes the display hint passed on to renderers.
func (s *State) SetShowAge(v bool) {
	s.showAge = v
	s.Notify()
}

// SetBasePatternName records the pattern the grid comes from.
func (s *State) SetBasePatternName(name string) {
	s.basePattern = name
	s.Notify()
}

// Notify calls every subscribed handler with the current state.
func (s *State) Notify() { s.Subject.notify(s) }

// swap installs g, which must not be shared, and refreshes derived counters
// before any observer runs.
func (s *State) swap(g *core.Grid) {
	s.grid = g
	s.aliveCount = g.AliveCount()
}
