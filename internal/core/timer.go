package core

import "time"

// DefaultTPS is used when a non-positive tick rate is requested.
const DefaultTPS = 10

// Interval converts a ticks-per-second rate into the delay between ticks,
// truncated to whole milliseconds. Rates above 1000 are paced at 1ms.
func Interval(tps int) time.Duration {
	if tps <= 0 {
		tps = DefaultTPS
	}
	ms := 1000 / tps
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// FixedStep paces simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	tps    int
	ticker *time.Ticker
}

// NewFixedStep constructs a stopped FixedStep targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. A running ticker picks up the new interval
// immediately.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = DefaultTPS
	}
	f.tps = tps
	if f.ticker != nil {
		f.ticker.Reset(f.Interval())
	}
}

// TPS returns the current tick rate.
func (f *FixedStep) TPS() int { return f.tps }

// Interval returns the delay between two ticks at the current rate.
func (f *FixedStep) Interval() time.Duration { return Interval(f.tps) }

// Start begins ticking and returns the tick channel. Calling Start on a
// running FixedStep returns the existing channel.
func (f *FixedStep) Start() <-chan time.Time {
	if f.ticker == nil {
		f.ticker = time.NewTicker(f.Interval())
	}
	return f.ticker.C
}

// Stop halts the ticker. It is safe to call on a stopped FixedStep.
func (f *FixedStep) Stop() {
	if f.ticker != nil {
		f.ticker.Stop()
		f.ticker = nil
	}
}
