package timer

import "errors"

// ErrInvalidTransition is returned for commands that are not valid in
// the current state. The state is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// StopReason says why a countdown ended.
type StopReason int

const (
	ReasonCompleted StopReason = iota
	ReasonInterrupted
)

func (r StopReason) String() string {
	if r == ReasonCompleted {
		return "completed"
	}
	return "interrupted"
}

// Clock is a second-granularity countdown. It has no goroutine of its
// own: the engine's tick loop drives it, which is what makes pausing
// drift-free — a paused clock simply stops being ticked.
type Clock struct {
	total   int
	elapsed int
	running bool
	paused  bool
}

// Start arms the clock for a countdown of the given number of seconds.
func (c *Clock) Start(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.total = seconds
	c.elapsed = 0
	c.running = true
	c.paused = false
}

// Pause freezes the remaining time. Pausing a clock that is not running
// is rejected, not fatal.
func (c *Clock) Pause() error {
	if !c.running || c.paused {
		return ErrInvalidTransition
	}
	c.paused = true
	return nil
}

// Resume continues from the frozen value.
func (c *Clock) Resume() error {
	if !c.running || !c.paused {
		return ErrInvalidTransition
	}
	c.paused = false
	return nil
}

// Stop discards the countdown.
func (c *Clock) Stop() {
	c.running = false
	c.paused = false
	c.total = 0
	c.elapsed = 0
}

// Tick advances the countdown by one second and returns the remaining
// time. Ticking a stopped or paused clock is a no-op.
func (c *Clock) Tick() int {
	if !c.running || c.paused {
		return c.Remaining()
	}
	if c.elapsed < c.total {
		c.elapsed++
	}
	return c.Remaining()
}

// Remaining never goes negative: it clamps to 0 on expiry.
func (c *Clock) Remaining() int {
	left := c.total - c.elapsed
	if left < 0 {
		return 0
	}
	return left
}

func (c *Clock) Elapsed() int { return c.elapsed }
func (c *Clock) Running() bool { return c.running }
func (c *Clock) Paused() bool  { return c.paused }
