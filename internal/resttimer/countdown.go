package resttimer

// Status represents the state of a rest countdown
type Status int

const (
	StatusIdle     Status = iota // Nothing started, or stopped
	StatusRunning                // Counting down
	StatusPaused                 // Frozen, waiting for resume
	StatusFinished               // Reached zero or skipped
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusFinished:
		return "finished"
	default:
		return "idle"
	}
}

// RestCountdown is the rest interval state machine:
//
//	Idle -> Running <-> Paused -> Finished -> Idle
//
// Operations that are not valid in the current state are no-ops and report false.
// It is not safe for concurrent use; the Controller owns it.
type RestCountdown struct {
	initial   int
	remaining int
	elapsed   int // seconds ticked while running
	status    Status
}

// Start (re)initializes the countdown from any state. Negative durations become 0.
func (c *RestCountdown) Start(durationSeconds int) {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	c.initial = durationSeconds
	c.remaining = durationSeconds
	c.elapsed = 0
	c.status = StatusRunning
}

// Tick consumes one second. It returns true when this tick finished the countdown.
func (c *RestCountdown) Tick() bool {
	if c.status != StatusRunning {
		return false
	}
	c.elapsed++
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.status = StatusFinished
		return true
	}
	return false
}

// Pause freezes a running countdown
func (c *RestCountdown) Pause() bool {
	if c.status != StatusRunning {
		return false
	}
	c.status = StatusPaused
	return true
}

// Resume continues a paused countdown
func (c *RestCountdown) Resume() bool {
	if c.status != StatusPaused {
		return false
	}
	c.status = StatusRunning
	return true
}

// Adjust adds deltaSeconds (may be negative) to the remaining time, clamping at 0.
// It never finishes the countdown itself; a running countdown at 0 finishes on the next Tick.
func (c *RestCountdown) Adjust(deltaSeconds int) bool {
	if c.status != StatusRunning && c.status != StatusPaused {
		return false
	}
	c.remaining += deltaSeconds
	if c.remaining < 0 {
		c.remaining = 0
	}
	return true
}

// Skip finishes a running or paused countdown immediately
func (c *RestCountdown) Skip() bool {
	if c.status != StatusRunning && c.status != StatusPaused {
		return false
	}
	c.remaining = 0
	c.status = StatusFinished
	return true
}

// Stop discards all state and returns to Idle
func (c *RestCountdown) Stop() {
	*c = RestCountdown{}
}

func (c *RestCountdown) Status() Status { return c.status }

func (c *RestCountdown) Initial() int { return c.initial }

func (c *RestCountdown) Remaining() int { return c.remaining }

// Elapsed is the number of seconds consumed by ticks since Start
func (c *RestCountdown) Elapsed() int { return c.elapsed }

// RestProgress is remaining/initial clamped to [0,1]; 0 when initial is 0.
// Remaining can exceed initial after a positive Adjust.
func (c *RestCountdown) RestProgress() float64 {
	if c.initial <= 0 {
		return 0
	}
	return clamp01(float64(c.remaining) / float64(c.initial))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
