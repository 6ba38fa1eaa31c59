package resttimer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/events"
)

// Snapshot is the point-in-time state of the rest timer handed to observers.
// It is a plain value; changing it has no effect on the controller.
type Snapshot struct {
	RemainingSeconds int
	InitialSeconds   int
	Status           Status

	RestProgress float64 // remaining/initial, 1 at start and 0 at completion

	TempoPhase         TempoPhase // PhaseNone only while Idle
	TempoPhaseProgress float64

	SessionProgress  float64
	ExerciseProgress float64

	ExerciseName string
	SetIndex     int
	TotalSets    int
	Tempo        TempoDescriptor
}

// Controller drives a RestCountdown from a Clock and publishes a Snapshot on
// every tick and every state change.
//
// Notifications are queued while the lock is held and delivered afterwards,
// one at a time and in the order the changes happened. An observer may call back
// into the controller; the resulting notifications follow the current one.
type Controller struct {
	mu     sync.Mutex
	clock  Clock
	logger *log.Logger

	countdown RestCountdown
	exercise  ExerciseContext
	tempo     TempoDescriptor
	estimate  sessionEstimate

	cancelTick func()
	generation uint64 // identifies the live clock subscription

	pending     []func()
	dispatching bool

	snapshotEvent *events.CallbackEvent[Snapshot]
	completeEvent *events.CallbackEvent[struct{}]
}

func NewController(clock Clock, logger *log.Logger) *Controller {
	if clock == nil {
		panic("Controller: clock cannot be nil")
	}
	if logger == nil {
		panic("Controller: logger cannot be nil")
	}
	return &Controller{
		clock:         clock,
		logger:        logger,
		tempo:         DefaultTempo(),
		snapshotEvent: events.NewCallbackEvent[Snapshot](false),
		completeEvent: events.NewCallbackEvent[struct{}](false),
	}
}

// OnSnapshot registers fn for every snapshot and returns its unsubscribe function
func (c *Controller) OnSnapshot(fn func(Snapshot)) func() {
	return c.snapshotEvent.Listen(fn)
}

// OnComplete registers fn for countdown completion (natural expiry or skip)
func (c *Controller) OnComplete(fn func()) func() {
	if fn == nil {
		panic("Controller: completion callback cannot be nil")
	}
	return c.completeEvent.Listen(func(struct{}) { fn() })
}

// Snapshot returns the current state without waiting for a tick
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Start cancels any previous countdown and begins a new one of durationSeconds
// for the given set. plan may be nil. The only error is a failed clock
// subscription, which leaves the controller Idle.
func (c *Controller) Start(durationSeconds int, exercise ExerciseContext, plan *SessionPlan) error {
	c.mu.Lock()

	c.cancelLocked()

	if durationSeconds < 0 {
		c.logger.Printf("WARN Controller: negative rest duration %d for %q, using 0", durationSeconds, exercise.Name)
		durationSeconds = 0
	}

	c.tempo = DefaultTempo()
	if exercise.Tempo != nil {
		if exercise.Tempo.Valid() {
			c.tempo = *exercise.Tempo
		} else {
			c.logger.Printf("WARN Controller: invalid tempo %s for %q, using %s", exercise.Tempo, exercise.Name, c.tempo)
		}
	}
	// Keep our own copy so the caller cannot change the tempo of a running countdown
	tempo := c.tempo
	exercise.Tempo = &tempo
	c.exercise = exercise

	c.countdown.Start(durationSeconds)
	c.estimate = newSessionEstimate(plan, exercise, durationSeconds, c.logger)

	if err := c.subscribeLocked(); err != nil {
		c.countdown.Stop()
		c.exercise = ExerciseContext{}
		c.enqueueSnapshotLocked()
		c.mu.Unlock()
		c.flush()
		return fmt.Errorf("start rest timer for %q: %w", exercise.Name, err)
	}

	c.logger.Printf("Controller: started %ds rest for %q set %d/%d", durationSeconds, exercise.Name, exercise.SetIndex, exercise.TotalSets)
	c.enqueueSnapshotLocked()
	c.mu.Unlock()
	c.flush()
	return nil
}

// Pause freezes a running countdown
func (c *Controller) Pause() {
	c.mu.Lock()
	if !c.countdown.Pause() {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	c.enqueueSnapshotLocked()
	c.mu.Unlock()
	c.flush()
}

// Resume continues a paused countdown. When the clock cannot be subscribed the
// countdown stays paused.
func (c *Controller) Resume() {
	c.mu.Lock()
	if !c.countdown.Resume() {
		c.mu.Unlock()
		return
	}
	if err := c.subscribeLocked(); err != nil {
		c.logger.Printf("Controller: resume failed, staying paused: %v", err)
		c.countdown.Pause()
		c.mu.Unlock()
		return
	}
	c.enqueueSnapshotLocked()
	c.mu.Unlock()
	c.flush()
}

// Adjust changes the remaining time by deltaSeconds, never below zero.
// A running countdown adjusted to zero finishes on the next tick.
func (c *Controller) Adjust(deltaSeconds int) {
	c.mu.Lock()
	if !c.countdown.Adjust(deltaSeconds) {
		c.mu.Unlock()
		return
	}
	c.enqueueSnapshotLocked()
	c.mu.Unlock()
	c.flush()
}

// Skip finishes a running or paused countdown through the normal completion path
func (c *Controller) Skip() {
	c.mu.Lock()
	if !c.countdown.Skip() {
		c.mu.Unlock()
		return
	}
	c.logger.Printf("Controller: skipped rest for %q", c.exercise.Name)
	c.completeLocked()
	c.mu.Unlock()
	c.flush()
}

// Stop discards the countdown from any state and publishes an Idle snapshot
func (c *Controller) Stop() {
	c.mu.Lock()
	c.cancelLocked()
	c.countdown.Stop()
	c.exercise = ExerciseContext{}
	c.estimate = sessionEstimate{}
	c.enqueueSnapshotLocked()
	c.mu.Unlock()
	c.flush()
}

func (c *Controller) handleTick(generation uint64) {
	c.mu.Lock()
	if generation != c.generation || c.cancelTick == nil {
		// Tick from a subscription that has been replaced or canceled
		c.mu.Unlock()
		return
	}
	if c.countdown.Tick() {
		c.completeLocked()
	} else if c.countdown.Status() == StatusRunning {
		c.enqueueSnapshotLocked()
	}
	c.mu.Unlock()
	c.flush()
}

// completeLocked runs the completion path of a countdown that just became Finished
func (c *Controller) completeLocked() {
	c.cancelLocked()
	c.enqueueSnapshotLocked()
	c.pending = append(c.pending, func() { c.completeEvent.Notify(struct{}{}) })
}

// subscribeLocked replaces the clock subscription. It must only be called after
// the previous one was canceled.
func (c *Controller) subscribeLocked() error {
	c.generation++
	generation := c.generation
	cancel, err := c.clock.Subscribe(func() { c.handleTick(generation) })
	if err != nil {
		if errors.Is(err, ErrClockUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrClockUnavailable, err)
	}
	c.cancelTick = cancel
	return nil
}

func (c *Controller) cancelLocked() {
	if c.cancelTick != nil {
		c.cancelTick()
		c.cancelTick = nil
	}
	c.generation++
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		RemainingSeconds: c.countdown.Remaining(),
		InitialSeconds:   c.countdown.Initial(),
		Status:           c.countdown.Status(),
		RestProgress:     c.countdown.RestProgress(),
		ExerciseName:     c.exercise.Name,
		SetIndex:         c.exercise.SetIndex,
		TotalSets:        c.exercise.TotalSets,
	}
	if s.Status == StatusIdle {
		return s
	}
	s.Tempo = c.tempo
	s.TempoPhase, s.TempoPhaseProgress = PhaseAt(c.tempo, c.countdown.Elapsed())
	s.SessionProgress, s.ExerciseProgress = c.estimate.progress(s.InitialSeconds, s.RemainingSeconds)
	return s
}

func (c *Controller) enqueueSnapshotLocked() {
	snapshot := c.snapshotLocked()
	c.pending = append(c.pending, func() { c.snapshotEvent.Notify(snapshot) })
}

// flush delivers queued notifications unless another call is already doing it.
// A panicking observer releases the dispatcher; its remaining notifications go
// out with the next flush.
func (c *Controller) flush() {
	c.mu.Lock()
	if c.dispatching {
		c.mu.Unlock()
		return
	}
	c.dispatching = true

	drained := false
	defer func() {
		if !drained {
			c.mu.Lock()
			c.dispatching = false
			c.mu.Unlock()
		}
	}()

	for len(c.pending) > 0 {
		notify := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		notify()
		c.mu.Lock()
	}
	c.dispatching = false
	drained = true
	c.mu.Unlock()
}
