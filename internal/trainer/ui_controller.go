package trainer

import (
	"log"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

// UIController handles UI events and coordinates with the UIModel
type UIController struct {
	model          *UIModel
	workoutManager *WorkoutManager
	timer          *resttimer.Controller
	adjustStep     int
	logger         *log.Logger
}

// NewUIController creates a new UIController with the given dependencies.
// adjustStepSeconds is the amount added or removed by AdjustRest.
func NewUIController(model *UIModel, workoutManager *WorkoutManager, timer *resttimer.Controller, adjustStepSeconds int, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if workoutManager == nil {
		panic("UIController: workoutManager cannot be nil")
	}
	if timer == nil {
		panic("UIController: timer cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}
	if adjustStepSeconds <= 0 {
		adjustStepSeconds = 15
	}

	return &UIController{
		model:          model,
		workoutManager: workoutManager,
		timer:          timer,
		adjustStep:     adjustStepSeconds,
		logger:         logger,
	}
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	info, ok := GetUIModeInfo(mode)
	if !ok {
		c.logger.Printf("Unknown mode %d", mode)
		return
	}
	if mode == UIModeWorkout && c.model.GetWorkoutState().Status == WorkoutStatusNone {
		c.logger.Printf("Select a day first (press Enter on a day in Home)")
		return
	}
	c.logger.Printf("Switching to %s mode", info.DisplayName)
	c.model.SetMode(mode)
}

// --- Home Methods ---

func (c *UIController) PreviousWeek() {
	if err := c.workoutManager.StepWeek(-1); err != nil {
		c.logger.Printf("Already at the first week")
	}
}

func (c *UIController) NextWeek() {
	if err := c.workoutManager.StepWeek(1); err != nil {
		c.logger.Printf("Already at the last week")
	}
}

// OnDaySelected opens the day at index of the current week in Workout mode
func (c *UIController) OnDaySelected(index int) {
	days := c.model.GetWeekState().Days
	if index < 0 || index >= len(days) {
		c.logger.Printf("Invalid day index: %d", index)
		return
	}
	if err := c.workoutManager.SelectDay(days[index].Name); err != nil {
		c.logger.Printf("Select day failed: %v", err)
		return
	}
	c.model.SetMode(UIModeWorkout)
}

// --- Workout Methods ---

// OnSetSelected toggles the completion of a set and starts its rest
func (c *UIController) OnSetSelected(ref SetRef) {
	if err := c.workoutManager.ToggleSet(ref); err != nil {
		c.logger.Printf("Set update failed: %v", err)
	}
}

// CompleteNextSet marks the next set of the day as done
func (c *UIController) CompleteNextSet() {
	if err := c.workoutManager.CompleteNext(); err != nil {
		c.logger.Printf("Set update failed: %v", err)
	}
}

// ResetDay clears the completed sets of the selected day
func (c *UIController) ResetDay() {
	if err := c.workoutManager.ResetDay(); err != nil {
		c.logger.Printf("Reset failed: %v", err)
		return
	}
	c.logger.Printf("Day reset")
}

// --- Rest Timer Methods ---

// ToggleRest pauses a running rest or resumes a paused one
func (c *UIController) ToggleRest() {
	switch c.timer.Snapshot().Status {
	case resttimer.StatusRunning:
		c.timer.Pause()
	case resttimer.StatusPaused:
		c.timer.Resume()
	default:
		c.logger.Printf("No rest running - complete a set to start one")
	}
}

// AdjustRest adds (direction > 0) or removes one adjust step from the rest
func (c *UIController) AdjustRest(direction int) {
	delta := c.adjustStep
	if direction < 0 {
		delta = -delta
	}
	c.timer.Adjust(delta)
}

func (c *UIController) SkipRest() {
	c.timer.Skip()
}

func (c *UIController) StopRest() {
	c.timer.Stop()
}

// Shutdown stops the workout manager and its rest timer
func (c *UIController) Shutdown() {
	c.workoutManager.Shutdown()
}
