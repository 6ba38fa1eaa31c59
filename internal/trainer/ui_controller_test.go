package trainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

func newControllerUnderTest(t *testing.T) (*UIController, *managerFixture) {
	t.Helper()
	f := newManagerFixture(t, 1)
	return NewUIController(f.model, f.manager, f.timer, 15, f.logger), f
}

func TestNewUIController_NilDependencies(t *testing.T) {
	f := newManagerFixture(t, 1)
	assert.Panics(t, func() { NewUIController(nil, f.manager, f.timer, 15, f.logger) })
	assert.Panics(t, func() { NewUIController(f.model, nil, f.timer, 15, f.logger) })
	assert.Panics(t, func() { NewUIController(f.model, f.manager, nil, 15, f.logger) })
	assert.Panics(t, func() { NewUIController(f.model, f.manager, f.timer, 15, nil) })
}

func TestUIController_WorkoutModeNeedsADay(t *testing.T) {
	c, f := newControllerUnderTest(t)

	c.OnModeChange(UIModeWorkout)
	assert.Equal(t, UIModeHome, f.model.GetUIState().Mode)

	c.OnDaySelected(0)
	assert.Equal(t, UIModeWorkout, f.model.GetUIState().Mode)
	assert.Equal(t, "Monday", f.model.GetUIState().Day)

	c.OnModeChange(UIModeHome)
	assert.Equal(t, UIModeHome, f.model.GetUIState().Mode)
	c.OnModeChange(UIModeWorkout)
	assert.Equal(t, UIModeWorkout, f.model.GetUIState().Mode)
}

func TestUIController_OnDaySelected_InvalidIndex(t *testing.T) {
	c, f := newControllerUnderTest(t)

	c.OnDaySelected(5)
	c.OnDaySelected(-1)

	assert.Equal(t, WorkoutStatusNone, f.model.GetWorkoutState().Status)
	assert.Equal(t, UIModeHome, f.model.GetUIState().Mode)
}

func TestUIController_WeekNavigation(t *testing.T) {
	c, f := newControllerUnderTest(t)

	c.PreviousWeek()
	assert.Equal(t, 1, f.model.GetWeekState().Number)

	c.NextWeek()
	assert.Equal(t, 2, f.model.GetWeekState().Number)

	c.NextWeek()
	assert.Equal(t, 2, f.model.GetWeekState().Number)
}

func TestUIController_RestControls(t *testing.T) {
	c, f := newControllerUnderTest(t)
	c.OnDaySelected(0)

	// Nothing to pause yet
	c.ToggleRest()
	assert.Equal(t, resttimer.StatusIdle, f.timer.Snapshot().Status)

	c.OnSetSelected(SetRef{Exercise: exSquat, Set: 0})
	require.Equal(t, resttimer.StatusRunning, f.timer.Snapshot().Status)

	c.AdjustRest(1)
	assert.Equal(t, 75, f.timer.Snapshot().RemainingSeconds)
	c.AdjustRest(-1)
	c.AdjustRest(-1)
	assert.Equal(t, 45, f.timer.Snapshot().RemainingSeconds)

	c.ToggleRest()
	assert.Equal(t, resttimer.StatusPaused, f.timer.Snapshot().Status)
	f.clock.Advance(5)
	assert.Equal(t, 45, f.timer.Snapshot().RemainingSeconds)

	c.ToggleRest()
	assert.Equal(t, resttimer.StatusRunning, f.timer.Snapshot().Status)
	f.clock.Advance(5)
	assert.Equal(t, 40, f.timer.Snapshot().RemainingSeconds)

	c.SkipRest()
	assert.Equal(t, resttimer.StatusFinished, f.timer.Snapshot().Status)
	assert.Equal(t, 0, f.clock.Subscriptions())

	c.StopRest()
	assert.Equal(t, resttimer.StatusIdle, f.model.GetTimerSnapshot().Status)
}

func TestUIController_CompleteNextAndReset(t *testing.T) {
	c, f := newControllerUnderTest(t)
	c.OnDaySelected(0)

	c.CompleteNextSet()
	c.CompleteNextSet()
	assert.Equal(t, 2, f.model.GetWorkoutState().CompletedSets)

	c.ResetDay()
	assert.Equal(t, 0, f.model.GetWorkoutState().CompletedSets)
	assert.Equal(t, resttimer.StatusIdle, f.timer.Snapshot().Status)
}

func TestUIController_OnEscapeKey(t *testing.T) {
	c, f := newControllerUnderTest(t)
	ch := make(chan struct{}, 1)
	defer f.model.ListenToCloseApplication(ch)()

	c.OnEscapeKey()

	assert.Len(t, ch, 1)
}
