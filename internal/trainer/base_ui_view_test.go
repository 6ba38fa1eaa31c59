package trainer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

// fakeView records what BaseUIView asks it to render
type fakeView struct {
	mu       sync.Mutex
	mode     UIMode
	week     WeekState
	workout  WorkoutState
	timer    resttimer.Snapshot
	logLines []string
	draws    int
	stopped  bool
}

func (f *fakeView) Initialize(*UIController)            {}
func (f *fakeView) SetupKeyboardHandlers(*UIController) {}
func (f *fakeView) Run() error                          { return nil }

func (f *fakeView) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeView) Draw() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draws++
	return nil
}

func (f *fakeView) SetMode(mode UIMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = mode
}

func (f *fakeView) GetCurrentMode() UIMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

func (f *fakeView) GetLogViewHeight() int { return 2 }

func (f *fakeView) ClearLogView() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logLines = nil
}

func (f *fakeView) WriteLogLine(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logLines = append(f.logLines, line)
	return nil
}

func (f *fakeView) UpdateWeek(state WeekState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.week = state
}

func (f *fakeView) UpdateWorkout(state WorkoutState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workout = state
}

func (f *fakeView) UpdateTimer(snapshot resttimer.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timer = snapshot
}

func (f *fakeView) read(fn func(*fakeView) bool) func() bool {
	return func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return fn(f)
	}
}

func newBaseViewFixture(t *testing.T) (*BaseUIView, *fakeView, *managerFixture) {
	t.Helper()
	c, f := newControllerUnderTest(t)
	impl := &fakeView{}
	base := NewBaseUIView(NewBaseUIViewArg{UIViewImpl: impl, UIModel: f.model, UIController: c, Logger: f.logger})
	t.Cleanup(base.Shutdown)
	return base, impl, f
}

func TestNewBaseUIView_NilArguments(t *testing.T) {
	c, f := newControllerUnderTest(t)
	impl := &fakeView{}
	assert.Panics(t, func() { NewBaseUIView(NewBaseUIViewArg{UIModel: f.model, UIController: c, Logger: f.logger}) })
	assert.Panics(t, func() { NewBaseUIView(NewBaseUIViewArg{UIViewImpl: impl, UIController: c, Logger: f.logger}) })
	assert.Panics(t, func() { NewBaseUIView(NewBaseUIViewArg{UIViewImpl: impl, UIModel: f.model, Logger: f.logger}) })
	assert.Panics(t, func() { NewBaseUIView(NewBaseUIViewArg{UIViewImpl: impl, UIModel: f.model, UIController: c}) })
}

func TestBaseUIView_RendersInitialState(t *testing.T) {
	_, impl, _ := newBaseViewFixture(t)

	assert.True(t, impl.read(func(v *fakeView) bool {
		return v.week.Number == 1 && v.workout.Status == WorkoutStatusNone && v.mode == UIModeHome
	})())
}

func TestBaseUIView_FollowsModel(t *testing.T) {
	_, impl, f := newBaseViewFixture(t)

	f.model.SetMode(UIModeWorkout)
	f.model.SetTimerSnapshot(resttimer.Snapshot{Status: resttimer.StatusRunning, RemainingSeconds: 30})
	f.model.SetWorkoutState(WorkoutState{Status: WorkoutStatusInProgress})

	assert.Eventually(t, impl.read(func(v *fakeView) bool {
		return v.mode == UIModeWorkout &&
			v.timer.RemainingSeconds == 30 &&
			v.workout.Status == WorkoutStatusInProgress &&
			v.draws >= 3
	}), time.Second, 5*time.Millisecond)
}

func TestBaseUIView_LogPaneShowsTail(t *testing.T) {
	_, impl, f := newBaseViewFixture(t)

	f.logChan <- "one\n"
	f.logChan <- "two\n"
	f.logChan <- "three\n"

	// The fake pane is two lines high
	assert.Eventually(t, impl.read(func(v *fakeView) bool {
		return len(v.logLines) == 2 && v.logLines[0] == "two\n" && v.logLines[1] == "three\n"
	}), time.Second, 5*time.Millisecond)
}

func TestBaseUIView_CloseRequestStopsView(t *testing.T) {
	_, impl, f := newBaseViewFixture(t)

	f.model.RequestCloseApplication()

	assert.Eventually(t, impl.read(func(v *fakeView) bool { return v.stopped }), time.Second, 5*time.Millisecond)
}
