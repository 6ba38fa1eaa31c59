package trainer

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/events"
	"github.com/lowaak/smart-trainer/rest-timer-app/internal/go_func_utils"
	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
	Week int
	Day  string // Selected day name, empty on first start
}

// observable is a value whose changes are published to listening channels.
// A new listener receives the last published value right away, and a listener
// that falls behind ends on the current value rather than a stale one.
type observable[T any] struct {
	mu    sync.RWMutex
	value T
	event *events.ChannelEvent[T]
}

func newObservable[T any](initial T) *observable[T] {
	return &observable[T]{value: initial, event: events.NewChannelEvent[T](true)}
}

func (o *observable[T]) get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// set publishes under the lock so concurrent writers reach listeners in the
// same order as the stored value
func (o *observable[T]) set(value T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.value = value
	o.event.Notify(value)
}

// update applies change and publishes the result unless it is unchanged
func (o *observable[T]) update(change func(*T), equal func(a, b T) bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	before := o.value
	change(&o.value)
	if !equal(before, o.value) {
		o.event.Notify(o.value)
	}
}

func (o *observable[T]) listen(ch chan T) func() {
	return o.event.ListenLatest(ch)
}

// UIModel is the state shared by the controller and the views. Every part of it
// can be read directly or followed through a channel.
type UIModel struct {
	uiState      *observable[UIState]
	weekState    *observable[WeekState]
	workoutState *observable[WorkoutState]
	timer        *observable[resttimer.Snapshot]

	closeRequested *events.ChannelEvent[struct{}]

	logEvent *events.ChannelEvent[string]
	logMu    sync.RWMutex
	logLines []string

	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *log.Logger
}

const maxLogLines = 1000

func NewUIModel(logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &UIModel{
		uiState:        newObservable(UIState{Mode: UIModeHome, Week: 1}),
		weekState:      newObservable(WeekState{}),
		workoutState:   newObservable(WorkoutState{Status: WorkoutStatusNone}),
		timer:          newObservable(resttimer.Snapshot{}),
		closeRequested: events.NewChannelEvent[struct{}](true),
		logEvent:       events.NewChannelEvent[string](false),
		logLines:       make([]string, 0, maxLogLines),
		cancel:         cancel,
		logger:         logger,
	}

	m.wg.Add(1)
	go_func_utils.SafeGo(logger, "UIModel.collectLogs", func() {
		defer m.wg.Done()
		m.collectLogs(ctx, uiLogChan)
	})
	return m
}

// Shutdown stops the log collector and waits for it
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// --- UI state ---

func (m *UIModel) GetUIState() UIState { return m.uiState.get() }

func (m *UIModel) ListenToUIState(ch chan UIState) func() { return m.uiState.listen(ch) }

// SetMode switches the screen; listeners hear about it only when it changes
func (m *UIModel) SetMode(mode UIMode) {
	m.uiState.update(func(s *UIState) { s.Mode = mode }, sameUIState)
}

func (m *UIModel) SetWeek(week int) {
	m.uiState.update(func(s *UIState) { s.Week = week }, sameUIState)
}

func (m *UIModel) SetDay(day string) {
	m.uiState.update(func(s *UIState) { s.Day = day }, sameUIState)
}

func sameUIState(a, b UIState) bool { return a == b }

// --- Week and workout ---

func (m *UIModel) GetWeekState() WeekState { return m.weekState.get() }

func (m *UIModel) SetWeekState(state WeekState) { m.weekState.set(state) }

func (m *UIModel) ListenToWeekState(ch chan WeekState) func() { return m.weekState.listen(ch) }

func (m *UIModel) GetWorkoutState() WorkoutState { return m.workoutState.get() }

func (m *UIModel) SetWorkoutState(state WorkoutState) { m.workoutState.set(state) }

func (m *UIModel) ListenToWorkoutState(ch chan WorkoutState) func() {
	return m.workoutState.listen(ch)
}

// --- Rest timer ---

// GetTimerSnapshot returns the last snapshot published by the rest timer
func (m *UIModel) GetTimerSnapshot() resttimer.Snapshot { return m.timer.get() }

// SetTimerSnapshot is registered with Controller.OnSnapshot
func (m *UIModel) SetTimerSnapshot(snapshot resttimer.Snapshot) { m.timer.set(snapshot) }

func (m *UIModel) ListenToTimer(ch chan resttimer.Snapshot) func() { return m.timer.listen(ch) }

// --- Application ---

func (m *UIModel) RequestCloseApplication() {
	m.closeRequested.Notify(struct{}{})
}

func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeRequested.Listen(ch)
}

// --- Log pane ---

// ListenToLog registers a channel woken by new log lines. A full channel keeps
// the newest line; readers take the lines themselves from GetLogTail.
func (m *UIModel) ListenToLog(ch chan string) func() {
	return m.logEvent.ListenLatest(ch)
}

// collectLogs keeps the last maxLogLines lines written to the UI log channel
func (m *UIModel) collectLogs(ctx context.Context, logChan <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}
			m.logMu.Lock()
			if len(m.logLines) == maxLogLines {
				copy(m.logLines, m.logLines[1:])
				m.logLines = m.logLines[:maxLogLines-1]
			}
			m.logLines = append(m.logLines, line)
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns a copy of the last n log lines
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	n = max(0, min(n, len(m.logLines)))
	tail := make([]string, n)
	copy(tail, m.logLines[len(m.logLines)-n:])
	return tail
}
