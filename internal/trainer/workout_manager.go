package trainer

import (
	"fmt"
	"log"
	"sync"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/program"
	"github.com/lowaak/smart-trainer/rest-timer-app/internal/progress"
	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

// WorkoutManager tracks the selected week and day, records completed sets and
// starts the rest timer after each one. It publishes its state to the UIModel.
type WorkoutManager struct {
	model   *UIModel
	program *program.Program
	store   *progress.Store
	timer   *resttimer.Controller
	logger  *log.Logger

	// Current selection (protected by mu)
	mu   sync.Mutex
	week *program.Week
	day  *program.Day // nil until a day is selected

	unsubscribe []func()
}

// NewWorkoutManagerArg holds the arguments for creating a new WorkoutManager
type NewWorkoutManagerArg struct {
	Model     *UIModel
	Program   *program.Program
	Store     *progress.Store
	Timer     *resttimer.Controller
	StartWeek int
	Logger    *log.Logger
}

func NewWorkoutManager(args NewWorkoutManagerArg) *WorkoutManager {
	if args.Model == nil {
		panic("WorkoutManager: model cannot be nil")
	}
	if args.Program == nil || len(args.Program.Weeks) == 0 {
		panic("WorkoutManager: program cannot be empty")
	}
	if args.Store == nil {
		panic("WorkoutManager: store cannot be nil")
	}
	if args.Timer == nil {
		panic("WorkoutManager: timer cannot be nil")
	}
	if args.Logger == nil {
		panic("WorkoutManager: logger cannot be nil")
	}

	wm := &WorkoutManager{
		model:   args.Model,
		program: args.Program,
		store:   args.Store,
		timer:   args.Timer,
		logger:  args.Logger,
	}

	wm.unsubscribe = append(wm.unsubscribe,
		wm.timer.OnSnapshot(wm.model.SetTimerSnapshot),
		wm.timer.OnComplete(wm.onRestComplete),
	)

	if err := wm.SelectWeek(args.StartWeek); err != nil {
		wm.logger.Printf("WorkoutManager: %v, showing week %d", err, args.Program.Weeks[0].Number)
		if err := wm.SelectWeek(args.Program.Weeks[0].Number); err != nil {
			panic(err)
		}
	}
	return wm
}

// SelectWeek shows another week. The selected day is kept when the new week
// has a day with the same name.
func (wm *WorkoutManager) SelectWeek(number int) error {
	week, err := wm.program.Week(number)
	if err != nil {
		return err
	}

	wm.mu.Lock()
	wm.week = week
	if wm.day != nil {
		day, err := week.Day(wm.day.Name)
		if err != nil {
			day = nil
		}
		wm.day = day
	}
	weekState := wm.buildWeekState()
	workoutState := wm.buildWorkoutState()
	dayName := wm.dayNameLocked()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: week %d (%s)", week.Number, week.Technique)
	wm.model.SetWeek(week.Number)
	wm.model.SetDay(dayName)
	wm.model.SetWeekState(weekState)
	wm.model.SetWorkoutState(workoutState)
	return nil
}

// StepWeek moves delta weeks forward or back in program order
func (wm *WorkoutManager) StepWeek(delta int) error {
	wm.mu.Lock()
	current := wm.week.Number
	wm.mu.Unlock()

	numbers := wm.program.WeekNumbers()
	for i, n := range numbers {
		if n != current {
			continue
		}
		target := i + delta
		if target < 0 || target >= len(numbers) {
			return fmt.Errorf("no week %+d from week %d: %w", delta, current, program.ErrWeekNotFound)
		}
		return wm.SelectWeek(numbers[target])
	}
	return fmt.Errorf("week %d: %w", current, program.ErrWeekNotFound)
}

// SelectDay selects a day of the current week
func (wm *WorkoutManager) SelectDay(name string) error {
	wm.mu.Lock()
	day, err := wm.week.Day(name)
	if err != nil {
		wm.mu.Unlock()
		return err
	}
	wm.day = day
	workoutState := wm.buildWorkoutState()
	weekNumber := wm.week.Number
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: week %d %s selected (%d sets)", weekNumber, day.Name, day.TotalSets())
	wm.model.SetDay(day.Name)
	wm.model.SetWorkoutState(workoutState)
	return nil
}

// ToggleSet marks a set done, or not done when it already was. Marking a set
// done starts the rest that follows it.
func (wm *WorkoutManager) ToggleSet(ref SetRef) error {
	wm.mu.Lock()
	if wm.day == nil {
		wm.mu.Unlock()
		return fmt.Errorf("no day selected: %w", program.ErrDayNotFound)
	}
	day := wm.day
	ctx, rest, err := day.ExerciseContext(ref.Exercise, ref.Set+1)
	if err != nil {
		wm.mu.Unlock()
		return err
	}
	key := progress.SetKey{Week: wm.week.Number, Day: day.Name, Exercise: ref.Exercise, Set: ref.Set}
	completed := !wm.store.IsCompleted(key)
	if err := wm.store.MarkCompleted(key, completed); err != nil {
		wm.mu.Unlock()
		return fmt.Errorf("save set %s: %w", key, err)
	}
	workoutState := wm.buildWorkoutState()
	weekState := wm.buildWeekState()
	wm.mu.Unlock()

	wm.model.SetWorkoutState(workoutState)
	wm.model.SetWeekState(weekState)

	exercise := day.Exercises[ref.Exercise]
	if !completed {
		wm.logger.Printf("WorkoutManager: %s set %d unchecked", exercise.Name, ref.Set+1)
		return nil
	}
	wm.logger.Printf("WorkoutManager: %s set %d/%d done", exercise.Name, ref.Set+1, exercise.Sets)

	if rest <= 0 {
		return nil
	}
	return wm.timer.Start(rest, ctx, day.SessionPlan())
}

// CompleteNext marks the next set in training order as done
func (wm *WorkoutManager) CompleteNext() error {
	next := wm.model.GetWorkoutState().Next
	if next == nil {
		return nil
	}
	return wm.ToggleSet(*next)
}

// ResetDay clears the completed sets of the selected day and stops any rest
func (wm *WorkoutManager) ResetDay() error {
	wm.mu.Lock()
	if wm.day == nil {
		wm.mu.Unlock()
		return fmt.Errorf("no day selected: %w", program.ErrDayNotFound)
	}
	if err := wm.store.ClearDay(wm.week.Number, wm.day.Name); err != nil {
		wm.mu.Unlock()
		return fmt.Errorf("reset %s: %w", wm.day.Name, err)
	}
	workoutState := wm.buildWorkoutState()
	weekState := wm.buildWeekState()
	wm.mu.Unlock()

	wm.timer.Stop()
	wm.model.SetWorkoutState(workoutState)
	wm.model.SetWeekState(weekState)
	return nil
}

func (wm *WorkoutManager) onRestComplete() {
	state := wm.model.GetWorkoutState()
	if state.Next == nil {
		wm.logger.Printf("WorkoutManager: rest over, %s is complete", state.Day.Name)
		return
	}
	ex := state.Day.Exercises[state.Next.Exercise]
	wm.logger.Printf("WorkoutManager: rest over, next up %s set %d", ex.Name, state.Next.Set+1)
}

// Shutdown stops the rest timer and detaches from it
func (wm *WorkoutManager) Shutdown() {
	for _, unsubscribe := range wm.unsubscribe {
		unsubscribe()
	}
	wm.timer.Stop()
	wm.logger.Println("WorkoutManager: Shutdown complete")
}

// Must be called with mu held
func (wm *WorkoutManager) dayNameLocked() string {
	if wm.day == nil {
		return ""
	}
	return wm.day.Name
}

// buildWeekState creates the home screen state. Must be called with mu held.
func (wm *WorkoutManager) buildWeekState() WeekState {
	numbers := wm.program.WeekNumbers()
	state := WeekState{
		Number:    wm.week.Number,
		Block:     wm.week.Block,
		Technique: wm.week.Technique,
		Deload:    wm.week.Deload,
		HasPrev:   len(numbers) > 0 && numbers[0] != wm.week.Number,
		HasNext:   len(numbers) > 0 && numbers[len(numbers)-1] != wm.week.Number,
	}
	for _, d := range wm.week.Days {
		state.Days = append(state.Days, DaySummary{
			Name:            d.Name,
			Location:        d.Location,
			Title:           d.Title,
			DurationMinutes: d.DurationMinutes,
			ExerciseCount:   len(d.Exercises),
			TotalSets:       d.TotalSets(),
			CompletedSets:   wm.store.CompletedCount(wm.week.Number, d.Name),
		})
	}
	return state
}

// buildWorkoutState creates the workout screen state. Must be called with mu held.
func (wm *WorkoutManager) buildWorkoutState() WorkoutState {
	if wm.day == nil {
		return WorkoutState{Status: WorkoutStatusNone, Week: wm.week.Number}
	}
	day := wm.day
	state := WorkoutState{
		Week:      wm.week.Number,
		Day:       *day,
		Groups:    day.Groups(),
		Completed: make([][]bool, len(day.Exercises)),
		TotalSets: day.TotalSets(),
	}
	for i, ex := range day.Exercises {
		state.Completed[i] = make([]bool, ex.Sets)
		for s := range state.Completed[i] {
			done := wm.store.IsCompleted(progress.SetKey{Week: wm.week.Number, Day: day.Name, Exercise: i, Set: s})
			state.Completed[i][s] = done
			if done {
				state.CompletedSets++
			}
		}
	}
	state.Next = nextSet(state.Groups, day.Exercises, state.Completed)

	switch {
	case state.CompletedSets == 0:
		state.Status = WorkoutStatusNotStarted
	case state.Next == nil:
		state.Status = WorkoutStatusCompleted
	default:
		state.Status = WorkoutStatusInProgress
	}
	return state
}

// nextSet walks the groups in order; a superset alternates its exercises round by round
func nextSet(groups []program.Group, exercises []program.Exercise, completed [][]bool) *SetRef {
	for _, g := range groups {
		for round := 0; round < g.Sets; round++ {
			for _, idx := range g.Indices {
				if round < exercises[idx].Sets && !completed[idx][round] {
					return &SetRef{Exercise: idx, Set: round}
				}
			}
		}
	}
	return nil
}
