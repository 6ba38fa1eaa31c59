package resttimer

import (
	"log"
	"strings"
)

// ExerciseContext describes the set whose rest is being timed
type ExerciseContext struct {
	Name      string
	SetIndex  int              // 1-based index of the set just completed
	TotalSets int              // Sets planned for this exercise
	Tempo     *TempoDescriptor // nil means use DefaultTempo
}

// PlannedExercise is one entry of a SessionPlan
type PlannedExercise struct {
	Name        string
	SetCount    int
	RestSeconds int
}

// TotalSeconds is the planned rest time over all sets of the exercise
func (p PlannedExercise) TotalSeconds() int {
	if p.SetCount <= 0 || p.RestSeconds <= 0 {
		return 0
	}
	return p.SetCount * p.RestSeconds
}

// SessionPlan is the ordered list of exercises for the current day
type SessionPlan struct {
	Exercises []PlannedExercise
}

// TotalSeconds is the planned rest time of the whole session
func (p *SessionPlan) TotalSeconds() int {
	if p == nil {
		return 0
	}
	total := 0
	for _, ex := range p.Exercises {
		total += ex.TotalSeconds()
	}
	return total
}

// indexOf finds an exercise by exact name, then by case-insensitive trimmed name
func (p *SessionPlan) indexOf(name string) int {
	if p == nil {
		return -1
	}
	for i, ex := range p.Exercises {
		if ex.Name == name {
			return i
		}
	}
	want := strings.TrimSpace(name)
	for i, ex := range p.Exercises {
		if strings.EqualFold(strings.TrimSpace(ex.Name), want) {
			return i
		}
	}
	return -1
}

// sessionEstimate holds the parts of the session/exercise progress computation
// that do not change while a countdown runs
type sessionEstimate struct {
	fallback bool

	sessionTotal  int // planned session seconds
	sessionBefore int // seconds of every exercise before the current one
	exerciseTotal int // planned seconds of the current exercise
	setsBefore    int // seconds of the current exercise's earlier sets
}

// newSessionEstimate locates the exercise in the plan. Without a plan, or when the
// exercise is not in it, the current exercise is treated as the whole session.
func newSessionEstimate(plan *SessionPlan, exercise ExerciseContext, initialSeconds int, logger *log.Logger) sessionEstimate {
	idx := -1
	if plan != nil {
		idx = plan.indexOf(exercise.Name)
	}

	if idx < 0 {
		if plan == nil {
			logger.Printf("WARN SessionEstimate: no session plan, estimating from %q alone", exercise.Name)
		} else {
			logger.Printf("WARN SessionEstimate: %q not found in session plan, estimating from it alone", exercise.Name)
		}
		exerciseTotal := initialSeconds * exercise.TotalSets
		setsBefore := (exercise.SetIndex - 1) * initialSeconds
		return sessionEstimate{
			fallback:      true,
			sessionTotal:  exerciseTotal,
			exerciseTotal: exerciseTotal,
			setsBefore:    setsBefore,
		}
	}

	est := sessionEstimate{
		sessionTotal:  plan.TotalSeconds(),
		exerciseTotal: plan.Exercises[idx].TotalSeconds(),
	}
	for _, ex := range plan.Exercises[:idx] {
		est.sessionBefore += ex.TotalSeconds()
	}
	if rest := plan.Exercises[idx].RestSeconds; rest > 0 {
		est.setsBefore = (exercise.SetIndex - 1) * rest
	}
	return est
}

// progress returns the session and exercise fractions for a countdown that has
// consumed initial-remaining seconds
func (e sessionEstimate) progress(initialSeconds, remainingSeconds int) (session, exercise float64) {
	inSet := initialSeconds - remainingSeconds
	if inSet < 0 {
		inSet = 0
	}
	exerciseElapsed := e.setsBefore + inSet

	if e.sessionTotal > 0 {
		session = clamp01(float64(e.sessionBefore+exerciseElapsed) / float64(e.sessionTotal))
	}
	if e.exerciseTotal > 0 {
		exercise = clamp01(float64(exerciseElapsed) / float64(e.exerciseTotal))
	}
	return session, exercise
}
