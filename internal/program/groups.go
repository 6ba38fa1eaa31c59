package program

import (
	"fmt"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

// Group is what the lifter trains between two rests: a single exercise or a
// superset pair performed back to back
type Group struct {
	Name        string
	Indices     []int // exercise indices within the day, in order
	Sets        int
	RestSeconds int
}

// IsSuperset reports whether the group pairs two exercises
func (g Group) IsSuperset() bool {
	return len(g.Indices) > 1
}

// Groups returns the day's training groups in order. An exercise whose
// SupersetWith names a later exercise of the day forms a pair with it; the pair
// rests once per round, for the first exercise's rest (75s when it has none).
func (d *Day) Groups() []Group {
	grouped := make(map[int]bool, len(d.Exercises))
	groups := make([]Group, 0, len(d.Exercises))

	for i, ex := range d.Exercises {
		if grouped[i] {
			continue
		}
		grouped[i] = true

		partner := -1
		if ex.SupersetWith != "" {
			for j := i + 1; j < len(d.Exercises); j++ {
				if !grouped[j] && d.Exercises[j].Name == ex.SupersetWith {
					partner = j
					break
				}
			}
		}

		if partner < 0 {
			groups = append(groups, Group{
				Name:        ex.Name,
				Indices:     []int{i},
				Sets:        ex.Sets,
				RestSeconds: ex.Rest,
			})
			continue
		}

		grouped[partner] = true
		other := d.Exercises[partner]
		rest := SupersetRestSeconds
		if ex.restSet {
			rest = ex.Rest
		}
		groups = append(groups, Group{
			Name:        ex.Name + " + " + other.Name,
			Indices:     []int{i, partner},
			Sets:        max(ex.Sets, other.Sets),
			RestSeconds: rest,
		})
	}
	return groups
}

// groupOf returns the group containing exerciseIndex and the position of the
// exercise inside it
func (d *Day) groupOf(exerciseIndex int) (Group, int, bool) {
	for _, g := range d.Groups() {
		for pos, idx := range g.Indices {
			if idx == exerciseIndex {
				return g, pos, true
			}
		}
	}
	return Group{}, 0, false
}

// SessionPlan converts the day into the rest plan used for session progress,
// one entry per group
func (d *Day) SessionPlan() *resttimer.SessionPlan {
	groups := d.Groups()
	plan := &resttimer.SessionPlan{Exercises: make([]resttimer.PlannedExercise, 0, len(groups))}
	for _, g := range groups {
		plan.Exercises = append(plan.Exercises, resttimer.PlannedExercise{
			Name:        g.Name,
			SetCount:    g.Sets,
			RestSeconds: g.RestSeconds,
		})
	}
	return plan
}

// ExerciseContext describes the rest that follows set setNumber (1-based) of
// exercise exerciseIndex. The context carries the group name so it matches the
// SessionPlan. Inside a superset a round is followed by one rest, after the last
// exercise that has a set in that round; for the others restSeconds is 0.
func (d *Day) ExerciseContext(exerciseIndex, setNumber int) (resttimer.ExerciseContext, int, error) {
	if exerciseIndex < 0 || exerciseIndex >= len(d.Exercises) {
		return resttimer.ExerciseContext{}, 0, fmt.Errorf("%s exercise %d: %w", d.Name, exerciseIndex, ErrExerciseNotFound)
	}
	ex := d.Exercises[exerciseIndex]
	if setNumber < 1 || setNumber > ex.Sets {
		return resttimer.ExerciseContext{}, 0, fmt.Errorf("%s set %d of %d: %w", ex.Name, setNumber, ex.Sets, ErrExerciseNotFound)
	}

	group, pos, _ := d.groupOf(exerciseIndex)
	ctx := resttimer.ExerciseContext{
		Name:      group.Name,
		SetIndex:  setNumber,
		TotalSets: group.Sets,
	}
	if ex.Tempo != "" {
		// An unreadable tempo still yields the default descriptor
		tempo, _ := ParseTempo(ex.Tempo)
		ctx.Tempo = &tempo
	}

	rest := group.RestSeconds
	if pos != lastInRound(d, group, setNumber) {
		rest = 0
	}
	return ctx, rest, nil
}

// lastInRound is the position within group of the last exercise that still has
// a set in round setNumber. Uneven pairs keep one rest per round that way.
func lastInRound(d *Day, group Group, setNumber int) int {
	last := 0
	for pos, idx := range group.Indices {
		if d.Exercises[idx].Sets >= setNumber {
			last = pos
		}
	}
	return last
}
