package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

func sampleDay(t *testing.T) *Day {
	t.Helper()
	p, err := Parse([]byte(sampleProgram))
	require.NoError(t, err)
	week, err := p.Week(1)
	require.NoError(t, err)
	day, err := week.Day("monday")
	require.NoError(t, err)
	return day
}

func TestDay_Groups(t *testing.T) {
	groups := sampleDay(t).Groups()
	require.Len(t, groups, 4)

	assert.Equal(t, "Squat", groups[0].Name)
	assert.False(t, groups[0].IsSuperset())

	pair := groups[2]
	assert.Equal(t, "Curl + Dip", pair.Name)
	assert.Equal(t, []int{2, 3}, pair.Indices)
	assert.True(t, pair.IsSuperset())
	assert.Equal(t, 3, pair.Sets)
	assert.Equal(t, SupersetRestSeconds, pair.RestSeconds)

	assert.Equal(t, "Plank", groups[3].Name)
}

func TestDay_Groups_SupersetRules(t *testing.T) {
	day := &Day{Name: "Test", Exercises: []Exercise{
		{Name: "A", Sets: 3, Rest: 45, restSet: true, SupersetWith: "B"},
		{Name: "B", Sets: 3, Rest: 90},
		{Name: "C", Sets: 2, Rest: 90, SupersetWith: "A"}, // partner must come later
		{Name: "D", Sets: 2, Rest: 60, SupersetWith: "Missing"},
	}}

	groups := day.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, "A + B", groups[0].Name)
	assert.Equal(t, 45, groups[0].RestSeconds, "pair rests for the first exercise's rest")
	assert.Equal(t, "C", groups[1].Name)
	assert.Equal(t, "D", groups[2].Name)
}

func TestDay_SessionPlan(t *testing.T) {
	plan := sampleDay(t).SessionPlan()

	assert.Equal(t, []resttimer.PlannedExercise{
		{Name: "Squat", SetCount: 4, RestSeconds: 120},
		{Name: "Lunge", SetCount: 3, RestSeconds: 90},
		{Name: "Curl + Dip", SetCount: 3, RestSeconds: 75},
		{Name: "Plank", SetCount: 2, RestSeconds: 0},
	}, plan.Exercises)
	assert.Equal(t, 480+270+225, plan.TotalSeconds())
}

func TestDay_ExerciseContext(t *testing.T) {
	day := sampleDay(t)

	ctx, rest, err := day.ExerciseContext(0, 2)
	require.NoError(t, err)
	assert.Equal(t, "Squat", ctx.Name)
	assert.Equal(t, 2, ctx.SetIndex)
	assert.Equal(t, 4, ctx.TotalSets)
	require.NotNil(t, ctx.Tempo)
	assert.Equal(t, resttimer.DefaultTempo(), *ctx.Tempo)
	assert.Equal(t, 120, rest)

	ctx, rest, err = day.ExerciseContext(1, 1)
	require.NoError(t, err)
	assert.Nil(t, ctx.Tempo)
	assert.Equal(t, 90, rest)

	ctx, rest, err = day.ExerciseContext(2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Curl + Dip", ctx.Name)
	assert.Equal(t, 0, rest, "no rest between the two exercises of a superset")

	ctx, rest, err = day.ExerciseContext(3, 3)
	require.NoError(t, err)
	assert.Equal(t, "Curl + Dip", ctx.Name)
	assert.Equal(t, 3, ctx.TotalSets)
	assert.Equal(t, SupersetRestSeconds, rest)

	_, rest, err = day.ExerciseContext(4, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, rest)
}

func TestDay_ExerciseContext_UnevenSuperset(t *testing.T) {
	day := &Day{Name: "Test", Exercises: []Exercise{
		{Name: "A", Sets: 4, Rest: 60, restSet: true, SupersetWith: "B"},
		{Name: "B", Sets: 3, Rest: 90},
	}}
	plan := day.SessionPlan()
	require.Len(t, plan.Exercises, 1)
	assert.Equal(t, 4*60, plan.TotalSeconds())

	restTotal := 0
	for set := 1; set <= 4; set++ {
		for idx := range day.Exercises {
			if set > day.Exercises[idx].Sets {
				continue
			}
			ctx, rest, err := day.ExerciseContext(idx, set)
			require.NoError(t, err)
			assert.Equal(t, "A + B", ctx.Name)
			restTotal += rest
		}
	}
	assert.Equal(t, plan.TotalSeconds(), restTotal, "every planned rest is taken")

	_, rest, err := day.ExerciseContext(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, rest, "B still follows A in round 3")

	_, rest, err = day.ExerciseContext(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 60, rest, "A is alone in round 4")
}

func TestDay_ExerciseContext_Errors(t *testing.T) {
	day := sampleDay(t)

	_, _, err := day.ExerciseContext(-1, 1)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
	_, _, err = day.ExerciseContext(5, 1)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
	_, _, err = day.ExerciseContext(0, 0)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
	_, _, err = day.ExerciseContext(2, 3)
	assert.ErrorIs(t, err, ErrExerciseNotFound, "Curl has only two sets")
}
