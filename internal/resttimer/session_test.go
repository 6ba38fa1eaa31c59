package resttimer

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPlan() *SessionPlan {
	return &SessionPlan{Exercises: []PlannedExercise{
		{Name: "Back Squat", SetCount: 4, RestSeconds: 120},
		{Name: "Romanian Deadlift", SetCount: 3, RestSeconds: 90},
		{Name: "Plank", SetCount: 2, RestSeconds: 0},
	}}
}

func TestSessionPlan_TotalSeconds(t *testing.T) {
	assert.Equal(t, 750, testPlan().TotalSeconds())

	var nilPlan *SessionPlan
	assert.Equal(t, 0, nilPlan.TotalSeconds())
}

func TestSessionEstimate_WithPlan(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	ctx := ExerciseContext{Name: "Romanian Deadlift", SetIndex: 2, TotalSets: 3}

	est := newSessionEstimate(testPlan(), ctx, 90, logger)
	assert.False(t, est.fallback)

	// squat 480 + one earlier RDL set 90 + 30 into this rest
	session, exercise := est.progress(90, 60)
	assert.InDelta(t, 600.0/750, session, 1e-9)
	assert.InDelta(t, 120.0/270, exercise, 1e-9)
}

func TestSessionEstimate_NameMatchIgnoresCaseAndSpace(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	ctx := ExerciseContext{Name: "  back squat ", SetIndex: 1, TotalSets: 4}

	est := newSessionEstimate(testPlan(), ctx, 120, logger)
	assert.False(t, est.fallback)
	assert.Equal(t, 480, est.exerciseTotal)
}

func TestSessionEstimate_FallbackWithoutPlan(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	ctx := ExerciseContext{Name: "Squat", SetIndex: 2, TotalSets: 4}

	est := newSessionEstimate(nil, ctx, 60, logger)
	assert.True(t, est.fallback)
	assert.Contains(t, buf.String(), "WARN SessionEstimate")

	session, exercise := est.progress(60, 60)
	assert.InDelta(t, 0.25, session, 1e-9)
	assert.InDelta(t, 0.25, exercise, 1e-9)
}

func TestSessionEstimate_FallbackOnUnknownExercise(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	ctx := ExerciseContext{Name: "Bench Press", SetIndex: 1, TotalSets: 2}

	est := newSessionEstimate(testPlan(), ctx, 100, logger)
	assert.True(t, est.fallback)
	assert.Contains(t, buf.String(), "not found in session plan")

	session, _ := est.progress(100, 50)
	assert.InDelta(t, 0.25, session, 1e-9)
}

func TestSessionEstimate_ZeroTotals(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	ctx := ExerciseContext{Name: "Plank", SetIndex: 1, TotalSets: 2}

	est := newSessionEstimate(&SessionPlan{Exercises: []PlannedExercise{{Name: "Plank", SetCount: 2}}}, ctx, 0, logger)
	session, exercise := est.progress(0, 0)
	assert.Equal(t, 0.0, session)
	assert.Equal(t, 0.0, exercise)
}

func TestSessionEstimate_ClampsAfterExtension(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	ctx := ExerciseContext{Name: "Back Squat", SetIndex: 4, TotalSets: 4}

	est := newSessionEstimate(testPlan(), ctx, 120, logger)
	// remaining above initial after a positive adjust
	session, exercise := est.progress(120, 150)
	assert.InDelta(t, 360.0/750, session, 1e-9)
	assert.InDelta(t, 0.75, exercise, 1e-9)

	// far past the plan
	est.sessionBefore = 10_000
	session, _ = est.progress(120, 0)
	assert.Equal(t, 1.0, session)
}
