package trainer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "0:00", formatRemaining(0))
	assert.Equal(t, "0:09", formatRemaining(9))
	assert.Equal(t, "1:30", formatRemaining(90))
	assert.Equal(t, "10:00", formatRemaining(600))
	assert.Equal(t, "0:00", formatRemaining(-5))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "-", formatMinutes(0))
	assert.Equal(t, "45 min", formatMinutes(45))
	assert.Equal(t, "1h", formatMinutes(60))
	assert.Equal(t, "1h 15m", formatMinutes(75))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░", progressBar(0, 4))
	assert.Equal(t, "██░░", progressBar(0.5, 4))
	assert.Equal(t, "████", progressBar(1, 4))
	assert.Equal(t, "████", progressBar(3, 4), "clamped above")
	assert.Equal(t, "░░░░", progressBar(-1, 4), "clamped below")
	assert.Equal(t, "", progressBar(0.5, 0))
}

func TestTempoColor(t *testing.T) {
	assert.Equal(t, "[red]", tempoColor(resttimer.PhaseEccentric))
	assert.Equal(t, "[yellow]", tempoColor(resttimer.PhasePause))
	assert.Equal(t, "[green]", tempoColor(resttimer.PhaseConcentric))
	assert.Equal(t, "[gray]", tempoColor(resttimer.PhaseNone))
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "bodyweight", formatWeight(0))
	assert.Equal(t, "80kg", formatWeight(80))
	assert.Equal(t, "22.5kg", formatWeight(22.5))
}
