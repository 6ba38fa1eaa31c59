package resttimer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestCountdown_TicksToFinished(t *testing.T) {
	var c RestCountdown
	assert.Equal(t, StatusIdle, c.Status())

	c.Start(5)
	remaining := []int{c.Remaining()}
	for i := 0; i < 5; i++ {
		finished := c.Tick()
		remaining = append(remaining, c.Remaining())
		assert.Equal(t, i == 4, finished, "tick %d", i+1)
		if i < 4 {
			assert.Equal(t, StatusRunning, c.Status())
		}
	}

	assert.Equal(t, []int{5, 4, 3, 2, 1, 0}, remaining)
	assert.Equal(t, StatusFinished, c.Status())
	assert.Equal(t, 5, c.Elapsed())

	assert.False(t, c.Tick())
	assert.Equal(t, 0, c.Remaining())
}

func TestRestCountdown_PauseFreezes(t *testing.T) {
	var c RestCountdown
	c.Start(10)
	for i := 0; i < 3; i++ {
		c.Tick()
	}
	assert.True(t, c.Pause())
	assert.False(t, c.Pause())

	for i := 0; i < 5; i++ {
		assert.False(t, c.Tick())
	}
	assert.Equal(t, 7, c.Remaining())
	assert.Equal(t, StatusPaused, c.Status())

	assert.True(t, c.Resume())
	assert.False(t, c.Resume())
	for i := 0; i < 6; i++ {
		assert.False(t, c.Tick())
	}
	assert.True(t, c.Tick())
	assert.Equal(t, 10, c.Elapsed())
}

func TestRestCountdown_AdjustClampsWithoutFinishing(t *testing.T) {
	var c RestCountdown
	c.Start(5)

	assert.True(t, c.Adjust(-10))
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, StatusRunning, c.Status())

	assert.True(t, c.Tick())
	assert.Equal(t, StatusFinished, c.Status())
	assert.False(t, c.Adjust(30))
}

func TestRestCountdown_AdjustAboveInitial(t *testing.T) {
	var c RestCountdown
	c.Start(60)
	c.Pause()

	assert.True(t, c.Adjust(30))
	assert.Equal(t, 90, c.Remaining())
	assert.Equal(t, StatusPaused, c.Status())
	assert.Equal(t, 1.0, c.RestProgress())
}

func TestRestCountdown_Skip(t *testing.T) {
	var c RestCountdown
	assert.False(t, c.Skip(), "idle countdown cannot be skipped")

	c.Start(30)
	c.Pause()
	assert.True(t, c.Skip())
	assert.Equal(t, StatusFinished, c.Status())
	assert.Equal(t, 0, c.Remaining())
	assert.False(t, c.Skip())
}

func TestRestCountdown_StopAndRestart(t *testing.T) {
	var c RestCountdown
	c.Start(30)
	c.Tick()
	c.Stop()

	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, 0, c.Initial())
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, 0.0, c.RestProgress())

	c.Start(-5)
	assert.Equal(t, StatusRunning, c.Status())
	assert.Equal(t, 0, c.Initial())
	assert.True(t, c.Tick())
}

func TestRestCountdown_RestProgress(t *testing.T) {
	var c RestCountdown
	c.Start(4)
	assert.Equal(t, 1.0, c.RestProgress())
	c.Tick()
	assert.Equal(t, 0.75, c.RestProgress())
	c.Skip()
	assert.Equal(t, 0.0, c.RestProgress())
}
