package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelta(t *testing.T) {
	assert.Equal(t, 1.0, Delta(0), "нулевая частота не должна останавливать симуляцию")
	assert.InDelta(t, 1.0/60, Delta(60), 1e-12)
	assert.InDelta(t, 0.5, Fixed(2).Delta(), 1e-12)
}

func TestFrameClock_ConvergesToMeasuredRate(t *testing.T) {
	c := NewFrameClock(60)
	current := time.Unix(0, 0)
	c.now = func() time.Time { return current }

	for i := 0; i < 200; i++ {
		c.Tick()
		current = current.Add(100 * time.Millisecond)
	}

	assert.InDelta(t, 10.0, c.FrameRate(), 0.01)
	assert.InDelta(t, 0.1, c.Delta(), 0.001)
}

func TestFrameClock_IgnoresZeroElapsed(t *testing.T) {
	c := NewFrameClock(30)
	fixed := time.Unix(100, 0)
	c.now = func() time.Time { return fixed }

	c.Tick()
	c.Tick()
	assert.Equal(t, 30.0, c.FrameRate())
}
