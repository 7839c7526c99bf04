package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoise_RangeAndDeterminism(t *testing.T) {
	a := NewNoise(42)
	b := NewNoise(42)

	for i := 0; i < 200; i++ {
		x := float64(i) * 0.13
		v := a.At1D(x)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.Equal(t, v, b.At1D(x))

		v2 := a.At2D(x, x/2)
		assert.GreaterOrEqual(t, v2, 0.0)
		assert.LessOrEqual(t, v2, 1.0)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, normalize(-1))
	assert.Equal(t, 0.5, normalize(0))
	assert.Equal(t, 1.0, normalize(1))
	assert.Equal(t, 1.0, normalize(3))
	assert.Equal(t, 0.0, normalize(-3))
}
