package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Float_Arithmetic(t *testing.T) {
	a := Vec2Float{X: 3, Y: 4}
	b := Vec2Float{X: 1, Y: -2}

	assert.Equal(t, Vec2Float{X: 4, Y: 2}, a.Add(b))
	assert.Equal(t, Vec2Float{X: 2, Y: 6}, a.Sub(b))
	assert.Equal(t, Vec2Float{X: 6, Y: 8}, a.Mul(2))
	assert.Equal(t, 5.0, a.Length())
	assert.Equal(t, 5.0, Vec2Float{}.DistanceTo(a))
	assert.Equal(t, Vec2Float{X: 6, Y: 2}, a.Scale(2, 0.5))
	assert.Equal(t, Vec2Float{X: -3, Y: 4}, a.FlipX())
	assert.Equal(t, Vec2Float{X: 3, Y: -4}, a.FlipY())
}

func TestVec2Float_Normalized(t *testing.T) {
	n := Vec2Float{X: 1, Y: 1}.Normalized()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
	assert.InDelta(t, n.X, n.Y, 1e-12)

	assert.Equal(t, Vec2Float{}, Vec2Float{}.Normalized(), "нулевой вектор не должен давать NaN")
}
