package entity

import (
	"testing"

	"github.com/annel0/skyblob/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testBounds = Bounds{Width: 100, Height: 100}
	testSize   = vec.Vec2Float{X: 10, Y: 10}
	testAnim   = &Animation{Name: "plane", Frames: FrameNames("plane", 2), TimePerFrame: 0.5, Loop: true}
)

func TestCombat_HitAndHeal(t *testing.T) {
	c := Combat{Lives: 1, MaxLives: 3}
	assert.True(t, c.Hit(), "последняя жизнь уничтожает самолёт")
	assert.Equal(t, 0, c.Lives)
	assert.True(t, c.Hit())
	assert.Equal(t, 0, c.Lives, "жизни не уходят в минус")

	c.Heal(1)
	assert.Equal(t, 1, c.Lives)
	c.Heal(10)
	assert.Equal(t, 3, c.Lives, "лечение не превышает максимум")
}

func TestEnemy_MovesDownAndShoots(t *testing.T) {
	stats := EnemyStats{Velocity: 10, InterShootTime: 1, Lives: 2, Points: 10}
	p := NewEnemy(KindBasic, vec.Vec2Float{X: 50, Y: 0}, testSize, stats, testAnim, false)

	res := p.Update(0.5, testBounds)
	assert.InDelta(t, 5.0, p.Pos.Y, 1e-9)
	assert.InDelta(t, 50.0, p.Pos.X, 1e-9, "обычный самолёт не двигается по горизонтали")
	assert.Empty(t, res.Shots)

	res = p.Update(0.5, testBounds)
	require.Len(t, res.Shots, 1)
	assert.True(t, res.Shots[0].FromEnemy)
	assert.Equal(t, p.Pos, res.Shots[0].Origin)
	assert.Equal(t, 0.0, p.ShootCooldown, "перезарядка сбрасывается после выстрела")
}

func TestEnemy_NegativeInterShootNeverShoots(t *testing.T) {
	stats := EnemyStats{Velocity: 1, InterShootTime: -1, Lives: 1}
	p := NewEnemy(KindKamikaze, vec.Vec2Float{X: 50, Y: 0}, testSize, stats, testAnim, false)

	for i := 0; i < 100; i++ {
		res := p.Update(0.1, testBounds)
		assert.Empty(t, res.Shots)
	}
}

func TestEnemy_EscapesPastBottom(t *testing.T) {
	stats := EnemyStats{Velocity: 10, InterShootTime: -1, Lives: 1}
	p := NewEnemy(KindBasic, vec.Vec2Float{X: 50, Y: 104}, testSize, stats, testAnim, false)

	assert.False(t, p.Update(0.1, testBounds).Escaped, "частично видимый самолёт ещё в мире")
	p.Pos.Y = 106
	assert.True(t, p.Update(0.1, testBounds).Escaped)
}

func TestHardPlane_FlipsAtEdges(t *testing.T) {
	stats := EnemyStats{Velocity: 10, InterShootTime: -1, Lives: 5}

	p := NewEnemy(KindHard, vec.Vec2Float{X: 94, Y: 10}, testSize, stats, testAnim, false)
	p.Update(0.1, testBounds)
	assert.InDelta(t, 95.0, p.Pos.X, 1e-9)
	assert.True(t, p.MovingLeft, "правый край достиг ширины мира")

	p.Update(0.1, testBounds)
	assert.InDelta(t, 94.0, p.Pos.X, 1e-9)

	p = NewEnemy(KindHard, vec.Vec2Float{X: 6, Y: 10}, testSize, stats, testAnim, true)
	p.Update(0.1, testBounds)
	assert.False(t, p.MovingLeft, "левый край достиг нуля")
}

func TestNewEnemy_OnlyHardOscillates(t *testing.T) {
	p := NewEnemy(KindBasic, vec.Vec2Float{}, testSize, EnemyStats{Lives: 1}, testAnim, true)
	assert.False(t, p.MovingLeft)
}

func TestPlane_Tint(t *testing.T) {
	p := NewEnemy(KindHard, vec.Vec2Float{}, testSize, EnemyStats{Lives: 4}, testAnim, false)
	assert.Equal(t, TintWhite, p.Tint())
	p.Hit()
	assert.Equal(t, TintYellow, p.Tint())
	p.Hit()
	assert.Equal(t, TintGreen, p.Tint())
	p.Hit()
	assert.Equal(t, TintOrange, p.Tint())
	p.Lives = 0
	assert.Equal(t, TintRed, p.Tint())
}
