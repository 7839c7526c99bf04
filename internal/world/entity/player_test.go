package entity

import (
	"math"
	"testing"

	"github.com/annel0/skyblob/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer() *Plane {
	stats := PlayerStats{InterShootTime: 1, Lives: 10, DisconnectionTime: 3}
	return NewPlayer(Owner{Slot: 0, Generation: 1}, vec.Vec2Float{X: 50, Y: 90}, testSize, stats, testAnim)
}

func TestPlayer_SnapsToAssignedBlob(t *testing.T) {
	p := newTestPlayer()
	p.AssignBlob(7, vec.Vec2Float{X: 20, Y: 80})
	assert.True(t, p.HasBlob())

	res := p.Update(0.1, testBounds)
	assert.False(t, res.WentOffline)
	assert.Equal(t, vec.Vec2Float{X: 20, Y: 80}, p.Pos)
	assert.Equal(t, 7, p.Pilot.BlobID)
	assert.False(t, p.HasBlob(), "назначение действует один тик")
}

func TestPlayer_DisconnectsAfterGracePeriod(t *testing.T) {
	p := newTestPlayer()

	res := p.Update(1, testBounds)
	assert.True(t, res.WentOffline)
	assert.True(t, p.Offline())
	assert.False(t, res.Disconnected)

	res = p.Update(1, testBounds)
	assert.False(t, res.WentOffline, "уведомление только при переходе")
	assert.False(t, res.Disconnected)

	res = p.Update(1, testBounds)
	assert.True(t, res.Disconnected)
}

func TestPlayer_ReconnectResetsCountdown(t *testing.T) {
	p := newTestPlayer()
	p.Update(2, testBounds)
	assert.InDelta(t, 1.0, p.Pilot.DisconnectRemaining, 1e-9)

	p.AssignBlob(1, vec.Vec2Float{X: 10, Y: 10})
	p.Update(0.1, testBounds)
	assert.False(t, p.Offline())
	assert.Equal(t, 3.0, p.Pilot.DisconnectRemaining)
}

func TestPlayer_OfflineDoesNotShoot(t *testing.T) {
	p := newTestPlayer()
	for i := 0; i < 2; i++ {
		res := p.Update(1, testBounds)
		assert.Empty(t, res.Shots)
	}
}

func TestPlayer_ShootsForwardWithOwner(t *testing.T) {
	p := newTestPlayer()

	p.AssignBlob(1, p.Pos)
	res := p.Update(0.5, testBounds)
	assert.Empty(t, res.Shots)

	p.AssignBlob(1, p.Pos)
	res = p.Update(0.5, testBounds)
	require.Len(t, res.Shots, 1)
	assert.False(t, res.Shots[0].FromEnemy)
	assert.Equal(t, Owner{Slot: 0, Generation: 1}, res.Shots[0].Owner)
}

func TestPlayer_TripleFire(t *testing.T) {
	p := newTestPlayer()
	p.AddTripleFireBuff(1)

	p.AssignBlob(1, p.Pos)
	res := p.Update(1, testBounds)
	require.Len(t, res.Shots, 3)
	assert.Equal(t, vec.Vec2Float{X: -1, Y: 1}, res.Shots[1].Direction)
	assert.Equal(t, vec.Vec2Float{X: 1, Y: 1}, res.Shots[2].Direction)

	p.AssignBlob(1, p.Pos)
	res = p.Update(1, testBounds)
	assert.Len(t, res.Shots, 1, "время действия тройного выстрела истекло")
}

func TestPlayer_RapidFireRestoresBase(t *testing.T) {
	p := newTestPlayer()
	before := p.InterShootTime

	p.AddRapidFireBuff(0.5, 2)
	assert.Equal(t, before*0.5, p.InterShootTime)
	assert.True(t, p.RapidFireActive())

	p.AddRapidFireBuff(0.5, 2)
	assert.Equal(t, before*0.5, p.InterShootTime, "повторный бонус не перемножается")

	for i := 0; i < 4; i++ {
		p.AssignBlob(1, p.Pos)
		p.Update(0.5, testBounds)
	}
	assert.False(t, p.RapidFireActive())
	assert.Equal(t, before, p.InterShootTime, "после окончания возвращается исходное значение")
}

func TestBullet_DirectionConvention(t *testing.T) {
	size := vec.Vec2Float{X: 2, Y: 2}
	diag := 1 / math.Sqrt2

	b := NewBullet(Shot{Direction: vec.Vec2Float{X: 0, Y: 1}}, size, 10)
	assert.Equal(t, vec.Vec2Float{X: 0, Y: -1}, b.Direction, "пуля игрока летит вверх")

	b = NewBullet(Shot{Direction: vec.Vec2Float{X: 1, Y: 1}}, size, 10)
	assert.InDelta(t, diag, b.Direction.X, 1e-9)
	assert.InDelta(t, -diag, b.Direction.Y, 1e-9)

	b = NewBullet(Shot{Direction: vec.Vec2Float{X: 0, Y: 1}, FromEnemy: true}, size, 10)
	assert.Equal(t, vec.Vec2Float{X: 0, Y: 1}, b.Direction, "вражеская пуля летит вниз")
	assert.Equal(t, TintRed, b.Tint())

	b = NewBullet(Shot{Direction: vec.Vec2Float{X: 1, Y: 1}, FromEnemy: true}, size, 10)
	assert.InDelta(t, -diag, b.Direction.X, 1e-9, "боковая составляющая зеркалится")
	assert.InDelta(t, diag, b.Direction.Y, 1e-9)
}

func TestBullet_LeavesWorld(t *testing.T) {
	b := NewBullet(Shot{Origin: vec.Vec2Float{X: 50, Y: 3}, Direction: vec.Vec2Float{X: 0, Y: 1}}, vec.Vec2Float{X: 2, Y: 2}, 10)
	assert.False(t, b.Update(0.1, testBounds))
	assert.InDelta(t, 2.0, b.Pos.Y, 1e-9)
	assert.True(t, b.Update(0.5, testBounds))
}
