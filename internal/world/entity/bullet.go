package entity

import (
	"github.com/annel0/skyblob/internal/vec"
)

// Bullet — снаряд. Летит по прямой до выхода за границы мира или первого попадания.
type Bullet struct {
	Body

	FromEnemy bool
	Direction vec.Vec2Float // единичный вектор
	Speed     float64
	Owner     Owner // для пуль игрока: кому начислять очки
}

// NewBullet создаёт пулю из запроса на выстрел.
// Пули игрока летят вверх (y инвертируется), у вражеских зеркалится боковая составляющая.
func NewBullet(shot Shot, size vec.Vec2Float, speed float64) *Bullet {
	dir := shot.Direction.Normalized()
	if shot.FromEnemy {
		dir = dir.FlipX()
	} else {
		dir = dir.FlipY()
	}
	return &Bullet{
		Body:      NewBody(shot.Origin, size.X, size.Y),
		FromEnemy: shot.FromEnemy,
		Direction: dir,
		Speed:     speed,
		Owner:     shot.Owner,
	}
}

// Update перемещает пулю. Возвращает true, если пуля покинула мир.
func (b *Bullet) Update(dt float64, bounds Bounds) bool {
	b.Pos = b.Pos.Add(b.Direction.Mul(b.Speed * dt))
	return b.OutOfVerticalBounds(bounds)
}

// Image возвращает спрайт пули
func (b *Bullet) Image() string {
	if b.FromEnemy {
		return "bullet_down"
	}
	return "bullet_up"
}

// Tint — вражеские пули красные
func (b *Bullet) Tint() Tint {
	if b.FromEnemy {
		return TintRed
	}
	return TintNone
}
