package entity

import (
	"github.com/annel0/skyblob/internal/vec"
)

// Explosion — эффект взрыва на месте гибели самолёта.
// Анимация не зацикливается; Update сообщает о её завершении.
type Explosion struct {
	Body
	Anim Animator
}

// NewExplosion создаёт взрыв в точке pos
func NewExplosion(pos vec.Vec2Float, size vec.Vec2Float, anim *Animation) *Explosion {
	return &Explosion{
		Body: NewBody(pos, size.X, size.Y),
		Anim: NewAnimator(anim),
	}
}

// Update продвигает анимацию. Возвращает true, когда взрыв пора убрать.
func (e *Explosion) Update(dt float64) bool {
	return e.Anim.Advance(dt)
}
