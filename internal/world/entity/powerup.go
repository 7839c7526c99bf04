package entity

import (
	"github.com/annel0/skyblob/internal/vec"
)

// PowerUpEffects — величины эффектов бонусов
type PowerUpEffects struct {
	ScoreGiven          int64
	RapidFireMultiplier float64
	RapidFireDuration   float64
	TripleFireDuration  float64
	LivesGiven          int
}

// PowerUp — бонус на поле. Исчезает, когда истекает время жизни.
type PowerUp struct {
	Body

	Kind      PowerUpKind
	Remaining float64
}

// NewPowerUp создаёт бонус с полным временем жизни
func NewPowerUp(kind PowerUpKind, pos vec.Vec2Float, size vec.Vec2Float, lifetime float64) *PowerUp {
	return &PowerUp{
		Body:      NewBody(pos, size.X, size.Y),
		Kind:      kind,
		Remaining: lifetime,
	}
}

// Update уменьшает оставшееся время жизни. Возвращает true, когда бонус истёк.
func (p *PowerUp) Update(dt float64) bool {
	p.Remaining -= dt
	return p.Remaining <= 0
}

// ApplyTo применяет эффект к самолёту игрока и возвращает начисляемые очки
func (p *PowerUp) ApplyTo(plane *Plane, fx PowerUpEffects) int64 {
	switch p.Kind {
	case PowerUpScore:
		return fx.ScoreGiven
	case PowerUpRapidFire:
		plane.AddRapidFireBuff(fx.RapidFireMultiplier, fx.RapidFireDuration)
	case PowerUpTripleFire:
		plane.AddTripleFireBuff(fx.TripleFireDuration)
	case PowerUpLives:
		plane.Heal(fx.LivesGiven)
	}
	return 0
}

// Image возвращает спрайт бонуса
func (p *PowerUp) Image() string {
	return p.Kind.Image()
}
