package world

import (
	"github.com/annel0/skyblob/internal/physics"
	"github.com/annel0/skyblob/internal/world/entity"
)

// checkCollisions разрешает столкновения после движения, в порядке:
// пули игроков и враги, вражеские пули и игроки, бонусы и игроки, враги и игроки.
// Удалённые в этом тике сущности и игроки без трекинга пропускаются.
func (w *World) checkCollisions() {
	w.playerBulletsVsEnemies()
	w.enemyBulletsVsPlayers()
	w.powerUpsVsPlayers()
	w.enemiesVsPlayers()
}

func (w *World) playerBulletsVsEnemies() {
	for _, b := range w.bullets {
		if b.Removed() || b.FromEnemy {
			continue
		}
		for _, e := range w.enemies {
			if e.Removed() || !physics.Overlaps(b.Box(), e.Box()) {
				continue
			}
			if e.Hit() {
				w.destroyEnemy(e, b.Owner)
			}
			b.MarkRemoved()
			break
		}
	}
}

func (w *World) enemyBulletsVsPlayers() {
	for _, b := range w.bullets {
		if b.Removed() || !b.FromEnemy {
			continue
		}
		for slot, p := range w.players {
			if !w.targetable(p) || !physics.Overlaps(b.Box(), p.Box()) {
				continue
			}
			if p.Hit() {
				w.killPlayer(slot, true)
			}
			b.MarkRemoved()
			break
		}
	}
}

func (w *World) powerUpsVsPlayers() {
	for _, pu := range w.powerUps {
		if pu.Removed() {
			continue
		}
		for slot, p := range w.players {
			if !w.targetable(p) || !physics.Overlaps(pu.Box(), p.Box()) {
				continue
			}
			if gain := pu.ApplyTo(p, w.rules.Effects); gain > 0 {
				w.addScore(slot, gain)
			}
			pu.MarkRemoved()
			w.log.Debug("✨ P%d подобрал бонус %s", slot, pu.Kind)
			w.emit(Event{Type: EventPowerUpCollected, Slot: slot, PowerUp: pu.Kind, Position: pu.Pos})
			break
		}
	}
}

func (w *World) enemiesVsPlayers() {
	for _, e := range w.enemies {
		if e.Removed() {
			continue
		}
		for slot, p := range w.players {
			if !w.targetable(p) || !physics.Overlaps(e.Box(), p.Box()) {
				continue
			}
			e.Lives = 0
			w.destroyEnemy(e, p.Pilot.Owner)
			if p.Hit() {
				w.killPlayer(slot, true)
			}
			break
		}
	}
}

// targetable — игрок присутствует и не потерял трекинг
func (w *World) targetable(p *entity.Plane) bool {
	return p != nil && !p.Offline()
}

// destroyEnemy убирает сбитого врага, начисляет очки владельцу и запускает взрыв
func (w *World) destroyEnemy(e *entity.Plane, owner entity.Owner) {
	e.MarkRemoved()
	w.addExplosion(e.Pos)

	slot := -1
	if w.owns(owner) {
		slot = owner.Slot
		w.addScore(slot, e.Points)
	}
	w.emit(Event{Type: EventEnemyDestroyed, Slot: slot, Plane: e.Kind, Position: e.Pos, Score: e.Points})
}
