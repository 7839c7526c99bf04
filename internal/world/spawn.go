package world

import (
	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world/entity"
)

// manageEnemies пополняет врагов партией, когда их меньше нижней отметки
func (w *World) manageEnemies() {
	if len(w.enemies) >= w.rules.EnemyLowWater {
		return
	}
	n := w.rules.EnemyBatchMin
	if spread := w.rules.EnemyBatchMax - w.rules.EnemyBatchMin; spread > 0 {
		n += w.rng.Intn(spread + 1)
	}
	for i := 0; i < n; i++ {
		w.GenerateRandomEnemy()
	}
}

// pickEnemyKind выбирает вариант по весам: Hard, затем Kamikaze, остаток — Basic
func (w *World) pickEnemyKind() entity.Kind {
	r := w.rng.Float64() * 100
	if r < w.rules.Hard.Probability {
		return entity.KindHard
	}
	if r-w.rules.Hard.Probability < w.rules.Kamikaze.Probability {
		return entity.KindKamikaze
	}
	return entity.KindBasic
}

// GenerateRandomEnemy создаёт врага случайного варианта у верхнего края мира
func (w *World) GenerateRandomEnemy() *entity.Plane {
	kind := w.pickEnemyKind()
	pos := vec.Vec2Float{X: w.rng.Float64() * w.rules.Bounds.Width, Y: 0}
	movingLeft := kind == entity.KindHard && w.rng.Intn(2) == 0
	return w.SpawnEnemy(kind, pos, movingLeft)
}

// managePowerUps отсчитывает время до следующего бонуса, пока на поле нет ни одного
func (w *World) managePowerUps(dt float64) {
	if len(w.powerUps) > 0 {
		return
	}
	w.nextPowerUp -= dt
	if w.nextPowerUp <= 0 {
		w.GenerateRandomPowerUp()
		w.nextPowerUp = w.rules.PowerUpInterval
	}
}

// GenerateRandomPowerUp создаёт бонус случайного варианта в нижней половине мира
func (w *World) GenerateRandomPowerUp() *entity.PowerUp {
	kind := entity.PowerUpKinds[w.rng.Intn(len(entity.PowerUpKinds))]
	h := w.rules.Bounds.Height
	pos := vec.Vec2Float{
		X: w.rng.Float64() * w.rules.Bounds.Width,
		Y: h/2 + w.rng.Float64()*h/2,
	}
	w.log.Debug("🎁 Появился бонус %s", kind)
	return w.AddPowerUp(kind, pos)
}
