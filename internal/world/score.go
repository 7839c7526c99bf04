package world

import (
	"github.com/annel0/skyblob/internal/world/entity"
)

// owns — пуля принадлежит игроку, который всё ещё занимает слот.
// Пули погибшего игрока очков не приносят.
func (w *World) owns(o entity.Owner) bool {
	p := w.Player(o.Slot)
	return p != nil && p.Pilot.Generation == o.Generation
}

// addScore начисляет очки игроку слота
func (w *World) addScore(slot int, points int64) {
	w.slotScore[slot] += points
	if w.slotScore[slot] > w.slotBest[slot] {
		w.slotBest[slot] = w.slotScore[slot]
	}
}

// recordScore сравнивает результат слота с рекордом и сохраняет новый рекорд
func (w *World) recordScore(slot int) {
	if !w.bestLoaded {
		w.loadBestScore()
	}
	score := w.slotScore[slot]
	if score <= w.bestEver {
		return
	}
	w.bestEver = score
	if !w.bestLoaded {
		// сохранённый рекорд неизвестен и может быть выше: держим новый только в памяти
		w.log.Warn("⚠️ Рекорд %d не сохранён: хранилище недоступно для чтения", score)
	} else if err := w.persist.Set(BestScoreKey, score); err != nil {
		w.log.Error("❌ Не удалось сохранить рекорд %d: %v", score, err)
	}
	w.log.Info("🏆 Новый рекорд: %d (P%d)", score, slot)
	w.emit(Event{Type: EventNewBestScore, Slot: slot, Score: score})
}

// killPlayer освобождает слот и запускает таймер возрождения.
// combat == false — отключение по потере трекинга, без взрыва.
func (w *World) killPlayer(slot int, combat bool) {
	p := w.players[slot]
	if p == nil {
		return
	}
	score := w.slotScore[slot]
	w.recordScore(slot)

	p.MarkRemoved()
	w.players[slot] = nil
	w.slotScore[slot] = 0
	w.respawn[slot] = countdown{left: w.rules.PlayerRespawnTime, active: true}

	ev := Event{Slot: slot, Plane: entity.KindPlayer, Position: p.Pos, Score: score}
	if combat {
		w.addExplosion(p.Pos)
		ev.Type = EventPlayerDied
		w.log.Info("💥 Игрок P%d сбит, очки: %d", slot, score)
	} else {
		ev.Type = EventPlayerLeft
		w.log.Info("👋 Игрок P%d отключился, очки: %d", slot, score)
	}
	w.emit(ev)
}
