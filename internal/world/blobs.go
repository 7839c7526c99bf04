package world

import (
	"math"

	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world/entity"
)

// resolveBlobs сопоставляет blob'ы игрокам за один проход:
//  1. каждый blob голосует за ближайшего игрока (при равенстве — за первого);
//  2. каждый игрок берёт ближайший из проголосовавших за него blob'ов;
//  3. оставшиеся без blob'а игроки по очереди жадно берут ближайший свободный.
//
// Возвращает индекс blob'а для каждого игрока (-1 — не назначен) и отметки занятых blob'ов.
func resolveBlobs(players, blobs []vec.Vec2Float) (assigned []int, taken []bool) {
	assigned = make([]int, len(players))
	for i := range assigned {
		assigned[i] = -1
	}
	taken = make([]bool, len(blobs))
	if len(players) == 0 || len(blobs) == 0 {
		return assigned, taken
	}

	closest := make([]int, len(blobs))
	closestDist := make([]float64, len(blobs))
	for b, bp := range blobs {
		closest[b] = -1
		closestDist[b] = math.Inf(1)
		for p, pp := range players {
			if d := bp.DistanceTo(pp); d < closestDist[b] {
				closest[b] = p
				closestDist[b] = d
			}
		}
	}

	for p := range players {
		best, bestDist := -1, math.Inf(1)
		for b := range blobs {
			if closest[b] == p && closestDist[b] < bestDist {
				best, bestDist = b, closestDist[b]
			}
		}
		if best >= 0 {
			assigned[p] = best
			taken[best] = true
		}
	}

	for p, pp := range players {
		if assigned[p] >= 0 {
			continue
		}
		best, bestDist := -1, math.Inf(1)
		for b, bp := range blobs {
			if taken[b] {
				continue
			}
			if d := bp.DistanceTo(pp); d < bestDist {
				best, bestDist = b, d
			}
		}
		if best >= 0 {
			assigned[p] = best
			taken[best] = true
		}
	}

	return assigned, taken
}

// blobPosition переводит blob в мировые координаты с учётом инверсии осей
func (w *World) blobPosition(b Blob) vec.Vec2Float {
	pos := vec.Vec2Float{X: b.X, Y: b.Y}
	if w.rules.InvertX {
		pos.X = w.rules.Bounds.Width - pos.X
	}
	if w.rules.InvertY {
		pos.Y = w.rules.Bounds.Height - pos.Y
	}
	return pos
}

// manageBlobs сначала создаёт игроков для лишних blob'ов прямо в их позиции,
// затем сопоставляет все blob'ы всем игрокам. Так новый игрок получает свой
// blob, а не blob соседа, оказавшегося ближе. Новых игроков создаётся не больше,
// чем blob'ов сверх числа живых игроков: вернувшийся blob игрока в офлайне
// достаётся ему, а не новому самолёту.
func (w *World) manageBlobs(blobs []Blob) {
	blobPos := make([]vec.Vec2Float, len(blobs))
	for i, b := range blobs {
		blobPos[i] = w.blobPosition(b)
	}

	surplus := len(blobs) - w.livePlayers()
	for i, b := range blobs {
		if surplus <= 0 {
			break
		}
		if w.tracked(b.ID) {
			continue
		}
		slot, ok := w.slotForBlob(b.ID)
		if !ok {
			continue
		}
		w.spawnPlayer(slot, blobPos[i])
		w.blobSlots[b.ID] = slot
		surplus--
	}

	var (
		slots     []int
		positions []vec.Vec2Float
	)
	for slot, p := range w.players {
		if p != nil {
			slots = append(slots, slot)
			positions = append(positions, p.Pos)
		}
	}

	assigned, _ := resolveBlobs(positions, blobPos)
	for i, b := range assigned {
		if b < 0 {
			continue
		}
		slot := slots[i]
		w.players[slot].AssignBlob(blobs[b].ID, blobPos[b])
		w.blobSlots[blobs[b].ID] = slot
	}

	w.pruneBlobSlots(blobs)
}

func (w *World) livePlayers() int {
	n := 0
	for _, p := range w.players {
		if p != nil {
			n++
		}
	}
	return n
}

// tracked — blob уже ведёт живого игрока
func (w *World) tracked(id int) bool {
	slot, ok := w.blobSlots[id]
	return ok && w.players[slot] != nil
}

// slotForBlob выбирает слот для нового игрока. Blob, чей прежний слот ещё
// ожидает возрождения, ждёт его; иначе берётся прежний или первый свободный слот.
func (w *World) slotForBlob(id int) (int, bool) {
	if slot, ok := w.blobSlots[id]; ok {
		if w.respawn[slot].active {
			return 0, false
		}
		if w.players[slot] == nil {
			return slot, true
		}
	}
	for slot, p := range w.players {
		if p == nil && !w.respawn[slot].active {
			return slot, true
		}
	}
	return 0, false
}

// pruneBlobSlots забывает blob'ы, отсутствующие в текущем кадре
func (w *World) pruneBlobSlots(blobs []Blob) {
	if len(w.blobSlots) == 0 {
		return
	}
	seen := make(map[int]struct{}, len(blobs))
	for _, b := range blobs {
		seen[b.ID] = struct{}{}
	}
	for id := range w.blobSlots {
		if _, ok := seen[id]; !ok {
			delete(w.blobSlots, id)
		}
	}
}

// spawnPlayer создаёт игрока в позиции его blob'а
func (w *World) spawnPlayer(slot int, start vec.Vec2Float) *entity.Plane {
	w.generation++
	p := entity.NewPlayer(entity.Owner{Slot: slot, Generation: w.generation}, start, w.rules.PlayerSize, w.rules.Player, w.anims.player)
	w.players[slot] = p
	w.slotScore[slot] = 0

	w.log.Info("✈️ Игрок P%d вошёл в игру", slot)
	w.emit(Event{Type: EventPlayerJoined, Slot: slot, Plane: entity.KindPlayer, Position: start})
	return p
}
