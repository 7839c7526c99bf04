package world

// SlotStats — состояние одного слота игрока
type SlotStats struct {
	Slot             int     `json:"slot"`
	Present          bool    `json:"present"`
	Offline          bool    `json:"offline"`
	Lives            int     `json:"lives"`
	MaxLives         int     `json:"max_lives"`
	Score            int64   `json:"score"`
	Best             int64   `json:"best"`
	Respawning       bool    `json:"respawning"`
	RespawnRemaining float64 `json:"respawn_remaining,omitempty"`
}

// Stats — копия состояния мира для чтения вне игрового цикла
type Stats struct {
	Tick       uint64      `json:"tick"`
	Ended      bool        `json:"ended"`
	BestEver   int64       `json:"best_ever"`
	Slots      []SlotStats `json:"slots"`
	Enemies    int         `json:"enemies"`
	Bullets    int         `json:"bullets"`
	PowerUps   int         `json:"powerups"`
	Explosions int         `json:"explosions"`
}

// Stats снимает копию текущего состояния
func (w *World) Stats() Stats {
	s := Stats{
		Tick:       w.tick,
		Ended:      w.ended,
		BestEver:   w.bestEver,
		Slots:      make([]SlotStats, len(w.players)),
		Enemies:    len(w.enemies),
		Bullets:    len(w.bullets),
		PowerUps:   len(w.powerUps),
		Explosions: len(w.explosions),
	}
	for slot, p := range w.players {
		ss := SlotStats{
			Slot:             slot,
			Score:            w.slotScore[slot],
			Best:             w.slotBest[slot],
			Respawning:       w.respawn[slot].active,
			RespawnRemaining: w.respawn[slot].left,
		}
		if p != nil {
			ss.Present = true
			ss.Offline = p.Offline()
			ss.Lives = p.Lives
			ss.MaxLives = p.MaxLives
		}
		s.Slots[slot] = ss
	}
	return s
}
