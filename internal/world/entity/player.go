package entity

import (
	"github.com/annel0/skyblob/internal/vec"
)

// Owner идентифицирует игрока-владельца пули: слот и поколение.
// Поколение отличает нового игрока в том же слоте от погибшего.
type Owner struct {
	Slot       int
	Generation uint64
}

// PlayerStats — настройки самолёта игрока
type PlayerStats struct {
	InterShootTime    float64
	Lives             int
	DisconnectionTime float64
}

// Pilot — состояние, которое есть только у самолёта игрока
type Pilot struct {
	Owner

	BlobID int

	Offline             bool
	DisconnectRemaining float64
	DisconnectionTime   float64

	RapidFireRemaining  float64
	TripleFireRemaining float64

	assigned  bool
	target    vec.Vec2Float
	rapidFire bool
	baseShoot float64 // InterShootTime до ускоренной стрельбы
}

// NewPlayer создаёт самолёт игрока в слоте owner.Slot
func NewPlayer(owner Owner, pos vec.Vec2Float, size vec.Vec2Float, stats PlayerStats, anim *Animation) *Plane {
	return &Plane{
		Body: NewBody(pos, size.X, size.Y),
		Anim: NewAnimator(anim),
		Combat: Combat{
			InterShootTime: stats.InterShootTime,
			Lives:          stats.Lives,
			MaxLives:       stats.Lives,
		},
		Kind: KindPlayer,
		Pilot: &Pilot{
			Owner:               owner,
			BlobID:              -1,
			DisconnectRemaining: stats.DisconnectionTime,
			DisconnectionTime:   stats.DisconnectionTime,
		},
	}
}

// AssignBlob закрепляет за игроком blob на текущий тик
func (p *Plane) AssignBlob(id int, pos vec.Vec2Float) {
	p.Pilot.assigned = true
	p.Pilot.BlobID = id
	p.Pilot.target = pos
}

// HasBlob сообщает, назначен ли игроку blob в этом тике
func (p *Plane) HasBlob() bool {
	return p.Pilot != nil && p.Pilot.assigned
}

// Offline сообщает, находится ли игрок в режиме ожидания переподключения
func (p *Plane) Offline() bool {
	return p.Pilot != nil && p.Pilot.Offline
}

// AddRapidFireBuff ускоряет стрельбу на duration секунд.
// Исходный интервал запоминается один раз, повторный бонус только продлевает действие.
func (p *Plane) AddRapidFireBuff(multiplier, duration float64) {
	pl := p.Pilot
	if !pl.rapidFire {
		pl.baseShoot = p.InterShootTime
		pl.rapidFire = true
	}
	p.InterShootTime = pl.baseShoot * multiplier
	pl.RapidFireRemaining = duration
}

// AddTripleFireBuff включает тройной выстрел на duration секунд
func (p *Plane) AddTripleFireBuff(duration float64) {
	p.Pilot.TripleFireRemaining = duration
}

// RapidFireActive сообщает, действует ли ускоренная стрельба
func (p *Plane) RapidFireActive() bool {
	return p.Pilot != nil && p.Pilot.rapidFire
}

func (p *Plane) updatePlayer(dt float64) UpdateResult {
	var res UpdateResult

	wasOffline := p.Pilot.Offline
	if p.syncBlob(dt) {
		res.Disconnected = true
		return res
	}
	res.WentOffline = p.Pilot.Offline && !wasOffline

	p.Anim.Advance(dt)
	if p.tickCooldown(dt) && !p.Pilot.Offline {
		owner := p.Pilot.Owner
		res.Shots = append(res.Shots, Shot{Origin: p.Pos, Direction: forward, Owner: owner})
		if p.Pilot.TripleFireRemaining > 0 {
			res.Shots = append(res.Shots,
				Shot{Origin: p.Pos, Direction: vec.Vec2Float{X: -1, Y: 1}, Owner: owner},
				Shot{Origin: p.Pos, Direction: vec.Vec2Float{X: 1, Y: 1}, Owner: owner},
			)
		}
	}

	p.tickBuffs(dt)
	return res
}

// syncBlob переносит игрока к назначенному blob или ведёт отсчёт до отключения.
// Возвращает true, когда время ожидания истекло.
func (p *Plane) syncBlob(dt float64) bool {
	pl := p.Pilot
	if pl.assigned {
		p.Pos = pl.target
		pl.Offline = false
		pl.DisconnectRemaining = pl.DisconnectionTime
		pl.assigned = false
		return false
	}

	pl.Offline = true
	pl.DisconnectRemaining -= dt
	return pl.DisconnectRemaining <= 0
}

func (p *Plane) tickBuffs(dt float64) {
	pl := p.Pilot
	if pl.RapidFireRemaining > 0 {
		pl.RapidFireRemaining -= dt
		if pl.RapidFireRemaining <= 0 {
			pl.RapidFireRemaining = 0
			p.InterShootTime = pl.baseShoot
			pl.rapidFire = false
		}
	}
	if pl.TripleFireRemaining > 0 {
		pl.TripleFireRemaining -= dt
		if pl.TripleFireRemaining < 0 {
			pl.TripleFireRemaining = 0
		}
	}
}
