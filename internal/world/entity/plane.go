package entity

import (
	"github.com/annel0/skyblob/internal/vec"
)

// Combat — боевые характеристики самолёта.
// Инвариант: 0 <= Lives <= MaxLives.
type Combat struct {
	InterShootTime float64 // секунды между выстрелами; отрицательное значение — не стреляет
	ShootCooldown  float64 // накопленное с последнего выстрела время
	Lives          int
	MaxLives       int
}

// Hit снимает одну жизнь и сообщает, уничтожен ли самолёт
func (c *Combat) Hit() bool {
	if c.Lives > 0 {
		c.Lives--
	}
	return c.Lives == 0
}

// Heal добавляет жизни, не превышая максимум
func (c *Combat) Heal(n int) {
	c.Lives += n
	if c.Lives > c.MaxLives {
		c.Lives = c.MaxLives
	}
}

// CanShoot — самолёт вообще способен стрелять
func (c *Combat) CanShoot() bool {
	return c.InterShootTime >= 0
}

// tickCooldown накапливает время перезарядки и сообщает, пора ли стрелять
func (c *Combat) tickCooldown(dt float64) bool {
	if !c.CanShoot() {
		return false
	}
	c.ShootCooldown += dt
	if c.ShootCooldown >= c.InterShootTime {
		c.ShootCooldown = 0
		return true
	}
	return false
}

// EnemyStats — настройки одного вражеского варианта
type EnemyStats struct {
	Velocity       float64
	InterShootTime float64
	Lives          int
	Points         int64
}

// Shot — запрос на создание пули. Направление задаётся «вперёд» в системе
// стрелка, знаки переворачивает NewBullet.
type Shot struct {
	Origin    vec.Vec2Float
	Direction vec.Vec2Float
	FromEnemy bool
	Owner     Owner
}

// UpdateResult — что произошло с самолётом за тик. Мир применяет это после вызова Update.
type UpdateResult struct {
	Shots        []Shot
	Escaped      bool // враг покинул мир по вертикали
	WentOffline  bool // игрок потерял blob в этом тике
	Disconnected bool // истекло время ожидания переподключения
}

// Plane — самолёт любого варианта. Поля HardPlane и игрока живут в той же записи.
type Plane struct {
	Body
	Anim Animator
	Combat

	Kind       Kind
	Velocity   float64
	Points     int64
	MovingLeft bool   // только KindHard
	Pilot      *Pilot // только KindPlayer
}

var forward = vec.Vec2Float{X: 0, Y: 1}

// NewEnemy создаёт вражеский самолёт
func NewEnemy(kind Kind, pos vec.Vec2Float, size vec.Vec2Float, stats EnemyStats, anim *Animation, movingLeft bool) *Plane {
	return &Plane{
		Body: NewBody(pos, size.X, size.Y),
		Anim: NewAnimator(anim),
		Combat: Combat{
			InterShootTime: stats.InterShootTime,
			Lives:          stats.Lives,
			MaxLives:       stats.Lives,
		},
		Kind:       kind,
		Velocity:   stats.Velocity,
		Points:     stats.Points,
		MovingLeft: kind == KindHard && movingLeft,
	}
}

// Tint возвращает цвет по оставшимся жизням
func (p *Plane) Tint() Tint {
	return LifeTint(p.Lives, p.MaxLives)
}

// Update продвигает самолёт на один тик
func (p *Plane) Update(dt float64, bounds Bounds) UpdateResult {
	if p.Kind == KindPlayer {
		return p.updatePlayer(dt)
	}
	return p.updateEnemy(dt, bounds)
}

func (p *Plane) updateEnemy(dt float64, bounds Bounds) UpdateResult {
	var res UpdateResult

	p.move(dt, bounds)
	if p.OutOfVerticalBounds(bounds) {
		res.Escaped = true
		return res
	}

	p.Anim.Advance(dt)
	if p.tickCooldown(dt) {
		res.Shots = append(res.Shots, Shot{Origin: p.Pos, Direction: forward, FromEnemy: true})
	}
	return res
}

// move — вертикальное движение к игрокам; HardPlane дополнительно качается по горизонтали
func (p *Plane) move(dt float64, bounds Bounds) {
	p.Pos.Y += dt * p.Velocity

	if p.Kind != KindHard {
		return
	}

	dir := 1.0
	if p.MovingLeft {
		dir = -1.0
	}
	p.Pos.X += dt * p.Velocity * dir

	half := p.Size.X / 2
	if p.MovingLeft && p.Pos.X-half <= 0 {
		p.MovingLeft = false
	} else if !p.MovingLeft && p.Pos.X+half >= bounds.Width {
		p.MovingLeft = true
	}
}
