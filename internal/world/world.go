package world

import (
	"math/rand"

	"github.com/annel0/skyblob/internal/clock"
	"github.com/annel0/skyblob/internal/logging"
	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world/entity"
)

// countdown — необязательный таймер: active == false означает «не задан»
type countdown struct {
	left   float64
	active bool
}

// World — агрегат игровой сессии. Владеет всеми сущностями и единственный
// добавляет и удаляет их. Не потокобезопасен: Update и Draw вызываются из одного цикла.
type World struct {
	rules    Rules
	anims    animations
	persist  Persistence
	rng      *rand.Rand
	clock    clock.Clock
	observer Observer
	log      *logging.Logger

	players    []*entity.Plane // слоты игроков, nil — пусто
	respawn    []countdown     // таймер возрождения по слотам
	slotScore  []int64
	slotBest   []int64
	blobSlots  map[int]int // id blob → последний занятый им слот
	generation uint64

	enemies    []*entity.Plane
	bullets    []*entity.Bullet
	powerUps   []*entity.PowerUp
	explosions []*entity.Explosion

	bestEver    int64
	bestLoaded  bool // рекорд прочитан из хранилища; до этого не перезаписываем его
	nextPowerUp float64
	background  *entity.Background

	statusText  *entity.Text
	livesText   *entity.Text
	playerTexts []*entity.Text

	tick  uint64
	ended bool
}

// Options — внешние зависимости мира. Нулевые поля заменяются значениями по умолчанию.
type Options struct {
	Persistence Persistence
	Rand        *rand.Rand
	Clock       clock.Clock
	Observer    Observer
}

// NewWorld создаёт мир новой сессии и читает сохранённый рекорд.
// Отсутствующий рекорд считается нулевым и сразу сохраняется.
func NewWorld(rules Rules, opts Options) *World {
	if opts.Persistence == nil {
		opts.Persistence = NewMemoryPersistence()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Clock == nil {
		opts.Clock = clock.Fixed(30)
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	w := &World{
		rules:       rules,
		anims:       newAnimations(rules),
		persist:     opts.Persistence,
		rng:         opts.Rand,
		clock:       opts.Clock,
		observer:    opts.Observer,
		log:         logging.GetWorldLogger(),
		players:     make([]*entity.Plane, rules.MaxPlayers),
		respawn:     make([]countdown, rules.MaxPlayers),
		slotScore:   make([]int64, rules.MaxPlayers),
		slotBest:    make([]int64, rules.MaxPlayers),
		blobSlots:   make(map[int]int),
		nextPowerUp: rules.PowerUpInterval,
		playerTexts: make([]*entity.Text, rules.MaxPlayers),
	}

	layers := make([]string, rules.BackgroundLayers)
	for i := range layers {
		layers[i] = "background"
	}
	w.background = entity.NewBackground(rules.BackgroundSpeed, rules.Bounds.Height, layers)

	w.statusText = entity.NewText("", 0, 0, rules.Bounds.Width, 10, entity.AlignLeft)
	w.livesText = entity.NewText("", 0, rules.Bounds.Height-10, rules.Bounds.Width, 10, entity.AlignLeft)
	for i := range w.playerTexts {
		w.playerTexts[i] = entity.NewText("", 0, 0, 20, 10, entity.AlignCenter)
	}

	w.loadBestScore()
	w.updateTexts()
	return w
}

// loadBestScore читает рекорд. При ошибке чтения рекорд остаётся неизвестным,
// и recordScore повторит чтение перед записью.
func (w *World) loadBestScore() {
	best, ok, err := w.persist.Get(BestScoreKey)
	if err != nil {
		w.log.Warn("⚠️ Не удалось прочитать рекорд: %v", err)
		return
	}
	w.bestLoaded = true
	if ok && best >= w.bestEver {
		w.bestEver = best
		w.log.Debug("🏆 Рекорд загружен: %d", best)
		return
	}
	// рекорда нет или в памяти накопился больший, пока хранилище было недоступно
	if err := w.persist.Set(BestScoreKey, w.bestEver); err != nil {
		w.log.Warn("⚠️ Не удалось сохранить рекорд %d: %v", w.bestEver, err)
	}
}

// Update выполняет один тик симуляции. После End ничего не делает.
func (w *World) Update(blobs []Blob) {
	if w.ended {
		return
	}
	w.tick++
	dt := w.clock.Delta()

	w.tickRespawns(dt)
	w.manageBlobs(blobs)
	w.manageEnemies()
	w.managePowerUps(dt)
	w.background.Update(dt)
	w.updateEntities(dt)
	w.checkCollisions()
	w.compact()
	w.updateTexts()
}

// tickRespawns уменьшает таймеры возрождения; истёкший таймер освобождает слот
func (w *World) tickRespawns(dt float64) {
	for i := range w.respawn {
		r := &w.respawn[i]
		if !r.active {
			continue
		}
		r.left -= dt
		if r.left <= 0 {
			*r = countdown{}
			w.log.Debug("🔓 Слот %d свободен для нового игрока", i)
		}
	}
}

// updateEntities обновляет сущности в порядке: игроки, враги, пули, бонусы, взрывы.
// Созданные в этом тике сущности обновятся только в следующем.
func (w *World) updateEntities(dt float64) {
	nEnemies, nBullets, nPowerUps, nExplosions := len(w.enemies), len(w.bullets), len(w.powerUps), len(w.explosions)

	for slot, p := range w.players {
		if p == nil {
			continue
		}
		res := p.Update(dt, w.rules.Bounds)
		switch {
		case res.Disconnected:
			w.killPlayer(slot, false)
			continue
		case res.WentOffline:
			w.log.Info("📴 Игрок P%d потерял трекинг", slot)
			w.emit(Event{Type: EventPlayerOffline, Slot: slot, Plane: entity.KindPlayer, Position: p.Pos})
		}
		w.fire(p, res.Shots, slot)
	}

	for _, e := range w.enemies[:nEnemies] {
		if e.Removed() {
			continue
		}
		res := e.Update(dt, w.rules.Bounds)
		if res.Escaped {
			e.MarkRemoved()
			w.emit(Event{Type: EventEnemyEscaped, Slot: -1, Plane: e.Kind, Position: e.Pos})
			continue
		}
		w.fire(e, res.Shots, -1)
	}

	for _, b := range w.bullets[:nBullets] {
		if !b.Removed() && b.Update(dt, w.rules.Bounds) {
			b.MarkRemoved()
		}
	}

	for _, pu := range w.powerUps[:nPowerUps] {
		if !pu.Removed() && pu.Update(dt) {
			pu.MarkRemoved()
			w.log.Debug("💨 Бонус %s исчез", pu.Kind)
			w.emit(Event{Type: EventPowerUpExpired, Slot: -1, PowerUp: pu.Kind, Position: pu.Pos})
		}
	}

	for _, ex := range w.explosions[:nExplosions] {
		if !ex.Removed() && ex.Update(dt) {
			ex.MarkRemoved()
		}
	}
}

// fire превращает запросы на выстрел в пули
func (w *World) fire(p *entity.Plane, shots []entity.Shot, slot int) {
	if len(shots) == 0 {
		return
	}
	for _, s := range shots {
		w.AddBullet(s)
	}
	w.emit(Event{Type: EventShotFired, Slot: slot, Plane: p.Kind, Position: p.Pos})
}

// compact удаляет помеченные сущности одним проходом
func (w *World) compact() {
	w.enemies = compact(w.enemies)
	w.bullets = compact(w.bullets)
	w.powerUps = compact(w.powerUps)
	w.explosions = compact(w.explosions)
}

func compact[T interface{ Removed() bool }](items []T) []T {
	n := 0
	for _, it := range items {
		if !it.Removed() {
			items[n] = it
			n++
		}
	}
	clear(items[n:])
	return items[:n]
}

// AddBullet создаёт пулю из запроса на выстрел
func (w *World) AddBullet(s entity.Shot) *entity.Bullet {
	b := entity.NewBullet(s, w.rules.BulletSize, w.rules.BulletSpeed)
	w.bullets = append(w.bullets, b)
	return b
}

// SpawnEnemy добавляет врага указанного варианта
func (w *World) SpawnEnemy(kind entity.Kind, pos vec.Vec2Float, movingLeft bool) *entity.Plane {
	e := entity.NewEnemy(kind, pos, w.rules.EnemySize, w.rules.enemyRule(kind).Stats, w.anims.enemies[kind], movingLeft)
	w.enemies = append(w.enemies, e)
	return e
}

// AddPowerUp добавляет бонус с полным временем жизни
func (w *World) AddPowerUp(kind entity.PowerUpKind, pos vec.Vec2Float) *entity.PowerUp {
	pu := entity.NewPowerUp(kind, pos, w.rules.PowerUpSize, w.rules.PowerUpLifetime)
	w.powerUps = append(w.powerUps, pu)
	w.emit(Event{Type: EventPowerUpSpawned, Slot: -1, PowerUp: kind, Position: pos})
	return pu
}

// addExplosion запускает взрыв в точке гибели
func (w *World) addExplosion(pos vec.Vec2Float) {
	w.explosions = append(w.explosions, entity.NewExplosion(pos, w.rules.ExplosionSize, w.anims.explosion))
}

// End — завершение сессии: очки живых игроков учитываются в рекорде,
// все сущности освобождаются, дальнейшие тики рисуют экран окончания игры.
func (w *World) End() {
	if w.ended {
		return
	}
	for slot, p := range w.players {
		if p != nil {
			w.recordScore(slot)
		}
	}

	clear(w.players)
	clear(w.respawn)
	w.enemies, w.bullets, w.powerUps, w.explosions = nil, nil, nil, nil
	w.blobSlots = make(map[int]int)
	w.ended = true
	w.updateTexts()

	w.log.Info("🏁 Игра окончена, рекорд: %d", w.bestEver)
	w.emit(Event{Type: EventSessionEnded, Slot: -1, Score: w.bestEver})
}

// Ended сообщает, завершена ли сессия
func (w *World) Ended() bool { return w.ended }

// Tick возвращает номер текущего тика
func (w *World) Tick() uint64 { return w.tick }

// Rules возвращает правила сессии
func (w *World) Rules() Rules { return w.rules }

// BestEver возвращает рекорд за всё время
func (w *World) BestEver() int64 { return w.bestEver }

// Player возвращает игрока в слоте или nil
func (w *World) Player(slot int) *entity.Plane {
	if slot < 0 || slot >= len(w.players) {
		return nil
	}
	return w.players[slot]
}

// Score возвращает текущие очки игрока в слоте
func (w *World) Score(slot int) int64 { return w.slotScore[slot] }

// BestScore возвращает лучший результат слота за сессию
func (w *World) BestScore(slot int) int64 { return w.slotBest[slot] }

// RespawnRemaining возвращает остаток таймера возрождения слота
func (w *World) RespawnRemaining(slot int) (float64, bool) {
	r := w.respawn[slot]
	return r.left, r.active
}

// Enemies возвращает живых врагов
func (w *World) Enemies() []*entity.Plane { return w.enemies }

// Bullets возвращает живые пули
func (w *World) Bullets() []*entity.Bullet { return w.bullets }

// PowerUps возвращает бонусы на поле
func (w *World) PowerUps() []*entity.PowerUp { return w.powerUps }

// Explosions возвращает активные взрывы
func (w *World) Explosions() []*entity.Explosion { return w.explosions }

func (w *World) emit(e Event) {
	e.Tick = w.tick
	w.observer.OnEvent(e)
}
