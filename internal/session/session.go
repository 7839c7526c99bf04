// Package session крутит игровой цикл: на каждом тике берёт blob'ы из источника
// трекинга, обновляет и рисует мир, публикует снимок состояния для API.
package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/skyblob/internal/clock"
	"github.com/annel0/skyblob/internal/config"
	"github.com/annel0/skyblob/internal/logging"
	"github.com/annel0/skyblob/internal/observability"
	"github.com/annel0/skyblob/internal/tracking"
	"github.com/annel0/skyblob/internal/world"
)

// ErrEnded возвращается командой End для уже завершённой сессии
var ErrEnded = errors.New("session: игра уже завершена")

// ErrBusy — очередь команд заполнена (цикл не запущен или не успевает)
var ErrBusy = errors.New("session: очередь команд заполнена")

// Frame — необязательное расширение Canvas: очистка до и вывод после отрисовки
type Frame interface {
	BeginFrame()
	EndFrame()
}

// TickObserver получает длительность тиков и перезапуски мира (метрики)
type TickObserver interface {
	ObserveTick(time.Duration)
	SessionRestarted(bestEver int64)
}

// Deps — внешние зависимости сессии. Nil-поля заменяются заглушками.
type Deps struct {
	ID          string // пусто — новый uuid
	Source      tracking.Source
	Canvas      world.Canvas
	Persistence world.Persistence
	Observers   []world.Observer
	Metrics     TickObserver
	Rand        *rand.Rand
	Clock       clock.Clock // nil — частота измеряется по реальным тикам
}

// Snapshot — неизменяемая копия состояния на конец тика
type Snapshot struct {
	SessionID string      `json:"session_id"`
	StartedAt time.Time   `json:"started_at"`
	FrameRate float64     `json:"frame_rate"`
	Restarts  int         `json:"restarts"`
	World     world.Stats `json:"world"`
}

type command int

const (
	cmdEnd command = iota
	cmdRestart
)

// Session владеет миром. Мир трогает только горутина цикла (Run или Step).
type Session struct {
	id       string
	rules    world.Rules
	deps     Deps
	clock    clock.Clock
	frames   *clock.FrameClock
	interval time.Duration
	tracer   trace.Tracer
	log      *logging.Logger

	world     *world.World
	started   time.Time
	restarts  int
	snapshot  atomic.Pointer[Snapshot]
	commands  chan command
	cmdMu     sync.Mutex // порядок флага ended совпадает с порядком очереди
	ended     atomic.Bool
	runningMu sync.Mutex
}

// New создаёт сессию и её первый мир
func New(cfg *config.Config, deps Deps) *Session {
	if deps.Source == nil {
		deps.Source = tracking.SourceFunc(func() []world.Blob { return nil })
	}
	if deps.Canvas == nil {
		deps.Canvas = nopCanvas{}
	}
	if deps.Persistence == nil {
		deps.Persistence = world.NewMemoryPersistence()
	}
	if deps.Rand == nil {
		seed := cfg.World.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		deps.Rand = rand.New(rand.NewSource(seed))
	}

	if deps.ID == "" {
		deps.ID = uuid.NewString()
	}

	fps := cfg.Session.FrameRate
	if fps <= 0 {
		fps = 30
	}

	s := &Session{
		id:       deps.ID,
		rules:    world.RulesFromConfig(cfg),
		deps:     deps,
		clock:    deps.Clock,
		interval: time.Duration(float64(time.Second) / fps),
		tracer:   observability.Tracer("session"),
		log:      logging.GetSessionLogger(),
		commands: make(chan command, 8),
	}

	if s.clock == nil {
		s.frames = clock.NewFrameClock(fps)
		s.clock = s.frames
	}

	_, span := s.tracer.Start(context.Background(), "session.start",
		trace.WithAttributes(attribute.String("session.id", s.id)))
	s.newWorld()
	span.End()

	s.log.Info("🎮 Сессия %s создана (%.0f fps, %d слотов)", s.id, fps, s.rules.MaxPlayers)
	return s
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string { return s.id }

func (s *Session) newWorld() {
	s.world = world.NewWorld(s.rules, world.Options{
		Persistence: s.deps.Persistence,
		Rand:        s.deps.Rand,
		Clock:       s.clock,
		Observer:    world.Observers(s.deps.Observers),
	})
	s.started = time.Now()
	s.publish()
}

// Run тикает с частотой кадров до отмены ctx
func (s *Session) Run(ctx context.Context) error {
	if !s.runningMu.TryLock() {
		return errors.New("session: цикл уже запущен")
	}
	defer s.runningMu.Unlock()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("▶️ Игровой цикл запущен")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("⏹️ Игровой цикл остановлен")
			return ctx.Err()
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step выполняет один тик: команды, Update, Draw, снимок.
// Вызывается только из горутины цикла.
func (s *Session) Step() {
	s.applyCommands()

	start := time.Now()
	if s.frames != nil {
		s.frames.Tick()
	}
	s.world.Update(s.deps.Source.Blobs())
	s.draw()
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveTick(time.Since(start))
	}
	s.publish()
}

func (s *Session) draw() {
	frame, framed := s.deps.Canvas.(Frame)
	if framed {
		frame.BeginFrame()
	}
	s.world.Draw(s.deps.Canvas)
	if framed {
		frame.EndFrame()
	}
}

func (s *Session) applyCommands() {
	for {
		select {
		case cmd := <-s.commands:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Session) apply(cmd command) {
	switch cmd {
	case cmdEnd:
		_, span := s.tracer.Start(context.Background(), "session.end",
			trace.WithAttributes(attribute.String("session.id", s.id)))
		s.world.End()
		span.SetAttributes(attribute.Int64("best_score", s.world.BestEver()))
		span.End()
	case cmdRestart:
		_, span := s.tracer.Start(context.Background(), "session.restart",
			trace.WithAttributes(attribute.String("session.id", s.id)))
		if !s.world.Ended() {
			s.world.End()
		}
		s.restarts++
		s.newWorld()
		if s.deps.Metrics != nil {
			s.deps.Metrics.SessionRestarted(s.world.BestEver())
		}
		span.End()
		s.log.Info("🔄 Мир перезапущен (%d)", s.restarts)
	}
}

// End ставит в очередь завершение игры; применяется перед следующим тиком
func (s *Session) End() error {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	if s.ended.Load() {
		return ErrEnded
	}
	if !s.enqueue(cmdEnd) {
		return ErrBusy
	}
	s.ended.Store(true)
	return nil
}

// Restart ставит в очередь создание нового мира.
// Если очередь заполнена, перезапуск отбрасывается.
func (s *Session) Restart() {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	if !s.enqueue(cmdRestart) {
		s.log.Warn("⚠️ Перезапуск отброшен: очередь команд заполнена")
		return
	}
	s.ended.Store(false)
}

func (s *Session) enqueue(cmd command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		return false
	}
}

// Snapshot возвращает последний опубликованный снимок
func (s *Session) Snapshot() Snapshot {
	return *s.snapshot.Load()
}

func (s *Session) publish() {
	s.snapshot.Store(&Snapshot{
		SessionID: s.id,
		StartedAt: s.started,
		FrameRate: 1 / s.clock.Delta(),
		Restarts:  s.restarts,
		World:     s.world.Stats(),
	})
}

type nopCanvas struct{}

func (nopCanvas) DrawSprite(world.Sprite) {}
func (nopCanvas) DrawText(world.Text) {}
