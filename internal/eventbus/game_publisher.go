package eventbus

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/annel0/skyblob/internal/logging"
	"github.com/annel0/skyblob/internal/world"
)

// GameSource — значение Envelope.Source для игровых событий
const GameSource = "skyblob-session"

// GameEvent — полезная нагрузка игрового события в шине
type GameEvent struct {
	SessionID string  `json:"session_id"`
	Type      string  `json:"type"`
	Tick      uint64  `json:"tick"`
	Slot      int     `json:"slot"`
	Plane     string  `json:"plane,omitempty"`
	PowerUp   string  `json:"powerup,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Score     int64   `json:"score,omitempty"`
}

// GameEventType возвращает EventType конверта для игрового события
func GameEventType(t world.EventType) string {
	return "game." + t.String()
}

// GamePublisher — наблюдатель мира, который переправляет события в шину.
// OnEvent не блокирует игровой цикл: события копятся в очереди и
// публикуются горутиной Run. При переполнении событие отбрасывается.
type GamePublisher struct {
	bus       EventBus
	sessionID string
	queue     chan world.Event
	dropped   uint64
	log       *logging.Logger
}

// NewGamePublisher создаёт публикатор с очередью на capacity событий
func NewGamePublisher(bus EventBus, sessionID string, capacity int) *GamePublisher {
	if capacity <= 0 {
		capacity = 256
	}
	return &GamePublisher{
		bus:       bus,
		sessionID: sessionID,
		queue:     make(chan world.Event, capacity),
		log:       logging.GetComponentLogger("eventbus"),
	}
}

// OnEvent implements world.Observer
func (p *GamePublisher) OnEvent(e world.Event) {
	select {
	case p.queue <- e:
	default:
		atomic.AddUint64(&p.dropped, 1)
	}
}

// Dropped возвращает число отброшенных из-за переполнения событий
func (p *GamePublisher) Dropped() uint64 {
	return atomic.LoadUint64(&p.dropped)
}

// Run публикует события до отмены ctx, затем дописывает остаток очереди
func (p *GamePublisher) Run(ctx context.Context) {
	for {
		select {
		case e := <-p.queue:
			p.publish(e)
		case <-ctx.Done():
			for {
				select {
				case e := <-p.queue:
					p.publish(e)
				default:
					return
				}
			}
		}
	}
}

func (p *GamePublisher) publish(e world.Event) {
	env, err := p.Envelope(e)
	if err != nil {
		p.log.Warn("⚠️ Не удалось сериализовать событие %s: %v", e.Type, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.bus.Publish(ctx, env); err != nil {
		p.log.Warn("⚠️ Публикация %s: %v", env.EventType, err)
	}
}

// Envelope строит конверт шины для игрового события
func (p *GamePublisher) Envelope(e world.Event) (*Envelope, error) {
	ge := GameEvent{
		SessionID: p.sessionID,
		Type:      e.Type.String(),
		Tick:      e.Tick,
		Slot:      e.Slot,
		X:         e.Position.X,
		Y:         e.Position.Y,
		Score:     e.Score,
	}
	if e.HasPlane() {
		ge.Plane = e.Plane.String()
	}
	if e.HasPowerUp() {
		ge.PowerUp = e.PowerUp.String()
	}

	payload, err := json.Marshal(ge)
	if err != nil {
		return nil, err
	}

	env := NewEnvelope(GameSource, GameEventType(e.Type), payload)
	env.CorrelationID = p.sessionID
	env.Priority = priority(e.Type)
	return env, nil
}

// priority — итог сессии и рекорды важнее выстрелов
func priority(t world.EventType) int {
	switch t {
	case world.EventSessionEnded, world.EventNewBestScore:
		return 8
	case world.EventShotFired:
		return 1
	default:
		return 4
	}
}
