package eventbus

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/skyblob/internal/config"
	"github.com/annel0/skyblob/internal/logging"
	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world"
	"github.com/annel0/skyblob/internal/world/entity"
)

// collector собирает доставленные конверты
type collector struct {
	mu  sync.Mutex
	got []*Envelope
}

func (c *collector) handle(_ context.Context, ev *Envelope) {
	c.mu.Lock()
	c.got = append(c.got, ev)
	c.mu.Unlock()
}

func (c *collector) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.got))
	for i, ev := range c.got {
		out[i] = ev.EventType
	}
	return out
}

func TestMemoryBus_DeliversInOrderWithFilter(t *testing.T) {
	bus := NewMemoryBus(16)
	ctx := context.Background()

	all := &collector{}
	deaths := &collector{}
	_, err := bus.Subscribe(ctx, Filter{}, all.handle)
	require.NoError(t, err)
	_, err = bus.Subscribe(ctx, Filter{Types: []string{"game.player_died"}}, deaths.handle)
	require.NoError(t, err)

	for _, typ := range []string{"game.player_joined", "game.player_died", "game.shot_fired"} {
		require.NoError(t, bus.Publish(ctx, NewEnvelope("test", typ, nil)))
	}
	require.NoError(t, bus.Close())

	assert.Equal(t, []string{"game.player_joined", "game.player_died", "game.shot_fired"}, all.types())
	assert.Equal(t, []string{"game.player_died"}, deaths.types())

	stats := bus.Metrics()
	assert.Equal(t, uint64(3), stats.Published)
	assert.Equal(t, uint64(4), stats.Consumed)
	assert.Equal(t, 0, stats.InFlight)
}

func TestMemoryBus_ClosedRejectsPublish(t *testing.T) {
	bus := NewMemoryBus(1)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	err := bus.Publish(context.Background(), NewEnvelope("test", "x", nil))
	assert.ErrorIs(t, err, ErrClosed)

	_, err = bus.Subscribe(context.Background(), Filter{}, func(context.Context, *Envelope) {})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewMemoryBus(4)
	ctx := context.Background()

	c := &collector{}
	sub, err := bus.Subscribe(ctx, Filter{}, c.handle)
	require.NoError(t, err)
	sub.Unsubscribe()

	require.NoError(t, bus.Publish(ctx, NewEnvelope("test", "x", nil)))
	require.NoError(t, bus.Close())
	assert.Empty(t, c.types())
}

func TestMemoryBus_DropsLowPriorityWhenFull(t *testing.T) {
	bus := NewMemoryBus(1)
	ctx := context.Background()

	block := make(chan struct{})
	started := make(chan struct{}, 1)
	_, err := bus.Subscribe(ctx, Filter{}, func(context.Context, *Envelope) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
	})
	require.NoError(t, err)

	// первое событие занимает обработчик, второе заполняет буфер
	require.NoError(t, bus.Publish(ctx, NewEnvelope("test", "a", nil)))
	<-started
	require.NoError(t, bus.Publish(ctx, NewEnvelope("test", "b", nil)))

	low := NewEnvelope("test", "c", nil)
	low.Priority = 1
	require.NoError(t, bus.Publish(ctx, low))
	assert.Equal(t, uint64(1), bus.Metrics().Dropped)

	high := NewEnvelope("test", "d", nil)
	high.Priority = 9
	cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, bus.Publish(cctx, high), context.DeadlineExceeded)

	close(block)
	require.NoError(t, bus.Close())
}

func TestGamePublisher_Envelope(t *testing.T) {
	p := NewGamePublisher(NewMemoryBus(1), "session-1", 4)

	env, err := p.Envelope(world.Event{
		Type:     world.EventEnemyDestroyed,
		Tick:     42,
		Slot:     1,
		Plane:    entity.KindHard,
		Position: vec.Vec2Float{X: 10, Y: 20},
		Score:    7,
	})
	require.NoError(t, err)

	assert.Equal(t, "game.enemy_destroyed", env.EventType)
	assert.Equal(t, GameSource, env.Source)
	assert.Equal(t, "session-1", env.CorrelationID)
	assert.Equal(t, 4, env.Priority)
	assert.NotEmpty(t, env.ID)

	var ge GameEvent
	require.NoError(t, json.Unmarshal(env.Payload, &ge))
	assert.Equal(t, GameEvent{
		SessionID: "session-1",
		Type:      "enemy_destroyed",
		Tick:      42,
		Slot:      1,
		Plane:     "hard",
		X:         10,
		Y:         20,
		Score:     7,
	}, ge)
}

func TestGamePublisher_PowerUpAndPriority(t *testing.T) {
	p := NewGamePublisher(NewMemoryBus(1), "s", 4)

	env, err := p.Envelope(world.Event{Type: world.EventPowerUpCollected, Slot: 0, PowerUp: entity.PowerUpLives})
	require.NoError(t, err)
	var ge GameEvent
	require.NoError(t, json.Unmarshal(env.Payload, &ge))
	assert.Equal(t, "lives", ge.PowerUp)
	assert.Empty(t, ge.Plane)

	best, err := p.Envelope(world.Event{Type: world.EventNewBestScore, Score: 100})
	require.NoError(t, err)
	assert.Equal(t, 8, best.Priority)

	shot, err := p.Envelope(world.Event{Type: world.EventShotFired})
	require.NoError(t, err)
	assert.Equal(t, 1, shot.Priority)
}

func TestGamePublisher_RunPublishesQueuedEvents(t *testing.T) {
	bus := NewMemoryBus(16)
	c := &collector{}
	_, err := bus.Subscribe(context.Background(), Filter{Sources: []string{GameSource}}, c.handle)
	require.NoError(t, err)

	p := NewGamePublisher(bus, "s", 8)
	p.OnEvent(world.Event{Type: world.EventPlayerJoined, Plane: entity.KindPlayer})
	p.OnEvent(world.Event{Type: world.EventSessionEnded, Slot: -1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Run(ctx)
	require.NoError(t, bus.Close())

	assert.Equal(t, []string{"game.player_joined", "game.session_ended"}, c.types())
}

func TestGamePublisher_DropsWhenQueueFull(t *testing.T) {
	p := NewGamePublisher(NewMemoryBus(1), "s", 1)
	p.OnEvent(world.Event{Type: world.EventShotFired})
	p.OnEvent(world.Event{Type: world.EventShotFired})
	assert.Equal(t, uint64(1), p.Dropped())
}

func TestMetricsExporter_CollectsDeltas(t *testing.T) {
	bus := NewMemoryBus(8)
	reg := prometheus.NewRegistry()
	me := NewMetricsExporter(bus, reg)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, NewEnvelope("test", "a", nil)))
	require.NoError(t, bus.Publish(ctx, NewEnvelope("test", "b", nil)))
	require.NoError(t, bus.Close())

	prev := me.collect(Stats{})
	assert.Equal(t, 2.0, testutil.ToFloat64(me.published))

	// повторный сбор без новых событий не меняет счётчик
	me.collect(prev)
	assert.Equal(t, 2.0, testutil.ToFloat64(me.published))

	me.Start()
	me.Stop()
}

func TestLoggingListener(t *testing.T) {
	bus := NewMemoryBus(4)
	sub, err := StartLoggingListener(context.Background(), bus, logging.GetComponentLogger("eventbus-test"))
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.NoError(t, bus.Publish(context.Background(), NewEnvelope("test", "a", nil)))
	require.NoError(t, bus.Close())
	assert.Equal(t, uint64(1), bus.Metrics().Consumed)
}

func TestOpen(t *testing.T) {
	bus, err := Open(config.EventBusConfig{Backend: "memory", Capacity: 4})
	require.NoError(t, err)
	require.NoError(t, bus.Close())

	_, err = Open(config.EventBusConfig{Backend: "kafka"})
	assert.Error(t, err)
}
