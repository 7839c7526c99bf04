package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/skyblob/internal/world"
	"github.com/annel0/skyblob/internal/world/entity"
)

func TestGameMetrics_OnEvent(t *testing.T) {
	gm := NewGameMetrics(prometheus.NewRegistry())

	gm.OnEvent(world.Event{Type: world.EventPlayerJoined, Slot: 0})
	gm.OnEvent(world.Event{Type: world.EventPlayerJoined, Slot: 1})
	gm.OnEvent(world.Event{Type: world.EventPlayerDied, Slot: 0})
	gm.OnEvent(world.Event{Type: world.EventEnemyDestroyed, Plane: entity.KindKamikaze})
	gm.OnEvent(world.Event{Type: world.EventEnemyDestroyed, Plane: entity.KindKamikaze})
	gm.OnEvent(world.Event{Type: world.EventPowerUpCollected, PowerUp: entity.PowerUpRapidFire})
	gm.OnEvent(world.Event{Type: world.EventNewBestScore, Score: 42})

	assert.Equal(t, 1.0, testutil.ToFloat64(gm.playersOnline))
	assert.Equal(t, 2.0, testutil.ToFloat64(gm.enemiesKilled.WithLabelValues("kamikaze")))
	assert.Equal(t, 1.0, testutil.ToFloat64(gm.powerUps.WithLabelValues("rapid_fire")))
	assert.Equal(t, 42.0, testutil.ToFloat64(gm.bestScore))
	assert.Equal(t, 2.0, testutil.ToFloat64(gm.events.WithLabelValues("player_joined")))

	gm.OnEvent(world.Event{Type: world.EventSessionEnded, Score: 50})
	assert.Equal(t, 0.0, testutil.ToFloat64(gm.playersOnline))
	assert.Equal(t, 50.0, testutil.ToFloat64(gm.bestScore))

	gm.SessionRestarted(50)
	assert.Equal(t, 1.0, testutil.ToFloat64(gm.sessionRestarts))

	gm.ObserveTick(3 * time.Millisecond)
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{5 * time.Second, "5с"},
		{2*time.Minute + 3*time.Second, "2м 3с"},
		{time.Hour + time.Minute, "1ч 1м 0с"},
		{49*time.Hour + 30*time.Second, "2д 1ч 0м 30с"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUptime(tt.in))
		})
	}
}

func TestProcessCollector_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewProcessCollector(NewServerMetrics())))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "skyblob_process_uptime_seconds")
}
