package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/skyblob/internal/world"
)

// GameMetrics — Prometheus-метрики игровой сессии. Реализует world.Observer.
type GameMetrics struct {
	events          *prometheus.CounterVec
	enemiesKilled   *prometheus.CounterVec
	powerUps        *prometheus.CounterVec
	playersOnline   prometheus.Gauge
	bestScore       prometheus.Gauge
	tickDuration    prometheus.Histogram
	sessionRestarts prometheus.Counter
}

// NewGameMetrics создаёт метрики и регистрирует их в reg
func NewGameMetrics(reg prometheus.Registerer) *GameMetrics {
	gm := &GameMetrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyblob",
			Subsystem: "game",
			Name:      "events_total",
			Help:      "Игровые события по типу.",
		}, []string{"type"}),
		enemiesKilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyblob",
			Subsystem: "game",
			Name:      "enemies_destroyed_total",
			Help:      "Уничтоженные враги по варианту.",
		}, []string{"kind"}),
		powerUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyblob",
			Subsystem: "game",
			Name:      "powerups_collected_total",
			Help:      "Подобранные бонусы по варианту.",
		}, []string{"kind"}),
		playersOnline: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skyblob",
			Subsystem: "game",
			Name:      "players",
			Help:      "Игроки, занимающие слоты.",
		}),
		bestScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skyblob",
			Subsystem: "game",
			Name:      "best_score",
			Help:      "Рекорд за всё время.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "skyblob",
			Subsystem: "session",
			Name:      "tick_duration_seconds",
			Help:      "Время Update+Draw одного тика.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		sessionRestarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skyblob",
			Subsystem: "session",
			Name:      "restarts_total",
			Help:      "Перезапуски мира.",
		}),
	}

	reg.MustRegister(gm.events, gm.enemiesKilled, gm.powerUps, gm.playersOnline,
		gm.bestScore, gm.tickDuration, gm.sessionRestarts)
	return gm
}

// OnEvent implements world.Observer
func (gm *GameMetrics) OnEvent(e world.Event) {
	gm.events.WithLabelValues(e.Type.String()).Inc()

	switch e.Type {
	case world.EventPlayerJoined:
		gm.playersOnline.Inc()
	case world.EventPlayerLeft, world.EventPlayerDied:
		gm.playersOnline.Dec()
	case world.EventEnemyDestroyed:
		gm.enemiesKilled.WithLabelValues(e.Plane.String()).Inc()
	case world.EventPowerUpCollected:
		gm.powerUps.WithLabelValues(e.PowerUp.String()).Inc()
	case world.EventNewBestScore:
		gm.bestScore.Set(float64(e.Score))
	case world.EventSessionEnded:
		gm.playersOnline.Set(0)
		gm.bestScore.Set(float64(e.Score))
	}
}

// ObserveTick записывает длительность тика
func (gm *GameMetrics) ObserveTick(d time.Duration) {
	gm.tickDuration.Observe(d.Seconds())
}

// SessionRestarted учитывает перезапуск мира: слоты снова пусты
func (gm *GameMetrics) SessionRestarted(bestEver int64) {
	gm.sessionRestarts.Inc()
	gm.playersOnline.Set(0)
	gm.bestScore.Set(float64(bestEver))
}
