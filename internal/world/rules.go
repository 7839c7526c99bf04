package world

import (
	"github.com/annel0/skyblob/internal/config"
	"github.com/annel0/skyblob/internal/vec"
	"github.com/annel0/skyblob/internal/world/entity"
)

// BestScoreKey — единственный ключ постоянного хранилища
const BestScoreKey = "best_score_ever"

// EnemyRule — параметры одного вражеского варианта вместе с весом появления
type EnemyRule struct {
	Stats       entity.EnemyStats
	Probability float64
}

// Rules — неизменяемые правила одной игровой сессии
type Rules struct {
	Bounds     entity.Bounds
	MaxPlayers int

	EnemyLowWater int
	EnemyBatchMin int
	EnemyBatchMax int

	PlayerRespawnTime float64
	PlayerSize        vec.Vec2Float
	Player            entity.PlayerStats
	PlayerFrameTime   float64
	InvertX, InvertY  bool

	EnemySize vec.Vec2Float
	Basic     EnemyRule
	Hard      EnemyRule
	Kamikaze  EnemyRule

	BulletSpeed float64
	BulletSize  vec.Vec2Float

	PowerUpInterval float64
	PowerUpLifetime float64
	PowerUpSize     vec.Vec2Float
	Effects         entity.PowerUpEffects

	ExplosionSize      vec.Vec2Float
	ExplosionFrameTime float64
	ExplosionFrames    int

	BackgroundSpeed  float64
	BackgroundLayers int
}

// RulesFromConfig собирает правила из конфигурации
func RulesFromConfig(cfg *config.Config) Rules {
	enemy := func(e config.EnemyConfig) EnemyRule {
		return EnemyRule{
			Stats: entity.EnemyStats{
				Velocity:       e.Velocity,
				InterShootTime: e.InterShootTime,
				Lives:          e.Lives,
				Points:         e.Points,
			},
			Probability: e.Probability,
		}
	}

	return Rules{
		Bounds:     entity.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
		MaxPlayers: cfg.World.MaxPlayers,

		EnemyLowWater: cfg.World.EnemyLowWater,
		EnemyBatchMin: cfg.World.EnemyBatchMin,
		EnemyBatchMax: cfg.World.EnemyBatchMax,

		PlayerRespawnTime: cfg.World.PlayerRespawnTime,
		PlayerSize:        vec.Vec2Float{X: cfg.Player.Width, Y: cfg.Player.Height},
		Player: entity.PlayerStats{
			InterShootTime:    cfg.Player.InterShootTime,
			Lives:             cfg.Player.Lives,
			DisconnectionTime: cfg.Player.DisconnectionTime,
		},
		PlayerFrameTime: cfg.Player.AnimFrameTime,
		InvertX:         cfg.Player.InvertX,
		InvertY:         cfg.Player.InvertY,

		EnemySize: vec.Vec2Float{X: cfg.Enemies.Width, Y: cfg.Enemies.Height},
		Basic:     enemy(cfg.Enemies.Basic),
		Hard:      enemy(cfg.Enemies.Hard),
		Kamikaze:  enemy(cfg.Enemies.Kamikaze),

		BulletSpeed: cfg.Bullet.Speed,
		BulletSize:  vec.Vec2Float{X: cfg.Bullet.Width, Y: cfg.Bullet.Height},

		PowerUpInterval: cfg.PowerUps.TimeBetween,
		PowerUpLifetime: cfg.PowerUps.Lifetime,
		PowerUpSize:     vec.Vec2Float{X: cfg.PowerUps.Width, Y: cfg.PowerUps.Height},
		Effects: entity.PowerUpEffects{
			ScoreGiven:          cfg.PowerUps.ScoreGiven,
			RapidFireMultiplier: cfg.PowerUps.RapidFireMultiplier,
			RapidFireDuration:   cfg.PowerUps.RapidFireDuration,
			TripleFireDuration:  cfg.PowerUps.TripleFireDuration,
			LivesGiven:          1,
		},

		ExplosionSize:      vec.Vec2Float{X: cfg.Explosion.Width, Y: cfg.Explosion.Height},
		ExplosionFrameTime: cfg.Explosion.TimePerFrame,
		ExplosionFrames:    cfg.Explosion.Frames,

		BackgroundSpeed:  cfg.World.BackgroundSpeed,
		BackgroundLayers: cfg.World.BackgroundLayers,
	}
}

// DefaultRules — правила из конфигурации по умолчанию
func DefaultRules() Rules {
	return RulesFromConfig(config.Default())
}

// enemyRule возвращает правило для варианта
func (r *Rules) enemyRule(kind entity.Kind) EnemyRule {
	switch kind {
	case entity.KindHard:
		return r.Hard
	case entity.KindKamikaze:
		return r.Kamikaze
	default:
		return r.Basic
	}
}

// animations — таблица анимаций сессии
type animations struct {
	player    *entity.Animation
	enemies   map[entity.Kind]*entity.Animation
	explosion *entity.Animation
}

func newAnimations(r Rules) animations {
	plane := func(name string) *entity.Animation {
		return &entity.Animation{Name: name, Frames: entity.FrameNames(name, 2), TimePerFrame: r.PlayerFrameTime, Loop: true}
	}
	return animations{
		player: plane("plane_idle"),
		enemies: map[entity.Kind]*entity.Animation{
			entity.KindBasic:    plane("enemy_basic"),
			entity.KindHard:     plane("enemy_hard"),
			entity.KindKamikaze: plane("enemy_kamikaze"),
		},
		explosion: &entity.Animation{
			Name:         "explosion",
			Frames:       entity.FrameNames("explosion", r.ExplosionFrames),
			TimePerFrame: r.ExplosionFrameTime,
			NotifyFinish: true,
		},
	}
}
